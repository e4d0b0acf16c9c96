package jsonschema

import (
	"fmt"
	"io"

	"github.com/schemacore/jsonschema/internal/jsonpath"
	"github.com/schemacore/jsonschema/internal/ojson"
	"github.com/schemacore/jsonschema/internal/uri"
)

func init() {
	registerKeyword("$ref", classReference, Draft6, evaluateRef)
	registerKeyword("$recursiveRef", classReference, Draft2019_09, evaluateRecursiveRef)
}

// resolveResource finds the node whose resource root has the given
// (fragment-stripped, normalized) base URI, fetching it through the
// Compiler's Loaders and registering the result if AUTO_RESOLVE is set and
// the resource is not already known.
func (c *Compiler) resolveResource(base uri.URI) (*node, error) {
	key := base.Normalize().String()

	c.mu.RLock()
	n, ok := c.resourceIndex[key]
	c.mu.RUnlock()
	if ok {
		return n, nil
	}

	if !c.options.AutoResolve {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, key)
	}

	loader, ok := c.Loaders[base.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, base.Scheme)
	}

	data, err, _ := c.fetchGroup.Do(key, func() (any, error) {
		c.mu.Lock()
		cached, hit := c.remoteCache.Get(key)
		c.mu.Unlock()
		if hit {
			return cached, nil
		}
		rc, err := loader(base)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.remoteCache.Set(key, b)
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrSchemaNotFound, key, err)
	}

	root, err := ojson.Parse(data.([]byte))
	if err != nil {
		return nil, fmt.Errorf("jsonschema: parsing %s: %w", key, err)
	}
	spec, gerr := guessSpecification(root, c.options.DefaultSpecification)
	if gerr != nil && gerr != ErrUnknownSpecification {
		return nil, gerr
	}
	doc, err := scanDocument(base, root, spec)
	if err != nil {
		return nil, err
	}
	if _, verr := enforceVocabulary(doc.rootNode, spec); verr != nil {
		return nil, verr
	}
	if err := compileRegexPatterns(doc.rootNode); err != nil {
		return nil, err
	}

	c.mu.Lock()
	for resURI, rn := range doc.resources {
		if _, exists := c.resourceIndex[resURI]; !exists {
			c.resourceIndex[resURI] = rn
		}
	}
	c.mu.Unlock()

	c.mu.RLock()
	n, ok = c.resourceIndex[key]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, key)
	}
	return n, nil
}

// resolveRef resolves a $ref/$recursiveRef string relative to n, returning
// the target node.
func (c *Compiler) resolveRef(n *node, ref string) (*node, error) {
	refURI, err := uri.Parse(ref)
	if err != nil {
		return nil, &RefResolutionError{Location: n.pointer.String(), Ref: ref, Err: err}
	}
	target := n.base.Resolve(refURI)
	targetBase := target.StripFragment()

	resource, err := c.resolveResource(targetBase)
	if err != nil {
		return nil, &RefResolutionError{Location: n.pointer.String(), Ref: ref, Err: err}
	}

	if !target.HasFragment || target.Fragment == "" {
		return resource, nil
	}
	if target.Fragment[0] == '/' {
		fragPath := jsonpath.FromJSONPointer(target.Fragment)
		full := resource.pointer
		for _, e := range fragPath.Elements() {
			full = full.Append(e)
		}
		tn, ok := resource.doc.byPointer[full.String()]
		if !ok {
			return nil, &RefResolutionError{Location: n.pointer.String(), Ref: ref, Err: ErrSchemaNotFound}
		}
		return tn, nil
	}
	// plain-name fragment: an $anchor (2019-09) or draft-06/07 $id fragment.
	if resource.anchors != nil {
		if an, ok := resource.anchors[target.Fragment]; ok {
			return an, nil
		}
	}
	return nil, &RefResolutionError{Location: n.pointer.String(), Ref: ref, Err: ErrAnchorNotFound}
}

func evaluateRef(c *evalContext) {
	refVal := c.fieldValue()
	if refVal.Kind() != ojson.KindString {
		return
	}
	target, err := c.ev.schema.compiler.resolveRef(c.n, refVal.Str())
	if err != nil {
		c.fail("refResolution", "{error}", map[string]any{"error": err.Error()})
		return
	}
	frame := c.frame.child("$ref")
	sub, subProps, subItems := c.evaluateSubScoped(target, c.instance, frame, c.ev.scope.push(target.resource))
	if !sub.Valid {
		c.fail("$ref", "does not match referenced schema", nil)
	} else {
		mergeInto(c.evaluatedProps, c.evaluatedItems, subProps, subItems)
	}
	c.result.addDetail(sub)
}

func evaluateRecursiveRef(c *evalContext) {
	refVal := c.fieldValue()
	if refVal.Kind() != ojson.KindString {
		return
	}
	target, err := c.ev.schema.compiler.resolveRef(c.n, refVal.Str())
	if err != nil {
		c.fail("recursiveRefResolution", "{error}", map[string]any{"error": err.Error()})
		return
	}
	resolvedResource := c.ev.scope.resolveRecursiveAnchor(target.resource)
	effective := resolvedResource
	if effective == nil {
		effective = target
	}
	frame := c.frame.child("$recursiveRef")
	sub, subProps, subItems := c.evaluateSubScoped(effective, c.instance, frame, c.ev.scope.push(effective.resource))
	if !sub.Valid {
		c.fail("$recursiveRef", "does not match referenced schema", nil)
	} else {
		mergeInto(c.evaluatedProps, c.evaluatedItems, subProps, subItems)
	}
	c.result.addDetail(sub)
}
