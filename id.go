package jsonschema

import (
	"fmt"

	"github.com/schemacore/jsonschema/internal/jsonpath"
	"github.com/schemacore/jsonschema/internal/ojson"
	"github.com/schemacore/jsonschema/internal/uri"
)

// fieldShape describes how a keyword's value relates to nested schemas, the
// information the id/anchor scanner needs to walk a document without
// knowing anything about keyword semantics. Grounded on
// santhosh-tekuri/jsonschema's collectResources, generalized to cover
// Draft-06/07's array-or-schema `items`/`dependencies` polymorphism that
// 2020-12 (the teacher's dialect) no longer has.
type fieldShape int

const (
	shapeSchema fieldShape = iota
	shapeSchemaArray
	shapeSchemaMap
	shapeItemsPolymorphic        // items: schema, or array of schemas
	shapeDependenciesPolymorphic // dependencies: per member, array of strings or a schema
)

var subschemaFields = map[string]fieldShape{
	"additionalItems":       shapeSchema,
	"additionalProperties":  shapeSchema,
	"contains":              shapeSchema,
	"propertyNames":         shapeSchema,
	"not":                   shapeSchema,
	"if":                    shapeSchema,
	"then":                  shapeSchema,
	"else":                  shapeSchema,
	"unevaluatedItems":      shapeSchema,
	"unevaluatedProperties": shapeSchema,
	"contentSchema":         shapeSchema,

	"allOf": shapeSchemaArray,
	"anyOf": shapeSchemaArray,
	"oneOf": shapeSchemaArray,

	"properties":         shapeSchemaMap,
	"patternProperties":  shapeSchemaMap,
	"$defs":              shapeSchemaMap,
	"definitions":        shapeSchemaMap,
	"dependentSchemas":   shapeSchemaMap,

	"items": shapeItemsPolymorphic,

	"dependencies": shapeDependenciesPolymorphic,
}

// scanDocument walks root, building the document's node tree and its
// resources/byPointer/anchors indexes. spec is the dialect determined for
// the document (specification.go's guessSpecification), inherited by every
// node since none of the three supported drafts permit a nested resource to
// switch dialect mid-document.
func scanDocument(retrievalURI uri.URI, root ojson.Value, spec Specification) (*document, error) {
	doc := &document{
		retrievalURI: retrievalURI,
		root:         root,
		resources:    make(map[string]*node),
		byPointer:    make(map[string]*node),
	}
	n, err := scanNode(doc, root, jsonpath.Absolute(), retrievalURI, spec, nil)
	if err != nil {
		return nil, err
	}
	doc.rootNode = n
	if _, exists := doc.resources[retrievalURI.Normalize().String()]; !exists {
		doc.resources[retrievalURI.Normalize().String()] = n
	}
	return doc, nil
}

func scanNode(doc *document, value ojson.Value, pointer jsonpath.Path, base uri.URI, spec Specification, enclosingResource *node) (*node, error) {
	n := &node{
		value:   value,
		doc:     doc,
		pointer: pointer,
		base:    base,
		spec:    spec,
	}
	doc.byPointer[pointer.String()] = n

	if value.Kind() != ojson.KindObject {
		n.resource = enclosingResource
		return n, nil
	}

	obj := value.Object()
	isResource := false

	if idVal, ok := obj.Get("$id"); ok && idVal.Kind() == ojson.KindString {
		idURI, err := uri.Parse(idVal.Str())
		if err != nil {
			return nil, &MalformedSchemaError{Location: pointer.String(), Reason: fmt.Sprintf("invalid $id %q: %v", idVal.Str(), err)}
		}
		resolved := base.Resolve(idURI).Normalize()
		if resolved.HasNonEmptyFragment() {
			// Draft-06/07 plain-name fragment form of $id (e.g.
			// "$id": "#frag") declares an anchor, not a new resource base.
			anchorName := resolved.Fragment
			anchorBase := resolved.StripFragment()
			n.base = anchorBase
			if enclosingResource != nil {
				if enclosingResource.anchors == nil {
					enclosingResource.anchors = make(map[string]*node)
				}
				enclosingResource.anchors[anchorName] = n
			}
		} else {
			base = resolved
			n.base = base
			isResource = true
			if _, dup := doc.resources[base.String()]; dup {
				return nil, &MalformedSchemaError{Location: pointer.String(), Reason: fmt.Sprintf("duplicate $id %q", base.String())}
			}
			doc.resources[base.String()] = n
		}
	}

	if anchorVal, ok := obj.Get("$anchor"); ok && anchorVal.Kind() == ojson.KindString && spec.AtLeast(Draft2019_09) {
		res := n
		if !isResource {
			res = enclosingResource
		}
		if res != nil {
			if res.anchors == nil {
				res.anchors = make(map[string]*node)
			}
			res.anchors[anchorVal.Str()] = n
		}
	}

	if recAnchor, ok := obj.Get("$recursiveAnchor"); ok && recAnchor.Kind() == ojson.KindBool && recAnchor.Bool() && spec.AtLeast(Draft2019_09) {
		n.recursiveAnchor = true
	}

	if isResource {
		n.resource = n
	} else {
		n.resource = enclosingResource
	}

	for _, key := range obj.Keys() {
		shape, known := subschemaFields[key]
		if !known {
			continue
		}
		fieldVal, _ := obj.Get(key)
		switch shape {
		case shapeSchema:
			if _, err := scanNode(doc, fieldVal, pointer.Append(key), base, spec, n.resource); err != nil {
				return nil, err
			}
		case shapeSchemaArray:
			if fieldVal.Kind() != ojson.KindArray {
				continue
			}
			for i, elem := range fieldVal.Array() {
				if _, err := scanNode(doc, elem, pointer.Append(key).AppendIndex(i), base, spec, n.resource); err != nil {
					return nil, err
				}
			}
		case shapeSchemaMap:
			if fieldVal.Kind() != ojson.KindObject {
				continue
			}
			for _, memberKey := range fieldVal.Object().Keys() {
				memberVal, _ := fieldVal.Object().Get(memberKey)
				if _, err := scanNode(doc, memberVal, pointer.Append(key).Append(memberKey), base, spec, n.resource); err != nil {
					return nil, err
				}
			}
		case shapeItemsPolymorphic:
			switch fieldVal.Kind() {
			case ojson.KindArray:
				for i, elem := range fieldVal.Array() {
					if _, err := scanNode(doc, elem, pointer.Append(key).AppendIndex(i), base, spec, n.resource); err != nil {
						return nil, err
					}
				}
			case ojson.KindObject, ojson.KindBool:
				if _, err := scanNode(doc, fieldVal, pointer.Append(key), base, spec, n.resource); err != nil {
					return nil, err
				}
			}
		case shapeDependenciesPolymorphic:
			if fieldVal.Kind() != ojson.KindObject {
				continue
			}
			for _, memberKey := range fieldVal.Object().Keys() {
				memberVal, _ := fieldVal.Object().Get(memberKey)
				if memberVal.Kind() == ojson.KindObject || memberVal.Kind() == ojson.KindBool {
					if _, err := scanNode(doc, memberVal, pointer.Append(key).Append(memberKey), base, spec, n.resource); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return n, nil
}
