package jsonschema

import (
	"github.com/schemacore/jsonschema/internal/jsonpath"
	"github.com/schemacore/jsonschema/internal/uri"
)

// Frame is the per-node evaluation context invariant I4 requires to be
// threaded through recursion: the base URI and dialect in effect, the
// dynamic keyword path walked to reach here, the instance location being
// checked, and whether this frame is the schema's entry point.
type Frame struct {
	BaseURI          uri.URI
	Spec             Specification
	EvaluationPath   jsonpath.Path
	InstanceLocation jsonpath.Path
	IsRoot           bool
}

// child steps into a singular subschema applicator (not, if/then/else,
// propertyNames, contentSchema, $ref, $recursiveRef): only the evaluation path gains the keyword, since
// the instance being checked doesn't change location.
func (f Frame) child(keyword string) Frame {
	next := f
	next.EvaluationPath = f.EvaluationPath.Append(keyword)
	next.IsRoot = false
	return next
}

// childNamed steps into a named member of a map-shaped applicator
// (properties/patternProperties/dependentSchemas), advancing both the
// schema path (keyword/name) and the instance path (name).
func (f Frame) childNamed(keyword, name string) Frame {
	next := f
	next.EvaluationPath = f.EvaluationPath.Append(keyword).Append(name)
	next.InstanceLocation = f.InstanceLocation.Append(name)
	next.IsRoot = false
	return next
}

// childIndex steps into an array-applicator's per-element evaluation: the
// evaluation path records the keyword only (item subschemas aren't indexed
// in the schema itself, other than items' array-of-schemas form, handled by
// childIndexed), while the instance location records the array index.
func (f Frame) childIndex(keyword string, index int) Frame {
	next := f
	next.EvaluationPath = f.EvaluationPath.Append(keyword)
	next.InstanceLocation = f.InstanceLocation.AppendIndex(index)
	next.IsRoot = false
	return next
}

// childIndexed steps into items' array-of-schemas form, where the schema
// itself is indexed alongside the instance.
func (f Frame) childIndexed(keyword string, index int) Frame {
	next := f
	next.EvaluationPath = f.EvaluationPath.Append(keyword).AppendIndex(index)
	next.InstanceLocation = f.InstanceLocation.AppendIndex(index)
	next.IsRoot = false
	return next
}

// dynamicScope is the stack of schema resources traversed through $ref and
// $recursiveRef, used to resolve $recursiveRef's "outermost resource with
// $recursiveAnchor: true" rule (2019-09).
type dynamicScope struct {
	stack []*node
}

func newDynamicScope() *dynamicScope { return &dynamicScope{} }

func (d *dynamicScope) push(n *node) *dynamicScope {
	return &dynamicScope{stack: append(append([]*node{}, d.stack...), n)}
}

// resolveRecursiveAnchor returns the outermost resource in the dynamic
// scope whose root declared $recursiveAnchor: true, or fallback if none did.
func (d *dynamicScope) resolveRecursiveAnchor(fallback *node) *node {
	for _, n := range d.stack {
		if n != nil && n.recursiveAnchor {
			return n
		}
	}
	return fallback
}
