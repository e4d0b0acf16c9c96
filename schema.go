package jsonschema

import (
	"regexp"

	"github.com/schemacore/jsonschema/internal/jsonpath"
	"github.com/schemacore/jsonschema/internal/ojson"
	"github.com/schemacore/jsonschema/internal/uri"
)

// document is one parsed JSON text: the schema tree exactly as retrieved,
// plus the index built over it by the id/anchor scanner (id.go). Several
// Schema values compiled from $ref-connected documents can share the same
// document; a document never mutates after scanning.
type document struct {
	retrievalURI uri.URI
	root         ojson.Value
	rootNode     *node

	// resources maps every absolute URI a resource in this document
	// declares (via $id, or the retrieval URI for the document root) to
	// the node at that resource's root.
	resources map[string]*node

	// byPointer maps the JSON Pointer from the document root to the node
	// at that location, independent of $id. Used for local "#/a/b" $ref
	// resolution and, combined with the *ojson.Object identity already
	// embedded in each node's value, gives the pointer-identity index
	// invariant I4 calls for without a second map keyed by pointer.
	byPointer map[string]*node
}

// node is one schema location: either a boolean schema or a JSON object
// interpreted as a schema. It is the unit the evaluator recurses over.
type node struct {
	value    ojson.Value
	doc      *document
	pointer  jsonpath.Path // from document root
	base     uri.URI       // base URI in effect for $id/$ref resolution here
	spec     Specification
	resource *node // nearest enclosing (or self) resource root

	anchors          map[string]*node // $anchor name -> node, resource-scoped
	recursiveAnchor  bool             // this node declared $recursiveAnchor: true
	compiledPatterns map[string]*regexp.Regexp
}

// isBoolean reports whether the node is a boolean schema (`true`/`false`).
func (n *node) isBoolean() bool { return n.value.Kind() == ojson.KindBool }

// object returns the node's value as an *ojson.Object. Callers must check
// isBoolean first.
func (n *node) object() *ojson.Object { return n.value.Object() }

// field looks up a member of the node's object value.
func (n *node) field(name string) (ojson.Value, bool) {
	if n.isBoolean() {
		return ojson.Value{}, false
	}
	return n.object().Get(name)
}

// absoluteLocation renders the node's schema location as base URI + JSON
// Pointer fragment, the form spec.md section 3 calls the absolute keyword
// location: the fragment is n's pointer relative to its enclosing
// resource's root, since n.base is that resource's own identity.
func (n *node) absoluteLocation() string {
	full := n.pointer.Elements()
	skip := 0
	if n.resource != nil {
		skip = n.resource.pointer.Len()
	}
	rel := jsonpath.Absolute()
	for _, e := range full[skip:] {
		rel = rel.Append(e)
	}
	u := n.base.StripFragment()
	u.HasFragment = true
	u.Fragment = rel.String()
	return u.String()
}

// childNode returns the node at n's pointer + "/"+keyword, if the scanner
// recorded one there (true for every schema-shaped keyword subschemaFields
// lists; see id.go).
func (n *node) childNode(keyword string) (*node, bool) {
	target, ok := n.doc.byPointer[n.pointer.Append(keyword).String()]
	return target, ok
}

// childNodeAt returns the node at n's pointer + path elements... (index or
// property name already appended by the caller).
func (n *node) childNodeAt(p jsonpath.Path) (*node, bool) {
	target, ok := n.doc.byPointer[p.String()]
	return target, ok
}

// Schema is a compiled schema ready for evaluation: the document graph
// reachable from its entry point, the dialect it was compiled under, and
// (for 2019-09) the set of vocabularies in effect.
type Schema struct {
	root *node
	spec Specification
	vocab map[string]bool
	compiler *Compiler
}

// Specification returns the dialect this schema was compiled under.
func (s *Schema) Specification() Specification { return s.spec }

// Validate evaluates instance against s using the compiler's default
// Options, returning the root Result.
func (s *Schema) Validate(instance ojson.Value) *Result {
	result, _, _ := s.compiler.newEvaluation(s).evaluate(s.root, instance, jsonpath.Absolute(), jsonpath.Absolute(), newDynamicScope())
	return result
}
