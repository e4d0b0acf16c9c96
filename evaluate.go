package jsonschema

import (
	"fmt"
	"sort"

	"github.com/schemacore/jsonschema/internal/jsonpath"
	"github.com/schemacore/jsonschema/internal/ojson"
)

// keywordClass orders keyword groups the way spec.md section 4.6 requires:
// identity/reference keywords first, then simple non-recursive assertions,
// then recursive applicators, then the keywords that depend on what the
// applicators evaluated (unevaluatedItems/unevaluatedProperties), and
// finally non-blocking annotation-producing keywords (format, content,
// metadata).
type keywordClass int

const (
	classReference keywordClass = iota
	classAssertion
	classApplicator
	classUnevaluated
	classAnnotation
	numKeywordClasses
)

// keywordFunc evaluates one keyword at one node against one instance,
// reporting failures and annotations onto ctx.result and folding any
// coverage it grants into ctx.evaluatedProps/evaluatedItems.
type keywordFunc func(ctx *evalContext)

type keywordEntry struct {
	class keywordClass
	fn    keywordFunc
	// minSpec gates keywords introduced after Draft6 (if/then/else in
	// Draft7+, unevaluatedItems/Properties, $recursiveRef/$recursiveAnchor,
	// dependentSchemas/dependentRequired in 2019-09+).
	minSpec Specification
	// priority orders keywords within the same class, since two keywords
	// can share a class yet still have a one-way dependency (additional
	// Properties/additionalItems read the evaluatedProps/evaluatedItems
	// that properties/patternProperties/items populate); it must not
	// depend on the order the keywords happen to appear in the schema
	// document. Lower runs first; ties keep the order the keywords appear
	// in the schema document.
	priority int
}

var keywordTable = map[string]keywordEntry{}

func registerKeyword(name string, class keywordClass, minSpec Specification, fn keywordFunc) {
	keywordTable[name] = keywordEntry{class: class, fn: fn, minSpec: minSpec}
}

func registerKeywordPriority(name string, class keywordClass, minSpec Specification, priority int, fn keywordFunc) {
	keywordTable[name] = keywordEntry{class: class, fn: fn, minSpec: minSpec, priority: priority}
}

// evalContext is threaded through one keyword's evaluation.
type evalContext struct {
	ev             *evaluation
	n              *node
	keyword        string
	instance       ojson.Value
	frame          Frame
	result         *Result
	evaluatedProps map[string]bool
	evaluatedItems map[int]bool
}

func (c *evalContext) fieldValue() ojson.Value {
	v, _ := c.n.field(c.keyword)
	return v
}

func (c *evalContext) fail(code, message string, params map[string]any) {
	err := NewError(c.keyword, code, message, params)
	err.Locator = Locator{
		InstanceLocation: c.frame.InstanceLocation,
		EvaluationPath:   c.frame.EvaluationPath.Append(c.keyword),
		SchemaLocation:   c.n.absoluteLocation() + "/" + c.keyword,
	}
	c.result.addError(err)
}

func (c *evalContext) annotate(value any) {
	if !c.ev.options.CollectAnnotations {
		return
	}
	c.result.addAnnotation(Annotation{
		Locator: Locator{
			InstanceLocation: c.frame.InstanceLocation,
			EvaluationPath:   c.frame.EvaluationPath.Append(c.keyword),
			SchemaLocation:   c.n.absoluteLocation() + "/" + c.keyword,
		},
		Keyword: c.keyword,
		Value:   value,
	})
}

// evaluateSub recurses into a nested schema node at keyword (optionally
// with an index/property suffix already folded into frame), returning the
// sub-Result plus the properties/items it evaluated so the calling keyword
// can merge coverage into its own evaluatedProps/evaluatedItems, the way the
// teacher's per-keyword evaluate functions return and merge those maps.
func (c *evalContext) evaluateSub(sub *node, instance ojson.Value, frame Frame) (*Result, map[string]bool, map[int]bool) {
	return c.ev.evaluate(sub, instance, frame.EvaluationPath, frame.InstanceLocation, c.ev.scope)
}

// evaluateSubScoped is evaluateSub but evaluates under the given dynamic
// scope instead of the current one; keywords that enter a new resource
// ($ref/$recursiveRef) pass a scope they have already pushed onto.
func (c *evalContext) evaluateSubScoped(sub *node, instance ojson.Value, frame Frame, scope *dynamicScope) (*Result, map[string]bool, map[int]bool) {
	return c.ev.evaluate(sub, instance, frame.EvaluationPath, frame.InstanceLocation, scope)
}

func mergeInto(dstProps map[string]bool, dstItems map[int]bool, srcProps map[string]bool, srcItems map[int]bool) {
	for k := range srcProps {
		dstProps[k] = true
	}
	for k := range srcItems {
		dstItems[k] = true
	}
}

// evaluation carries the state shared across one Validate call: the
// compiled Schema, the options in effect, and cycle-breaking bookkeeping.
type evaluation struct {
	schema  *Schema
	options Options
	active  map[string]bool
	scope   *dynamicScope
}

func (c *Compiler) newEvaluation(s *Schema) *evaluation {
	return &evaluation{schema: s, options: c.options, active: make(map[string]bool), scope: newDynamicScope()}
}

// evaluate is the apply() operation of spec.md section 4.6: evaluate node n
// against instance at the given paths, returning one Result.
func (ev *evaluation) evaluate(n *node, instance ojson.Value, evalPath, instancePath jsonpath.Path, scope *dynamicScope) (*Result, map[string]bool, map[int]bool) {
	frame := Frame{
		BaseURI:          n.base,
		Spec:             n.spec,
		EvaluationPath:   evalPath,
		InstanceLocation: instancePath,
		IsRoot:           evalPath.Len() == 0,
	}

	evaluatedProps := map[string]bool{}
	evaluatedItems := map[int]bool{}

	cycleKey := n.absoluteLocation() + "@" + instancePath.String()
	if ev.active[cycleKey] {
		return ev.finalize(newResult(Locator{InstanceLocation: instancePath, EvaluationPath: evalPath, SchemaLocation: n.absoluteLocation()})), evaluatedProps, evaluatedItems
	}
	ev.active[cycleKey] = true
	defer delete(ev.active, cycleKey)

	result := newResult(Locator{InstanceLocation: instancePath, EvaluationPath: evalPath, SchemaLocation: n.absoluteLocation()})

	if n.isBoolean() {
		if !n.value.Bool() {
			result.addError(&Error{
				Locator: Locator{InstanceLocation: instancePath, EvaluationPath: evalPath, SchemaLocation: n.absoluteLocation()},
				Keyword: "",
				Code:    "falseSchema",
				Message: "instance rejected by boolean schema `false`",
			})
		}
		return ev.finalize(result), evaluatedProps, evaluatedItems
	}

	obj := n.object()
	prevScope := ev.scope
	ev.scope = scope
	defer func() { ev.scope = prevScope }()

	// Pre-2019-09: a sibling-ignoring $ref short-circuits everything else.
	if !n.spec.AtLeast(Draft2019_09) {
		if _, hasRef := obj.Get("$ref"); hasRef {
			c := &evalContext{ev: ev, n: n, keyword: "$ref", instance: instance, frame: frame, result: result,
				evaluatedProps: evaluatedProps, evaluatedItems: evaluatedItems}
			evaluateRef(c)
			return ev.finalize(result), evaluatedProps, evaluatedItems
		}
	}

	for class := keywordClass(0); class < numKeywordClasses; class++ {
		var keys []string
		for _, key := range obj.Keys() {
			entry, known := keywordTable[key]
			if !known || entry.class != class || !n.spec.AtLeast(entry.minSpec) {
				continue
			}
			keys = append(keys, key)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return keywordTable[keys[i]].priority < keywordTable[keys[j]].priority
		})
		for _, key := range keys {
			entry := keywordTable[key]
			c := &evalContext{
				ev: ev, n: n, keyword: key, instance: instance, frame: frame, result: result,
				evaluatedProps: evaluatedProps, evaluatedItems: evaluatedItems,
			}
			entry.fn(c)
		}
	}

	return ev.finalize(result), evaluatedProps, evaluatedItems
}

// finalize applies the per-frame post-evaluation pass spec.md section
// 4.6.g requires (properties P4/P5) before a Result is handed back to the
// calling keyword or caller: a successful frame prunes every Error beneath
// it rather than letting a superseded branch failure read as live, and a
// failing frame discards its Annotations when COLLECT_ANNOTATIONS_FOR_FAILED
// is off.
func (ev *evaluation) finalize(result *Result) *Result {
	pruneErrors(result)
	pruneAnnotations(result, ev.options.CollectAnnotationsForFailed)
	return result
}

func typeMismatchMessage(expected string) string {
	return fmt.Sprintf("must be of type %s", expected)
}
