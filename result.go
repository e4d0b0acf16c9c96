package jsonschema

import (
	"strings"

	"github.com/kaptinlin/go-i18n"

	"github.com/schemacore/jsonschema/internal/jsonpath"
)

// Locator pins an annotation or error to the three coordinates spec.md
// section 3 requires: where in the instance it applies, the dynamic
// keyword path that produced it, and the absolute schema location of the
// keyword itself.
type Locator struct {
	InstanceLocation jsonpath.Path
	EvaluationPath   jsonpath.Path
	SchemaLocation   string
}

// Annotation is a non-error side effect of a successful keyword
// application (title, description, format, contentMediaType, etc.),
// collected when COLLECT_ANNOTATIONS is enabled.
type Annotation struct {
	Locator
	Keyword string
	Value   any
}

// Error reports a single keyword's validation failure. Message is a
// template with {curly}-braced Params substitutions, the same convention
// the teacher's EvaluationError.Error uses.
type Error struct {
	Locator
	Keyword string
	Code    string
	Message string
	Params  map[string]any
	// Pruned marks an error recorded under a keyword location whose
	// sub-schema ultimately succeeded (spec.md section 4.6.g, property
	// P4). It is retained rather than deleted so the full evaluation
	// history stays inspectable, but it did not determine the outcome.
	Pruned bool
}

// NewError builds an Error, optionally attaching template parameters.
func NewError(keyword, code, message string, params ...map[string]any) *Error {
	e := &Error{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *Error) Error() string { return replace(e.Message, e.Params) }

// Localize renders e.Message through localizer, falling back to Error()
// when localizer is nil, matching the teacher's EvaluationError.Localize.
func (e *Error) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

func replace(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	var b strings.Builder
	for k, v := range params {
		template = strings.ReplaceAll(template, "{"+k+"}", toDisplay(v))
	}
	b.WriteString(template)
	return b.String()
}

func toDisplay(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmtStringer:
		return t.String()
	default:
		return stringifyAny(v)
	}
}

type fmtStringer interface{ String() string }

// Result is the outcome of evaluating one schema location against one
// instance location: the basic building block spec.md section 6 composes
// into Flag/Basic/Detailed output shapes.
type Result struct {
	Valid            bool
	EvaluationPath   jsonpath.Path
	SchemaLocation   string
	InstanceLocation jsonpath.Path
	Annotations      []Annotation
	Errors           []*Error
	Details          []*Result
}

func newResult(loc Locator) *Result {
	return &Result{
		Valid:            true,
		EvaluationPath:   loc.EvaluationPath,
		SchemaLocation:   loc.SchemaLocation,
		InstanceLocation: loc.InstanceLocation,
	}
}

func (r *Result) addError(err *Error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

func (r *Result) addAnnotation(a Annotation) {
	r.Annotations = append(r.Annotations, a)
}

// pruneErrors implements spec.md section 4.6.g / property P4: once a
// frame's own Result is valid, every Error recorded anywhere beneath it
// — including under a descendant branch that failed on its own, such as
// an unmatched anyOf/oneOf alternative — is superseded by that success
// and gets marked Pruned rather than removed. A frame that is itself
// invalid leaves its own Errors alone but still walks its Details, since
// a deeper descendant may have succeeded independently.
func pruneErrors(r *Result) {
	if r.Valid {
		markErrorsPruned(r)
		return
	}
	for _, d := range r.Details {
		pruneErrors(d)
	}
}

func markErrorsPruned(r *Result) {
	for _, e := range r.Errors {
		e.Pruned = true
	}
	for _, d := range r.Details {
		markErrorsPruned(d)
	}
}

// pruneAnnotations implements spec.md section 4.6.g / property P5: when a
// frame fails and COLLECT_ANNOTATIONS_FOR_FAILED is off, every Annotation
// recorded anywhere under it is discarded, since none of them contributed
// to a successful outcome at that keyword location.
func pruneAnnotations(r *Result, collectForFailed bool) {
	if !r.Valid && !collectForFailed {
		clearAnnotations(r)
		return
	}
	for _, d := range r.Details {
		pruneAnnotations(d, collectForFailed)
	}
}

func clearAnnotations(r *Result) {
	r.Annotations = nil
	for _, d := range r.Details {
		clearAnnotations(d)
	}
}

// addDetail attaches a child evaluation's Result to the Details tree for
// reporting. It never touches r.Valid: a combinator keyword (anyOf, oneOf,
// not, if, contains, ...) may evaluate children that are expected to fail as
// part of its own passing outcome, so only the keyword's own c.fail call may
// mark the parent invalid — see evaluateOneOf and evaluateNot.
func (r *Result) addDetail(d *Result) {
	if d == nil {
		return
	}
	r.Details = append(r.Details, d)
}

// Flag collapses a Result to the minimal {"valid": bool} output shape.
type Flag struct {
	Valid bool `json:"valid"`
}

// ToFlag returns the Flag output format (spec.md section 6).
func (r *Result) ToFlag() Flag { return Flag{Valid: r.Valid} }

// List is the flat output format: every Result in the tree rendered as one
// list entry, annotations only reported when the owning keyword succeeded
// (unless COLLECT_ANNOTATIONS_FOR_FAILED is set, handled by the caller
// before this is built).
type List struct {
	Valid            bool           `json:"valid"`
	KeywordLocation  string         `json:"keywordLocation"`
	InstanceLocation string         `json:"instanceLocation"`
	Annotations      map[string]any `json:"annotations,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
}

// ToList flattens the Result tree into the list output format.
func (r *Result) ToList() []List {
	var out []List
	r.flattenToList(&out)
	return out
}

func (r *Result) flattenToList(out *[]List) {
	entry := List{
		Valid:            r.Valid,
		KeywordLocation:  r.EvaluationPath.String(),
		InstanceLocation: r.InstanceLocation.String(),
	}
	if len(r.Errors) > 0 {
		entry.Errors = make(map[string]string, len(r.Errors))
		for _, e := range r.Errors {
			entry.Errors[e.Keyword] = e.Error()
		}
	}
	if len(r.Annotations) > 0 {
		entry.Annotations = make(map[string]any, len(r.Annotations))
		for _, a := range r.Annotations {
			entry.Annotations[a.Keyword] = a.Value
		}
	}
	*out = append(*out, entry)
	for _, d := range r.Details {
		d.flattenToList(out)
	}
}

// GetDetailedErrors walks the Result tree and returns every Error found,
// depth first, matching the teacher's GetDetailedErrors/collectDetailedErrors.
func (r *Result) GetDetailedErrors() []*Error {
	var out []*Error
	r.collectDetailedErrors(&out)
	return out
}

func (r *Result) collectDetailedErrors(out *[]*Error) {
	*out = append(*out, r.Errors...)
	for _, d := range r.Details {
		d.collectDetailedErrors(out)
	}
}

// CollectAnnotations walks the Result tree and returns every Annotation
// whose keyword is in the given set (empty set means all).
func (r *Result) CollectAnnotations(keywords ...string) []Annotation {
	want := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		want[k] = true
	}
	var out []Annotation
	r.collectAnnotations(want, &out)
	return out
}

func (r *Result) collectAnnotations(want map[string]bool, out *[]Annotation) {
	for _, a := range r.Annotations {
		if len(want) == 0 || want[a.Keyword] {
			*out = append(*out, a)
		}
	}
	for _, d := range r.Details {
		d.collectAnnotations(want, out)
	}
}
