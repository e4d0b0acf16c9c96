package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeyword("format", classAnnotation, Draft6, evaluateFormat)
}

// evaluateFormat implements the format keyword: it always annotates, and
// additionally asserts when AssertFormat is set, consulting the Compiler's
// custom formats first and falling back to the global Formats registry
// (formats.go), same precedence as the teacher's evaluateFormat.
func evaluateFormat(c *evalContext) {
	fmtVal := c.fieldValue()
	if fmtVal.Kind() != ojson.KindString {
		return
	}
	name := fmtVal.Str()
	c.annotate(name)

	if !c.ev.options.AssertFormat {
		return
	}

	validate, ok := c.lookupFormat(name)
	if !ok {
		return // unknown format names are ignored
	}
	if !validate(formatInput(c.instance)) {
		c.fail("format", "must match format {format}", map[string]any{"format": name})
	}
}

func (c *evalContext) lookupFormat(name string) (func(any) bool, bool) {
	comp := c.ev.schema.compiler
	comp.customFormatsMu.RLock()
	fn, ok := comp.customFormats[name]
	comp.customFormatsMu.RUnlock()
	if ok {
		return fn, true
	}
	fn, ok = Formats[name]
	return fn, ok
}

// formatInput converts the ojson.Value instance into the plain Go value the
// Formats validators (formats.go) type-switch on; they return true for
// types they don't recognize, so non-string instances simply pass.
func formatInput(v ojson.Value) any {
	switch v.Kind() {
	case ojson.KindString:
		return v.Str()
	case ojson.KindNumber:
		return v.Number().Float64()
	case ojson.KindBool:
		return v.Bool()
	default:
		return nil
	}
}
