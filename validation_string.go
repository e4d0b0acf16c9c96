package jsonschema

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/schemacore/jsonschema/internal/ojson"
)

func init() {
	registerKeyword("minLength", classAssertion, Draft6, evaluateMinLength)
	registerKeyword("maxLength", classAssertion, Draft6, evaluateMaxLength)
	registerKeyword("pattern", classAssertion, Draft6, evaluatePattern)
}

func (c *evalContext) integerField() (int, bool) {
	fv := c.fieldValue()
	if fv.Kind() != ojson.KindNumber || !fv.Number().IsInteger() {
		return 0, false
	}
	return int(fv.Number().Float64()), true
}

// codePointCount reports the Unicode code-point count of s per spec.md
// §4.7, NFC-normalizing first so that a combining-character sequence and
// its precomposed equivalent count the same way.
func codePointCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

func evaluateMinLength(c *evalContext) {
	if c.instance.Kind() != ojson.KindString {
		return
	}
	min, ok := c.integerField()
	if !ok {
		return
	}
	length := codePointCount(c.instance.Str())
	if length < min {
		c.fail("minLength", "must be at least {minLength} characters", map[string]any{"minLength": min, "length": length})
	}
}

func evaluateMaxLength(c *evalContext) {
	if c.instance.Kind() != ojson.KindString {
		return
	}
	max, ok := c.integerField()
	if !ok {
		return
	}
	length := codePointCount(c.instance.Str())
	if length > max {
		c.fail("maxLength", "must be at most {maxLength} characters", map[string]any{"maxLength": max, "length": length})
	}
}

// evaluatePattern matches against the node's pre-compiled regexp (patterns.go
// compiles every pattern at Compile time, so a malformed pattern is reported
// there rather than here).
func evaluatePattern(c *evalContext) {
	if c.instance.Kind() != ojson.KindString {
		return
	}
	patVal := c.fieldValue()
	if patVal.Kind() != ojson.KindString {
		return
	}
	re, ok := c.n.compiledPatterns[patVal.Str()]
	if !ok {
		return
	}
	if !re.MatchString(c.instance.Str()) {
		c.fail("pattern", "must match pattern {pattern}", map[string]any{"pattern": patVal.Str()})
	}
}
