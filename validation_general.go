package jsonschema

import (
	"strings"

	"github.com/schemacore/jsonschema/internal/ojson"
)

func init() {
	registerKeyword("type", classAssertion, Draft6, evaluateType)
	registerKeyword("enum", classAssertion, Draft6, evaluateEnum)
	registerKeyword("const", classAssertion, Draft6, evaluateConst)
}

// evaluateType checks the instance's JSON type against the type keyword,
// which may be a single type name or an array of them; "integer" matches
// any number with a zero fractional part.
func evaluateType(c *evalContext) {
	typeVal := c.fieldValue()

	var names []string
	switch typeVal.Kind() {
	case ojson.KindString:
		names = []string{typeVal.Str()}
	case ojson.KindArray:
		for _, e := range typeVal.Array() {
			if e.Kind() == ojson.KindString {
				names = append(names, e.Str())
			}
		}
	default:
		return
	}

	actual := c.instance.TypeName()
	for _, want := range names {
		if want == actual {
			return
		}
		if want == "number" && actual == "integer" {
			return
		}
	}

	c.fail("type", "must be of type {expected} but is {actual}", map[string]any{
		"expected": strings.Join(names, ", "),
		"actual":   actual,
	})
}

// evaluateEnum checks the instance equals one of the enum's listed values.
func evaluateEnum(c *evalContext) {
	enumVal := c.fieldValue()
	if enumVal.Kind() != ojson.KindArray {
		return
	}
	for _, candidate := range enumVal.Array() {
		if c.instance.Equal(candidate) {
			return
		}
	}
	c.fail("enum", "must be one of the enumerated values", nil)
}

// evaluateConst checks the instance equals the single const value.
func evaluateConst(c *evalContext) {
	constVal := c.fieldValue()
	if !c.instance.Equal(constVal) {
		c.fail("const", "must equal the constant value", nil)
	}
}
