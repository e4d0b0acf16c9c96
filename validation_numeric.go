package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeyword("multipleOf", classAssertion, Draft6, evaluateMultipleOf)
	registerKeyword("maximum", classAssertion, Draft6, evaluateMaximum)
	registerKeyword("exclusiveMaximum", classAssertion, Draft6, evaluateExclusiveMaximum)
	registerKeyword("minimum", classAssertion, Draft6, evaluateMinimum)
	registerKeyword("exclusiveMinimum", classAssertion, Draft6, evaluateExclusiveMinimum)
}

func (c *evalContext) numericField() (v ojson.Value, ok bool) {
	fv := c.fieldValue()
	if fv.Kind() != ojson.KindNumber {
		return ojson.Value{}, false
	}
	return fv, true
}

// evaluateMultipleOf checks that instance / multipleOf is an integer.
// Draft-06 made exclusiveMinimum/exclusiveMaximum numeric (this function is
// unaffected by that change, carried from Draft-04 unchanged).
func evaluateMultipleOf(c *evalContext) {
	if c.instance.Kind() != ojson.KindNumber {
		return
	}
	divVal, ok := c.numericField()
	if !ok {
		return
	}
	div := divVal.Number()
	if div.Sign() <= 0 {
		return // malformed schema: multipleOf must be > 0, nothing to assert
	}
	if !c.instance.Number().IsMultipleOf(div) {
		c.fail("multipleOf", "{value} should be a multiple of {multipleOf}", map[string]any{
			"value":      c.instance.Number().String(),
			"multipleOf": div.String(),
		})
	}
}

func evaluateMaximum(c *evalContext) {
	if c.instance.Kind() != ojson.KindNumber {
		return
	}
	maxVal, ok := c.numericField()
	if !ok {
		return
	}
	if c.instance.Number().Cmp(maxVal.Number()) > 0 {
		c.fail("maximum", "{value} should be at most {maximum}", map[string]any{
			"value": c.instance.Number().String(), "maximum": maxVal.Number().String(),
		})
	}
}

func evaluateExclusiveMaximum(c *evalContext) {
	if c.instance.Kind() != ojson.KindNumber {
		return
	}
	maxVal, ok := c.numericField()
	if !ok {
		return
	}
	if c.instance.Number().Cmp(maxVal.Number()) >= 0 {
		c.fail("exclusiveMaximum", "{value} should be less than {exclusiveMaximum}", map[string]any{
			"value": c.instance.Number().String(), "exclusiveMaximum": maxVal.Number().String(),
		})
	}
}

func evaluateMinimum(c *evalContext) {
	if c.instance.Kind() != ojson.KindNumber {
		return
	}
	minVal, ok := c.numericField()
	if !ok {
		return
	}
	if c.instance.Number().Cmp(minVal.Number()) < 0 {
		c.fail("minimum", "{value} should be at least {minimum}", map[string]any{
			"value": c.instance.Number().String(), "minimum": minVal.Number().String(),
		})
	}
}

func evaluateExclusiveMinimum(c *evalContext) {
	if c.instance.Kind() != ojson.KindNumber {
		return
	}
	minVal, ok := c.numericField()
	if !ok {
		return
	}
	if c.instance.Number().Cmp(minVal.Number()) <= 0 {
		c.fail("exclusiveMinimum", "{value} should be greater than {exclusiveMinimum}", map[string]any{
			"value": c.instance.Number().String(), "exclusiveMinimum": minVal.Number().String(),
		})
	}
}
