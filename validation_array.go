package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeyword("minItems", classAssertion, Draft6, evaluateMinItems)
	registerKeyword("maxItems", classAssertion, Draft6, evaluateMaxItems)
	registerKeyword("uniqueItems", classAssertion, Draft6, evaluateUniqueItems)
}

func evaluateMinItems(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	min, ok := c.integerField()
	if !ok {
		return
	}
	if len(c.instance.Array()) < min {
		c.fail("minItems", "must have at least {minItems} items", map[string]any{"minItems": min, "count": len(c.instance.Array())})
	}
}

func evaluateMaxItems(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	max, ok := c.integerField()
	if !ok {
		return
	}
	if len(c.instance.Array()) > max {
		c.fail("maxItems", "must have at most {maxItems} items", map[string]any{"maxItems": max, "count": len(c.instance.Array())})
	}
}

// evaluateUniqueItems compares the elements pairwise with ojson.Value.Equal
// (JSON value equality, so objects with the same members in a different
// order and numbers such as 1 and 1.0 count as duplicates) rather than
// comparing serialized JSON text.
func evaluateUniqueItems(c *evalContext) {
	uniqueVal := c.fieldValue()
	if uniqueVal.Kind() != ojson.KindBool || !uniqueVal.Bool() {
		return
	}
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	items := c.instance.Array()
	var duplicateAt []int
	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if items[i].Equal(items[j]) {
				duplicateAt = append(duplicateAt, i)
				break
			}
		}
	}
	if len(duplicateAt) > 0 {
		c.fail("uniqueItems", "array items must be unique", map[string]any{"duplicates": duplicateAt})
	}
}
