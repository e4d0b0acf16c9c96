package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeywordPriority("items", classApplicator, Draft6, 0, evaluateItems)
	registerKeywordPriority("additionalItems", classApplicator, Draft6, 1, evaluateAdditionalItems)
	registerKeyword("contains", classApplicator, Draft6, evaluateContains)
	registerKeyword("unevaluatedItems", classUnevaluated, Draft2019_09, evaluateUnevaluatedItems)
}

// evaluateItems implements Draft-06/07/2019-09's polymorphic items: either a
// single schema every array element must validate against, or an array of
// schemas validated positionally (the predecessor of 2020-12's split into
// prefixItems+items, which these three drafts don't have).
func evaluateItems(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	itemsVal := c.fieldValue()
	array := c.instance.Array()

	switch itemsVal.Kind() {
	case ojson.KindObject, ojson.KindBool:
		sub, ok := c.n.childNode("items")
		if !ok {
			return
		}
		var failedIdx []int
		for i := range array {
			frame := c.frame.childIndex("items", i)
			result, props, items := c.evaluateSub(sub, array[i], frame)
			c.result.addDetail(result)
			if result.Valid {
				c.evaluatedItems[i] = true
				mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
			} else {
				failedIdx = append(failedIdx, i)
			}
		}
		if len(failedIdx) > 0 {
			c.fail("items", "array items do not match the items schema", map[string]any{"failed": failedIdx})
		}

	case ojson.KindArray:
		schemas := itemsVal.Array()
		var failedIdx []int
		for i := 0; i < len(schemas) && i < len(array); i++ {
			sub, ok := c.n.childNodeAt(c.n.pointer.Append("items").AppendIndex(i))
			if !ok {
				continue
			}
			frame := c.frame.childIndexed("items", i)
			result, props, items := c.evaluateSub(sub, array[i], frame)
			c.result.addDetail(result)
			if result.Valid {
				c.evaluatedItems[i] = true
				mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
			} else {
				failedIdx = append(failedIdx, i)
			}
		}
		if len(failedIdx) > 0 {
			c.fail("items", "array items do not match their positional items schemas", map[string]any{"failed": failedIdx})
		}
	}
}

// evaluateAdditionalItems validates elements beyond items' array-of-schemas
// length; it has nothing to do when items is a single schema (which already
// governs every element) or absent.
func evaluateAdditionalItems(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	itemsVal, hasItems := c.n.field("items")
	if !hasItems || itemsVal.Kind() != ojson.KindArray {
		return
	}
	sub, ok := c.n.childNode("additionalItems")
	if !ok {
		return
	}
	array := c.instance.Array()
	start := len(itemsVal.Array())
	var failedIdx []int
	for i := start; i < len(array); i++ {
		frame := c.frame.childIndex("additionalItems", i)
		result, props, items := c.evaluateSub(sub, array[i], frame)
		c.result.addDetail(result)
		if result.Valid {
			c.evaluatedItems[i] = true
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			failedIdx = append(failedIdx, i)
		}
	}
	if len(failedIdx) > 0 {
		c.fail("additionalItems", "additional array items do not match the additionalItems schema", map[string]any{"failed": failedIdx})
	}
}

// evaluateContains requires at least minContains (default 1, 2019-09+ only)
// and at most maxContains (2019-09+ only) elements to validate against the
// contains subschema; every matching index is marked evaluated.
func evaluateContains(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	sub, ok := c.n.childNode("contains")
	if !ok {
		return
	}
	array := c.instance.Array()
	validCount := 0
	for i, elem := range array {
		frame := c.frame.childIndex("contains", i)
		result, _, _ := c.evaluateSub(sub, elem, frame)
		if result.Valid {
			validCount++
			c.evaluatedItems[i] = true
		}
	}

	minContains := 1
	if c.n.spec.AtLeast(Draft2019_09) {
		if mcVal, ok := c.n.field("minContains"); ok && mcVal.Kind() == ojson.KindNumber && mcVal.Number().IsInteger() {
			minContains = int(mcVal.Number().Float64())
		}
	}
	if validCount < minContains {
		c.fail("contains", "array must contain at least {minContains} item(s) matching the contains schema", map[string]any{"minContains": minContains, "count": validCount})
		return
	}
	if c.n.spec.AtLeast(Draft2019_09) {
		if mxVal, ok := c.n.field("maxContains"); ok && mxVal.Kind() == ojson.KindNumber && mxVal.Number().IsInteger() {
			maxContains := int(mxVal.Number().Float64())
			if validCount > maxContains {
				c.fail("contains", "array must contain at most {maxContains} item(s) matching the contains schema", map[string]any{"maxContains": maxContains, "count": validCount})
			}
		}
	}
}

// evaluateUnevaluatedItems applies its subschema to every array index not
// already marked evaluated by items/additionalItems/contains (or a sibling
// unevaluatedItems in a $ref'd or allOf'd schema, since evaluatedItems is
// threaded through the whole node's evaluation before this runs — it is
// registered in classUnevaluated, after classApplicator).
func evaluateUnevaluatedItems(c *evalContext) {
	if c.instance.Kind() != ojson.KindArray {
		return
	}
	sub, ok := c.n.childNode("unevaluatedItems")
	if !ok {
		return
	}
	array := c.instance.Array()
	var failedIdx []int
	for i, elem := range array {
		if c.evaluatedItems[i] {
			continue
		}
		frame := c.frame.childIndex("unevaluatedItems", i)
		result, props, items := c.evaluateSub(sub, elem, frame)
		c.result.addDetail(result)
		if result.Valid {
			c.evaluatedItems[i] = true
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			failedIdx = append(failedIdx, i)
		}
	}
	if len(failedIdx) > 0 {
		c.fail("unevaluatedItems", "unevaluated array items do not match the unevaluatedItems schema", map[string]any{"failed": failedIdx})
	}
}
