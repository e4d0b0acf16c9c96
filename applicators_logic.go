package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeyword("allOf", classApplicator, Draft6, evaluateAllOf)
	registerKeyword("anyOf", classApplicator, Draft6, evaluateAnyOf)
	registerKeyword("oneOf", classApplicator, Draft6, evaluateOneOf)
	registerKeyword("not", classApplicator, Draft6, evaluateNot)
	registerKeyword("if", classApplicator, Draft7, evaluateIf)
}

func evaluateAllOf(c *evalContext) {
	arrVal := c.fieldValue()
	if arrVal.Kind() != ojson.KindArray {
		return
	}
	var failedIdx []int
	for i := range arrVal.Array() {
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("allOf").AppendIndex(i))
		if !ok {
			continue
		}
		frame := c.frame
		frame.EvaluationPath = c.frame.EvaluationPath.Append("allOf").AppendIndex(i)
		result, props, items := c.evaluateSub(sub, c.instance, frame)
		c.result.addDetail(result)
		if result.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			failedIdx = append(failedIdx, i)
		}
	}
	if len(failedIdx) > 0 {
		c.fail("allOf", "must match all of the allOf schemas", map[string]any{"failed": failedIdx})
	}
}

func evaluateAnyOf(c *evalContext) {
	arrVal := c.fieldValue()
	if arrVal.Kind() != ojson.KindArray {
		return
	}
	matched := false
	for i := range arrVal.Array() {
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("anyOf").AppendIndex(i))
		if !ok {
			continue
		}
		frame := c.frame
		frame.EvaluationPath = c.frame.EvaluationPath.Append("anyOf").AppendIndex(i)
		result, props, items := c.evaluateSub(sub, c.instance, frame)
		c.result.addDetail(result)
		if result.Valid {
			matched = true
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		}
	}
	if !matched {
		c.fail("anyOf", "must match at least one of the anyOf schemas", nil)
	}
}

func evaluateOneOf(c *evalContext) {
	arrVal := c.fieldValue()
	if arrVal.Kind() != ojson.KindArray {
		return
	}
	var matched []int
	var matchedProps map[string]bool
	var matchedItems map[int]bool
	for i := range arrVal.Array() {
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("oneOf").AppendIndex(i))
		if !ok {
			continue
		}
		frame := c.frame
		frame.EvaluationPath = c.frame.EvaluationPath.Append("oneOf").AppendIndex(i)
		result, props, items := c.evaluateSub(sub, c.instance, frame)
		c.result.addDetail(result)
		if result.Valid {
			matched = append(matched, i)
			matchedProps, matchedItems = props, items
		}
	}
	switch len(matched) {
	case 0:
		c.fail("oneOf", "must match exactly one of the oneOf schemas, but matched none", nil)
	case 1:
		mergeInto(c.evaluatedProps, c.evaluatedItems, matchedProps, matchedItems)
	default:
		c.fail("oneOf", "must match exactly one of the oneOf schemas, but matched {matched}", map[string]any{"matched": matched})
	}
}

func evaluateNot(c *evalContext) {
	sub, ok := c.n.childNode("not")
	if !ok {
		return
	}
	frame := c.frame.child("not")
	result, _, _ := c.evaluateSub(sub, c.instance, frame)
	c.result.addDetail(result)
	if result.Valid {
		c.fail("not", "must not match the not schema", nil)
	}
}

// evaluateIf drives if/then/else together: then and else aren't registered
// as standalone keywords since their applicability depends entirely on if's
// outcome, the way the teacher's single evaluateConditional combines all three.
func evaluateIf(c *evalContext) {
	ifNode, ok := c.n.childNode("if")
	if !ok {
		return
	}
	ifFrame := c.frame.child("if")
	ifResult, ifProps, ifItems := c.evaluateSub(ifNode, c.instance, ifFrame)
	c.result.addDetail(ifResult)

	if ifResult.Valid {
		mergeInto(c.evaluatedProps, c.evaluatedItems, ifProps, ifItems)
		if thenNode, ok := c.n.childNode("then"); ok {
			thenFrame := c.frame.child("then")
			thenResult, thenProps, thenItems := c.evaluateSub(thenNode, c.instance, thenFrame)
			c.result.addDetail(thenResult)
			if thenResult.Valid {
				mergeInto(c.evaluatedProps, c.evaluatedItems, thenProps, thenItems)
			} else {
				c.fail("then", "must match the then schema when if matches", nil)
			}
		}
	} else if elseNode, ok := c.n.childNode("else"); ok {
		elseFrame := c.frame.child("else")
		elseResult, elseProps, elseItems := c.evaluateSub(elseNode, c.instance, elseFrame)
		c.result.addDetail(elseResult)
		if elseResult.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, elseProps, elseItems)
		} else {
			c.fail("else", "must match the else schema when if does not match", nil)
		}
	}
}
