package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeyword("minProperties", classAssertion, Draft6, evaluateMinProperties)
	registerKeyword("maxProperties", classAssertion, Draft6, evaluateMaxProperties)
	registerKeyword("required", classAssertion, Draft6, evaluateRequired)
	registerKeyword("dependentRequired", classAssertion, Draft2019_09, evaluateDependentRequired)
	registerKeyword("dependencies", classApplicator, Draft6, evaluateDependencies)
}

func evaluateMinProperties(c *evalContext) {
	if c.instance.Kind() != ojson.KindObject {
		return
	}
	min, ok := c.integerField()
	if !ok {
		return
	}
	if c.instance.Object().Len() < min {
		c.fail("minProperties", "must have at least {minProperties} properties", map[string]any{"minProperties": min})
	}
}

func evaluateMaxProperties(c *evalContext) {
	if c.instance.Kind() != ojson.KindObject {
		return
	}
	max, ok := c.integerField()
	if !ok {
		return
	}
	if c.instance.Object().Len() > max {
		c.fail("maxProperties", "must have at most {maxProperties} properties", map[string]any{"maxProperties": max})
	}
}

func evaluateRequired(c *evalContext) {
	reqVal := c.fieldValue()
	if reqVal.Kind() != ojson.KindArray || c.instance.Kind() != ojson.KindObject {
		return
	}
	var missing []string
	for _, nameVal := range reqVal.Array() {
		if nameVal.Kind() != ojson.KindString {
			continue
		}
		if !c.instance.Object().Has(nameVal.Str()) {
			missing = append(missing, nameVal.Str())
		}
	}
	if len(missing) > 0 {
		c.fail("required", "missing required properties: {missing}", map[string]any{"missing": missing})
	}
}

// evaluateDependentRequired implements 2019-09's split-out half of Draft-06/07's
// `dependencies`: a property present in the instance requires the listed
// sibling properties to also be present.
func evaluateDependentRequired(c *evalContext) {
	depVal := c.fieldValue()
	if depVal.Kind() != ojson.KindObject || c.instance.Kind() != ojson.KindObject {
		return
	}
	missing := map[string][]string{}
	for _, key := range depVal.Object().Keys() {
		if !c.instance.Object().Has(key) {
			continue
		}
		reqList, _ := depVal.Object().Get(key)
		if reqList.Kind() != ojson.KindArray {
			continue
		}
		for _, nameVal := range reqList.Array() {
			if nameVal.Kind() != ojson.KindString {
				continue
			}
			if !c.instance.Object().Has(nameVal.Str()) {
				missing[key] = append(missing[key], nameVal.Str())
			}
		}
	}
	if len(missing) > 0 {
		c.fail("dependentRequired", "properties required by other present properties are missing", map[string]any{"missing": missing})
	}
}

// evaluateDependencies implements Draft-06/07's dependencies keyword: each
// member is either an array of required-sibling-property names (the
// dependentRequired shape) or a schema the whole instance must validate
// against when the member's key is present (the dependentSchemas shape).
// 2019-09 splits these into dependentRequired/dependentSchemas; the keyword
// table registers this keyword from Draft6 on, and the function itself
// returns without effect for 2019-09 schemas, so "dependencies" there is
// ignored like any other unknown keyword.
func evaluateDependencies(c *evalContext) {
	if c.n.spec.AtLeast(Draft2019_09) {
		return
	}
	depVal := c.fieldValue()
	if depVal.Kind() != ojson.KindObject || c.instance.Kind() != ojson.KindObject {
		return
	}
	missing := map[string][]string{}
	var invalidSchemas []string
	for _, key := range depVal.Object().Keys() {
		if !c.instance.Object().Has(key) {
			continue
		}
		memberVal, _ := depVal.Object().Get(key)
		switch memberVal.Kind() {
		case ojson.KindArray:
			for _, nameVal := range memberVal.Array() {
				if nameVal.Kind() != ojson.KindString {
					continue
				}
				if !c.instance.Object().Has(nameVal.Str()) {
					missing[key] = append(missing[key], nameVal.Str())
				}
			}
		case ojson.KindObject, ojson.KindBool:
			memberPath := c.n.pointer.Append("dependencies").Append(key)
			memberNode, ok := c.n.childNodeAt(memberPath)
			if !ok {
				continue
			}
			frame := c.frame.childNamed("dependencies", key)
			frame.InstanceLocation = c.frame.InstanceLocation // dependencies validates the whole object, not the member
			result, _, _ := c.evaluateSub(memberNode, c.instance, frame)
			c.result.addDetail(result)
			if !result.Valid {
				invalidSchemas = append(invalidSchemas, key)
			}
		}
	}
	if len(missing) > 0 {
		c.fail("dependencies", "properties required by other present properties are missing", map[string]any{"missing": missing})
	}
	if len(invalidSchemas) > 0 {
		c.fail("dependencies", "instance does not satisfy the schema dependent on {properties}", map[string]any{"properties": invalidSchemas})
	}
}
