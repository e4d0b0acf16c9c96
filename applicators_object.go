package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

func init() {
	registerKeywordPriority("properties", classApplicator, Draft6, 0, evaluateProperties)
	registerKeywordPriority("patternProperties", classApplicator, Draft6, 0, evaluatePatternProperties)
	registerKeywordPriority("additionalProperties", classApplicator, Draft6, 1, evaluateAdditionalProperties)
	registerKeyword("propertyNames", classApplicator, Draft6, evaluatePropertyNames)
	registerKeyword("dependentSchemas", classApplicator, Draft2019_09, evaluateDependentSchemas)
	registerKeyword("unevaluatedProperties", classUnevaluated, Draft2019_09, evaluateUnevaluatedProperties)
}

func evaluateProperties(c *evalContext) {
	propsVal := c.fieldValue()
	if propsVal.Kind() != ojson.KindObject || c.instance.Kind() != ojson.KindObject {
		return
	}
	instObj := c.instance.Object()
	var invalid []string
	for _, name := range propsVal.Object().Keys() {
		propValue, exists := instObj.Get(name)
		if !exists {
			continue
		}
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("properties").Append(name))
		if !ok {
			continue
		}
		c.evaluatedProps[name] = true
		frame := c.frame.childNamed("properties", name)
		result, props, items := c.evaluateSub(sub, propValue, frame)
		c.result.addDetail(result)
		if result.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		c.fail("properties", "properties do not match their schemas", map[string]any{"failed": invalid})
	}
}

func evaluatePatternProperties(c *evalContext) {
	patVal := c.fieldValue()
	if patVal.Kind() != ojson.KindObject || c.instance.Kind() != ojson.KindObject {
		return
	}
	instObj := c.instance.Object()
	var invalid []string
	for _, pattern := range patVal.Object().Keys() {
		regex, ok := c.n.compiledPatterns[pattern]
		if !ok {
			continue
		}
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("patternProperties").Append(pattern))
		if !ok {
			continue
		}
		for _, name := range instObj.Keys() {
			if !regex.MatchString(name) {
				continue
			}
			propValue, _ := instObj.Get(name)
			c.evaluatedProps[name] = true
			frame := c.frame.childNamed("patternProperties", name)
			result, props, items := c.evaluateSub(sub, propValue, frame)
			c.result.addDetail(result)
			if result.Valid {
				mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
			} else {
				invalid = append(invalid, name)
			}
		}
	}
	if len(invalid) > 0 {
		c.fail("patternProperties", "properties do not match their pattern schemas", map[string]any{"failed": invalid})
	}
}

// evaluateAdditionalProperties validates properties not claimed by
// properties/patternProperties; it consults c.evaluatedProps rather than
// recomputing the properties/patternProperties match set, since those two
// are registered at a lower priority within classApplicator and so always
// run first regardless of the schema's own key order.
func evaluateAdditionalProperties(c *evalContext) {
	if c.instance.Kind() != ojson.KindObject {
		return
	}
	sub, ok := c.n.childNode("additionalProperties")
	if !ok {
		return
	}
	var invalid []string
	for _, name := range c.instance.Object().Keys() {
		if c.evaluatedProps[name] {
			continue
		}
		propValue, _ := c.instance.Object().Get(name)
		frame := c.frame.childNamed("additionalProperties", name)
		result, props, items := c.evaluateSub(sub, propValue, frame)
		c.result.addDetail(result)
		c.evaluatedProps[name] = true
		if result.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		c.fail("additionalProperties", "additional properties do not match the additionalProperties schema", map[string]any{"failed": invalid})
	}
}

func evaluatePropertyNames(c *evalContext) {
	if c.instance.Kind() != ojson.KindObject {
		return
	}
	sub, ok := c.n.childNode("propertyNames")
	if !ok {
		return
	}
	var invalid []string
	for _, name := range c.instance.Object().Keys() {
		frame := c.frame.child("propertyNames")
		result, _, _ := c.evaluateSub(sub, ojson.FromAny(name), frame)
		c.result.addDetail(result)
		if !result.Valid {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		c.fail("propertyNames", "property names do not match the propertyNames schema", map[string]any{"failed": invalid})
	}
}

// evaluateDependentSchemas is 2019-09's split-out half of Draft-06/07's
// dependencies keyword covering the schema-dependency shape: present
// properties apply a whole-instance subschema.
func evaluateDependentSchemas(c *evalContext) {
	depVal := c.fieldValue()
	if depVal.Kind() != ojson.KindObject || c.instance.Kind() != ojson.KindObject {
		return
	}
	var invalid []string
	for _, key := range depVal.Object().Keys() {
		if !c.instance.Object().Has(key) {
			continue
		}
		sub, ok := c.n.childNodeAt(c.n.pointer.Append("dependentSchemas").Append(key))
		if !ok {
			continue
		}
		frame := c.frame.childNamed("dependentSchemas", key)
		frame.InstanceLocation = c.frame.InstanceLocation
		result, props, items := c.evaluateSub(sub, c.instance, frame)
		c.result.addDetail(result)
		if result.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		c.fail("dependentSchemas", "instance does not satisfy the schema dependent on {properties}", map[string]any{"properties": invalid})
	}
}

func evaluateUnevaluatedProperties(c *evalContext) {
	if c.instance.Kind() != ojson.KindObject {
		return
	}
	sub, ok := c.n.childNode("unevaluatedProperties")
	if !ok {
		return
	}
	var invalid []string
	for _, name := range c.instance.Object().Keys() {
		if c.evaluatedProps[name] {
			continue
		}
		propValue, _ := c.instance.Object().Get(name)
		frame := c.frame.childNamed("unevaluatedProperties", name)
		result, props, items := c.evaluateSub(sub, propValue, frame)
		c.result.addDetail(result)
		c.evaluatedProps[name] = true
		if result.Valid {
			mergeInto(c.evaluatedProps, c.evaluatedItems, props, items)
		} else {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		c.fail("unevaluatedProperties", "unevaluated properties do not match the unevaluatedProperties schema", map[string]any{"failed": invalid})
	}
}
