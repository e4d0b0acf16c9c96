package jsonschema

import (
	"encoding/base64"

	"github.com/goccy/go-yaml"

	"github.com/schemacore/jsonschema/internal/ojson"
)

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func decodeYAMLMediaType(b []byte) (ojson.Value, error) {
	var generic any
	if err := yaml.Unmarshal(b, &generic); err != nil {
		return ojson.Value{}, err
	}
	return ojson.FromAny(generic), nil
}

func init() {
	registerKeyword("contentEncoding", classAnnotation, Draft6, evaluateContentEncoding)
	registerKeyword("contentMediaType", classAnnotation, Draft6, evaluateContentMediaType)
	registerKeyword("contentSchema", classAnnotation, Draft2019_09, evaluateContentSchema)
}

// decodedContentBytes recomputes, independent of keyword iteration order,
// the bytes contentMediaType/contentSchema should see: contentEncoding
// applied if the node declares one, else the string instance's raw bytes.
func (c *evalContext) decodedContentBytes() ([]byte, bool) {
	if c.instance.Kind() != ojson.KindString {
		return nil, false
	}
	if encVal, ok := c.n.field("contentEncoding"); ok && encVal.Kind() == ojson.KindString {
		decoder, known := c.ev.schema.compiler.Decoders[encVal.Str()]
		if !known {
			return nil, false
		}
		decoded, err := decoder(c.instance.Str())
		if err != nil {
			return nil, false
		}
		return decoded, true
	}
	return []byte(c.instance.Str()), true
}

func evaluateContentEncoding(c *evalContext) {
	if c.instance.Kind() != ojson.KindString {
		return
	}
	encVal := c.fieldValue()
	if encVal.Kind() != ojson.KindString {
		return
	}
	c.annotate(encVal.Str())
	if !c.ev.options.Content {
		return
	}
	decoder, known := c.ev.schema.compiler.Decoders[encVal.Str()]
	if !known {
		c.fail("unsupportedEncoding", "unsupported contentEncoding {encoding}", map[string]any{"encoding": encVal.Str()})
		return
	}
	if _, err := decoder(c.instance.Str()); err != nil {
		c.fail("invalidEncoding", "could not decode contentEncoding {encoding}: {error}", map[string]any{"encoding": encVal.Str(), "error": err.Error()})
	}
}

func evaluateContentMediaType(c *evalContext) {
	if c.instance.Kind() != ojson.KindString {
		return
	}
	mtVal := c.fieldValue()
	if mtVal.Kind() != ojson.KindString {
		return
	}
	c.annotate(mtVal.Str())
	if !c.ev.options.Content {
		return
	}
	raw, ok := c.decodedContentBytes()
	if !ok {
		return // contentEncoding already reported the failure
	}
	unmarshal, known := c.ev.schema.compiler.MediaTypes[mtVal.Str()]
	if !known {
		c.fail("unsupportedMediaType", "unsupported contentMediaType {mediaType}", map[string]any{"mediaType": mtVal.Str()})
		return
	}
	if _, err := unmarshal(raw); err != nil {
		c.fail("invalidMediaType", "could not parse contentMediaType {mediaType}: {error}", map[string]any{"mediaType": mtVal.Str(), "error": err.Error()})
	}
}

func evaluateContentSchema(c *evalContext) {
	if c.instance.Kind() != ojson.KindString || !c.ev.options.Content {
		return
	}
	sub, ok := c.n.childNode("contentSchema")
	if !ok {
		return
	}
	mtVal, hasMT := c.n.field("contentMediaType")
	if !hasMT || mtVal.Kind() != ojson.KindString {
		return
	}
	unmarshal, known := c.ev.schema.compiler.MediaTypes[mtVal.Str()]
	if !known {
		return // contentMediaType already reported the failure
	}
	raw, ok := c.decodedContentBytes()
	if !ok {
		return
	}
	decoded, err := unmarshal(raw)
	if err != nil {
		return // contentMediaType already reported the failure
	}
	frame := c.frame.child("contentSchema")
	result, _, _ := c.evaluateSub(sub, decoded, frame)
	if !result.Valid {
		c.fail("contentSchemaMismatch", "decoded content does not match contentSchema", nil)
	}
	c.result.addDetail(result)
}
