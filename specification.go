package jsonschema

import (
	"github.com/schemacore/jsonschema/internal/ojson"
	"github.com/schemacore/jsonschema/internal/uri"
)

// Specification identifies a JSON Schema dialect this module understands.
// Values are ordered (Draft6 < Draft7 < Draft2019_09) so that draft-gated
// keyword checks can be written as simple comparisons.
type Specification int

const (
	Draft6 Specification = iota
	Draft7
	Draft2019_09
)

func (s Specification) String() string {
	switch s {
	case Draft6:
		return "draft-06"
	case Draft7:
		return "draft-07"
	case Draft2019_09:
		return "draft-2019-09"
	default:
		return "unknown"
	}
}

// MetaSchemaURI returns the canonical $schema identifier for s.
func (s Specification) MetaSchemaURI() string {
	switch s {
	case Draft6:
		return "http://json-schema.org/draft-06/schema#"
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft2019_09:
		return "https://json-schema.org/draft/2019-09/schema"
	default:
		return ""
	}
}

// AtLeast reports whether s is the same as or newer than other.
func (s Specification) AtLeast(other Specification) bool { return s >= other }

// specByURI maps every spelling of a dialect's $schema value (with and
// without a trailing fragment marker, http and https) to its Specification.
var specByURI = map[string]Specification{
	"http://json-schema.org/draft-06/schema#":  Draft6,
	"http://json-schema.org/draft-06/schema":   Draft6,
	"https://json-schema.org/draft-06/schema#": Draft6,
	"https://json-schema.org/draft-06/schema":  Draft6,

	"http://json-schema.org/draft-07/schema#":  Draft7,
	"http://json-schema.org/draft-07/schema":   Draft7,
	"https://json-schema.org/draft-07/schema#": Draft7,
	"https://json-schema.org/draft-07/schema":  Draft7,

	"https://json-schema.org/draft/2019-09/schema":  Draft2019_09,
	"https://json-schema.org/draft/2019-09/schema#": Draft2019_09,
	"http://json-schema.org/draft/2019-09/schema":   Draft2019_09,
}

// specificationFromURI resolves a $schema string to a Specification.
func specificationFromURI(s string) (Specification, bool) {
	spec, ok := specByURI[s]
	return spec, ok
}

// guessSpecification implements spec.md section 4.5's selection order:
// (1) a recognized root $schema wins outright; (2) an unrecognized $schema
// is reported as ErrUnknownSpecification so the caller can fall back to
// meta-schema validation; (3) with no $schema at all, classify every
// keyword the document uses and pick the newest dialect that evidence
// doesn't rule out; (4) if every dialect is excluded, defaultSpec stands in
// for the heuristic's "null".
func guessSpecification(root ojson.Value, defaultSpec Specification) (Specification, error) {
	if root.Kind() != ojson.KindObject {
		return defaultSpec, nil
	}
	schemaVal, ok := root.Object().Get("$schema")
	if ok {
		if schemaVal.Kind() != ojson.KindString {
			return defaultSpec, &MalformedSchemaError{Location: "", Reason: "$schema must be a string"}
		}
		spec, ok := specificationFromURI(schemaVal.Str())
		if !ok {
			return defaultSpec, ErrUnknownSpecification
		}
		return spec, nil
	}
	return guessSpecificationFromKeywords(root, defaultSpec), nil
}

// keywordsNewIn2019_09 and keywordsNewInDraft7 name keywords whose mere
// presence is evidence the document targets that dialect or newer;
// keywordsRemovedIn2019_09 names the Draft-06/07 keywords 2019-09 dropped
// (definitions was renamed $defs, dependencies split into
// dependentSchemas/dependentRequired), evidence the document predates it.
var (
	keywordsNewIn2019_09 = map[string]bool{
		"$defs":                 true,
		"$anchor":               true,
		"$recursiveRef":         true,
		"$recursiveAnchor":      true,
		"$vocabulary":           true,
		"unevaluatedItems":      true,
		"unevaluatedProperties": true,
		"dependentSchemas":      true,
		"dependentRequired":     true,
		"minContains":           true,
		"maxContains":           true,
	}
	keywordsNewInDraft7 = map[string]bool{
		"$comment":         true,
		"if":               true,
		"then":             true,
		"else":             true,
		"readOnly":         true,
		"writeOnly":        true,
		"contentMediaType": true,
		"contentEncoding":  true,
	}
	keywordsRemovedIn2019_09 = map[string]bool{
		"definitions":  true,
		"dependencies": true,
	}
)

// guessSpecificationFromKeywords implements spec.md section 4.5's
// heuristic: traverse every object in the document and classify each
// member, ruling out dialects the evidence contradicts, then return the
// newest dialect still standing. A document with no distinguishing
// keywords at all rules out nothing, so the newest dialect (2019-09) wins,
// matching "the newest specification that is not excluded".
func guessSpecificationFromKeywords(root ojson.Value, defaultSpec Specification) Specification {
	var excludeDraft6, excludeDraft7, exclude2019 bool

	var walk func(v ojson.Value)
	walk = func(v ojson.Value) {
		switch v.Kind() {
		case ojson.KindObject:
			obj := v.Object()
			for _, key := range obj.Keys() {
				switch {
				case keywordsNewIn2019_09[key]:
					excludeDraft6, excludeDraft7 = true, true
				case keywordsNewInDraft7[key]:
					excludeDraft6 = true
				case keywordsRemovedIn2019_09[key]:
					exclude2019 = true
				}
				if key == "$id" {
					if idVal, ok := obj.Get(key); ok && idVal.Kind() == ojson.KindString {
						if parsed, err := uri.Parse(idVal.Str()); err == nil && parsed.HasNonEmptyFragment() {
							exclude2019 = true
						}
					}
				}
				child, _ := obj.Get(key)
				walk(child)
			}
		case ojson.KindArray:
			for _, elem := range v.Array() {
				walk(elem)
			}
		}
	}
	walk(root)

	switch {
	case !exclude2019:
		return Draft2019_09
	case !excludeDraft7:
		return Draft7
	case !excludeDraft6:
		return Draft6
	default:
		return defaultSpec
	}
}

// coreVocabularies lists the 2019-09 vocabulary URIs this module implements.
// $vocabulary entries naming anything outside this set with `true` (required)
// fail compilation per spec.md section 4.7.
var coreVocabularies = map[string]bool{
	"https://json-schema.org/draft/2019-09/vocab/core":              true,
	"https://json-schema.org/draft/2019-09/vocab/applicator":        true,
	"https://json-schema.org/draft/2019-09/vocab/validation":        true,
	"https://json-schema.org/draft/2019-09/vocab/meta-data":         true,
	"https://json-schema.org/draft/2019-09/vocab/format":            true,
	"https://json-schema.org/draft/2019-09/vocab/content":           true,
}
