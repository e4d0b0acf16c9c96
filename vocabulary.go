package jsonschema

import "github.com/schemacore/jsonschema/internal/ojson"

// enforceVocabulary implements spec.md section 4.7's $vocabulary rule:
// 2019-09 schemas may declare which vocabularies are in effect and whether
// each is required; a required vocabulary this module does not implement
// fails compilation. Draft-06/07 have no vocabulary concept, so every
// vocabulary this module implements is always enabled for them.
func enforceVocabulary(root *node, spec Specification) (map[string]bool, error) {
	if !spec.AtLeast(Draft2019_09) {
		return nil, nil
	}
	if root.isBoolean() {
		return cloneVocabSet(coreVocabularies), nil
	}
	vocabVal, ok := root.field("$vocabulary")
	if !ok {
		return cloneVocabSet(coreVocabularies), nil
	}
	if vocabVal.Kind() != ojson.KindObject {
		return nil, &MalformedSchemaError{Location: root.pointer.String(), Reason: "$vocabulary must be an object"}
	}
	enabled := make(map[string]bool)
	for _, vocabURI := range vocabVal.Object().Keys() {
		requiredVal, _ := vocabVal.Object().Get(vocabURI)
		required := requiredVal.Kind() == ojson.KindBool && requiredVal.Bool()
		if _, known := coreVocabularies[vocabURI]; known {
			enabled[vocabURI] = true
			continue
		}
		if required {
			return nil, &MalformedSchemaError{
				Location: root.pointer.String(),
				Reason:   ErrUnsupportedVocabulary.Error() + ": " + vocabURI,
			}
		}
	}
	return enabled, nil
}

func cloneVocabSet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
