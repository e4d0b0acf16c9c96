package jsonschema

func init() {
	registerKeyword("title", classAnnotation, Draft6, evaluateAnnotationKeyword)
	registerKeyword("description", classAnnotation, Draft6, evaluateAnnotationKeyword)
	registerKeyword("default", classAnnotation, Draft6, evaluateAnnotationKeyword)
	registerKeyword("examples", classAnnotation, Draft6, evaluateAnnotationKeyword)
	registerKeyword("readOnly", classAnnotation, Draft7, evaluateAnnotationKeyword)
	registerKeyword("writeOnly", classAnnotation, Draft7, evaluateAnnotationKeyword)
	registerKeyword("deprecated", classAnnotation, Draft2019_09, evaluateAnnotationKeyword)
	registerKeyword("$comment", classAnnotation, Draft7, evaluateAnnotationKeyword)
}

// evaluateAnnotationKeyword handles every keyword whose entire contribution
// is to surface its value as an annotation on a successful match; these
// never affect validity, the same as the teacher's CollectAnnotations.
func evaluateAnnotationKeyword(c *evalContext) {
	c.annotate(c.fieldValue().ToAny())
}
