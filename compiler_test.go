package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemacore/jsonschema"
	"github.com/schemacore/jsonschema/internal/ojson"
)

func compileAndValidate(t *testing.T, schemaJSON string, instanceJSON string, opts ...jsonschema.Option) *jsonschema.Result {
	t.Helper()
	compiler := jsonschema.NewCompiler(opts...)
	schema, err := compiler.Compile([]byte(schemaJSON), "")
	require.NoError(t, err)

	instance, err := ojson.Parse([]byte(instanceJSON))
	require.NoError(t, err)

	return schema.Validate(instance)
}

func TestTrivialAcceptReject(t *testing.T) {
	assert.True(t, compileAndValidate(t, `true`, `42`).Valid)

	result := compileAndValidate(t, `false`, `null`)
	assert.False(t, result.Valid)
	errs := result.GetDetailedErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "", errs[0].Keyword)
}

func TestTypeKeyword(t *testing.T) {
	assert.True(t, compileAndValidate(t, `{"type":"integer"}`, `3`).Valid)
	assert.False(t, compileAndValidate(t, `{"type":"integer"}`, `3.5`).Valid)
	assert.False(t, compileAndValidate(t, `{"type":"integer"}`, `"3"`).Valid)
}

func TestPropertiesAndRequired(t *testing.T) {
	schema := `{"type":"object","properties":{"a":{"type":"string"}},"required":["a"]}`
	assert.True(t, compileAndValidate(t, schema, `{"a":"x"}`).Valid)
	assert.False(t, compileAndValidate(t, schema, `{}`).Valid)
	assert.False(t, compileAndValidate(t, schema, `{"a":1}`).Valid)
}

func TestRefWithinDocument(t *testing.T) {
	schema := `{"$schema":"https://json-schema.org/draft/2019-09/schema","$defs":{"N":{"type":"integer"}},"$ref":"#/$defs/N"}`
	assert.True(t, compileAndValidate(t, schema, `7`).Valid)
	assert.False(t, compileAndValidate(t, schema, `"7"`).Valid)
}

func TestOneOfExactness(t *testing.T) {
	schema := `{"oneOf":[{"type":"integer"},{"minimum":0}]}`
	assert.False(t, compileAndValidate(t, schema, `5`).Valid)
	assert.True(t, compileAndValidate(t, schema, `-1`).Valid)
	assert.True(t, compileAndValidate(t, schema, `0.5`).Valid)
	assert.False(t, compileAndValidate(t, schema, `"x"`).Valid)
}

// TestCombinatorBranchFailureDoesNotPoisonParent guards against a failing
// anyOf/oneOf/not branch flipping the combinator's own Valid even though
// the branch failure is exactly how the combinator is meant to succeed.
func TestCombinatorBranchFailureDoesNotPoisonParent(t *testing.T) {
	result := compileAndValidate(t, `{"not":{"type":"string"}}`, `5`)
	assert.True(t, result.Valid, "not's child failing is what makes not succeed")

	result = compileAndValidate(t, `{"anyOf":[{"type":"string"},{"type":"integer"}]}`, `5`)
	assert.True(t, result.Valid)

	result = compileAndValidate(t, `{"if":{"type":"string"},"then":{"minLength":1},"else":{"minimum":0}}`, `5`)
	assert.True(t, result.Valid, "if failing (so else applies) must not fail the schema")
}

// TestErrorPruningOnSuccess guards P4: a successful oneOf leaves the losing
// branch's errors attached (for inspection) but marked Pruned.
func TestErrorPruningOnSuccess(t *testing.T) {
	schema := `{"oneOf":[{"type":"integer"},{"minimum":0}]}`
	result := compileAndValidate(t, schema, `-1`)
	require.True(t, result.Valid)

	errs := result.GetDetailedErrors()
	require.NotEmpty(t, errs, "the failed minimum branch should still have recorded an error")
	for _, e := range errs {
		assert.True(t, e.Pruned, "error under a successful oneOf must be marked pruned")
	}
}

// TestAnnotationsDroppedOnFailureByDefault guards P5: annotations recorded
// under a failing schema are discarded unless CollectAnnotationsForFailed
// is enabled.
func TestAnnotationsDroppedOnFailureByDefault(t *testing.T) {
	schema := `{"type":"object","properties":{"a":{"title":"A"}},"required":["b"]}`
	result := compileAndValidate(t, schema, `{"a":1}`)
	require.False(t, result.Valid)
	assert.Empty(t, result.CollectAnnotations())

	result = compileAndValidate(t, schema, `{"a":1}`, jsonschema.WithCollectAnnotationsForFailed(true))
	require.False(t, result.Valid)
	assert.NotEmpty(t, result.CollectAnnotations())
}

func TestSpecificationGuess(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	s1, err := compiler.Compile([]byte(`{"$defs":{}}`), "")
	require.NoError(t, err)
	assert.Equal(t, jsonschema.Draft2019_09, s1.Specification())

	s2, err := compiler.Compile([]byte(`{"definitions":{}}`), "")
	require.NoError(t, err)
	assert.Equal(t, jsonschema.Draft7, s2.Specification())
}

// TestAdditionalPropertiesIgnoresDocumentOrder guards the keyword-priority
// fix: additionalProperties must see properties' coverage regardless of
// which keyword the schema author wrote first.
func TestAdditionalPropertiesIgnoresDocumentOrder(t *testing.T) {
	schema := `{
		"additionalProperties": false,
		"properties": {"a": {"type": "string"}}
	}`
	result := compileAndValidate(t, schema, `{"a":"x"}`)
	assert.True(t, result.Valid, "properties-covered member must not be rejected by additionalProperties: %v", result.GetDetailedErrors())

	result = compileAndValidate(t, schema, `{"a":"x","b":1}`)
	assert.False(t, result.Valid)
}

func TestRecursiveReferenceViaID(t *testing.T) {
	schema := `{"$id":"https://example.com/list","type":"array","items":{"$ref":"#"}}`
	assert.True(t, compileAndValidate(t, schema, `[[[],[[]]]]`).Valid)

	result := compileAndValidate(t, schema, `[1]`)
	assert.False(t, result.Valid)
}

func TestFormatAssertionOption(t *testing.T) {
	schema := `{"type":"string","format":"email"}`

	annotateOnly := compileAndValidate(t, schema, `"not-an-email"`, jsonschema.WithFormat(false))
	assert.True(t, annotateOnly.Valid)

	asserted := compileAndValidate(t, schema, `"not-an-email"`, jsonschema.WithFormat(true))
	assert.False(t, asserted.Valid)
}

func TestDraft06UnknownVocabularyMember(t *testing.T) {
	schema := `{"$schema":"http://json-schema.org/draft-06/schema#","exclusiveMinimum":0}`
	result := compileAndValidate(t, schema, `1`)
	assert.True(t, result.Valid)

	result = compileAndValidate(t, schema, `0`)
	assert.False(t, result.Valid)
}
