package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemacore/jsonschema/internal/jsonpath"
)

func TestJSONPointerRoundTrip(t *testing.T) {
	p := jsonpath.Absolute().Append("a").Append("b~c").Append("d/e")
	assert.True(t, jsonpath.FromJSONPointer(p.String()).Equal(p))
}

func TestFromPathRoundTrip(t *testing.T) {
	p := jsonpath.Relative().Append("foo").Append("bar")
	assert.True(t, jsonpath.FromPath(p.String()).Equal(p))
}

func TestTokenEscaping(t *testing.T) {
	p := jsonpath.Absolute().Append("m~n")
	assert.Equal(t, "/m~0n", p.String())
}

func TestStartsWithAndEndsWith(t *testing.T) {
	p := jsonpath.Absolute().Append("properties").Append("name")
	prefix := jsonpath.Absolute().Append("properties")
	assert.True(t, p.StartsWith(prefix))
	assert.True(t, p.EndsWith("name"))
	assert.False(t, p.EndsWith("properties"))
}

func TestResolveAbsoluteReplacesBase(t *testing.T) {
	base := jsonpath.Absolute().Append("a").Append("b")
	abs := jsonpath.Absolute().Append("x")
	assert.True(t, base.Resolve(abs).Equal(abs))
}

func TestResolveRelativeMergesUnderBase(t *testing.T) {
	base := jsonpath.Absolute().Append("a").Append("b")
	rel := jsonpath.Relative().Append("c")
	got := base.Resolve(rel)
	want := jsonpath.Absolute().Append("a").Append("c")
	assert.True(t, got.Equal(want))
}

func TestNormalizeDotSegments(t *testing.T) {
	p := jsonpath.Absolute().Append("a").Append("..").Append("b")
	got := p.Normalize()
	want := jsonpath.Absolute().Append("b")
	assert.True(t, got.Equal(want))
}
