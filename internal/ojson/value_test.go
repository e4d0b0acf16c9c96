package ojson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemacore/jsonschema/internal/ojson"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := ojson.Parse([]byte(`{"b":1,"a":2,"c":3}`))
	require.NoError(t, err)
	require.Equal(t, ojson.KindObject, v.Kind())
	assert.Equal(t, []string{"b", "a", "c"}, v.Object().Keys())
}

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "alice",
		"age":  float64(30),
		"tags": []any{"a", "b"},
		"nil":  nil,
	}
	v := ojson.FromAny(in)
	out := v.ToAny().(map[string]any)
	assert.Equal(t, "alice", out["name"])
	assert.Equal(t, []any{"a", "b"}, out["tags"])
	assert.Nil(t, out["nil"])
}

func TestEqualStructural(t *testing.T) {
	a, err := ojson.Parse([]byte(`{"x":1,"y":[1,2]}`))
	require.NoError(t, err)
	b, err := ojson.Parse([]byte(`{"y":[1,2],"x":1}`))
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "object equality must be key-order independent")
}

func TestEqualDistinguishesArrayOrder(t *testing.T) {
	a, err := ojson.Parse([]byte(`[1,2]`))
	require.NoError(t, err)
	b, err := ojson.Parse([]byte(`[2,1]`))
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestObjectGetMissing(t *testing.T) {
	v, err := ojson.Parse([]byte(`{"a":1}`))
	require.NoError(t, err)
	_, ok := v.Object().Get("missing")
	assert.False(t, ok)
	assert.False(t, v.Object().Has("missing"))
	assert.True(t, v.Object().Has("a"))
}

func TestMarshalJSONRoundTrips(t *testing.T) {
	v, err := ojson.Parse([]byte(`{"a":1,"b":"two"}`))
	require.NoError(t, err)
	out, err := v.MarshalJSON()
	require.NoError(t, err)

	reparsed, err := ojson.Parse(out)
	require.NoError(t, err)
	assert.True(t, v.Equal(reparsed))
}
