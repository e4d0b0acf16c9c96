package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemacore/jsonschema/internal/uri"
)

func TestParseAbsolute(t *testing.T) {
	u, err := uri.Parse("https://example.com/schemas/a.json#/defs/N")
	require.NoError(t, err)
	assert.True(t, u.IsAbsolute())
	assert.True(t, u.HasNonEmptyFragment())
}

func TestResolveRelativePath(t *testing.T) {
	base, err := uri.Parse("https://example.com/a/b.json")
	require.NoError(t, err)
	ref, err := uri.Parse("c.json")
	require.NoError(t, err)

	got := base.Resolve(ref)
	assert.Equal(t, "https://example.com/a/c.json", got.String())
}

func TestResolveFragmentOnly(t *testing.T) {
	base, err := uri.Parse("https://example.com/a/b.json")
	require.NoError(t, err)
	ref, err := uri.Parse("#/defs/N")
	require.NoError(t, err)

	got := base.Resolve(ref)
	assert.Equal(t, "https://example.com/a/b.json#/defs/N", got.String())
}

// TestResolveComposes checks property P7: resolve(resolve(base,a),b) ==
// resolve(base, resolve(a,b)) when b is not fragment-only.
func TestResolveComposes(t *testing.T) {
	base, err := uri.Parse("https://example.com/a/b/")
	require.NoError(t, err)
	a, err := uri.Parse("c/")
	require.NoError(t, err)
	b, err := uri.Parse("d.json")
	require.NoError(t, err)

	left := base.Resolve(a).Resolve(b)
	right := base.Resolve(a.Resolve(b))
	assert.Equal(t, left.String(), right.String())
}

func TestNormalizeRemovesDotSegments(t *testing.T) {
	u, err := uri.Parse("https://example.com/a/../b/./c")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b/c", u.Normalize().String())
}
