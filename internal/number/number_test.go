package number_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemacore/jsonschema/internal/number"
)

func TestFromStringExact(t *testing.T) {
	n, ok := number.FromString("0.1")
	require.True(t, ok)
	assert.Equal(t, "0.1", n.String())
}

func TestIsMultipleOfExact(t *testing.T) {
	n, _ := number.FromString("1.1")
	d, _ := number.FromString("0.1")
	assert.True(t, n.IsMultipleOf(d), "0.1 increments should be exact under rational arithmetic, unlike float64")
}

func TestIsMultipleOfByZeroIsFalse(t *testing.T) {
	n, _ := number.FromString("5")
	zero, _ := number.FromString("0")
	assert.False(t, n.IsMultipleOf(zero))
}

func TestEqualIgnoresLiteralForm(t *testing.T) {
	a, _ := number.FromString("1.0")
	b, _ := number.FromString("1")
	assert.True(t, a.Equal(b))
}

func TestCmp(t *testing.T) {
	a, _ := number.FromString("2")
	b, _ := number.FromString("3")
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
}

func TestIsInteger(t *testing.T) {
	whole, _ := number.FromString("4")
	frac, _ := number.FromString("4.5")
	assert.True(t, whole.IsInteger())
	assert.False(t, frac.IsInteger())
}

func TestParseJSONLiteralExponentForm(t *testing.T) {
	n := number.ParseJSONLiteral("1e2")
	assert.Equal(t, "100", n.String())
}
