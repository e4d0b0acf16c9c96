// Package number provides the arbitrary-precision decimal the evaluator
// compares instance numbers with. It wraps math/big.Rat the same way the
// teacher's Rat type does (schema-level rat.go), generalized to also back
// instance values so that multipleOf/maximum/enum/const comparisons never
// round-trip through float64.
package number

import (
	"math/big"
	"strconv"
	"strings"
)

// Number is an arbitrary-precision decimal value.
type Number struct {
	r *big.Rat
}

// FromString parses a JSON number literal exactly (no float64 round-trip).
func FromString(s string) (Number, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, false
	}
	return Number{r: r}, true
}

// FromFloat64 constructs a Number from a float64. Prefer FromString when the
// original decimal text is available.
func FromFloat64(f float64) Number {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		r = new(big.Rat)
	}
	return Number{r: r}
}

// FromInt constructs a Number from an int.
func FromInt(i int) Number {
	return Number{r: new(big.Rat).SetInt64(int64(i))}
}

// IsValid reports whether the Number was constructed successfully.
func (n Number) IsValid() bool { return n.r != nil }

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool {
	if n.r == nil {
		return false
	}
	return n.r.IsInt()
}

// Cmp compares n and o, returning -1, 0, or 1.
func (n Number) Cmp(o Number) int { return n.r.Cmp(o.r) }

// Sign returns -1, 0, or 1 matching the number's sign.
func (n Number) Sign() int { return n.r.Sign() }

// IsMultipleOf reports whether n is an integer multiple of d (d must be
// nonzero and, per the multipleOf keyword contract, strictly positive).
func (n Number) IsMultipleOf(d Number) bool {
	if d.r.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(n.r, d.r)
	return quotient.IsInt()
}

// String renders n as a plain decimal: an integer renders without a decimal
// point; otherwise it renders with at most 20 fractional digits (rounded),
// trimmed of trailing zeros.
func (n Number) String() string {
	if n.r == nil {
		return "null"
	}
	if n.r.IsInt() {
		return n.r.Num().String()
	}
	dec := n.r.FloatString(20)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}

// Float64 returns the nearest float64 approximation of n.
func (n Number) Float64() float64 {
	f, _ := n.r.Float64()
	return f
}

// Equal reports JSON-value equality between two numbers: equal numeric
// value regardless of literal representation ("1.0" == "1" == 1).
func (n Number) Equal(o Number) bool {
	if n.r == nil || o.r == nil {
		return n.r == o.r
	}
	return n.r.Cmp(o.r) == 0
}

// ParseJSONLiteral is a convenience wrapper for call sites holding a
// strconv-validated JSON number literal (as produced by the tokenizer in
// internal/ojson). It tries FromString, then strconv.ParseFloat; a literal
// neither accepts yields the zero Number, whose IsValid reports false.
func ParseJSONLiteral(s string) Number {
	n, ok := FromString(s)
	if ok {
		return n
	}
	// Fall back through strconv for exponent forms big.Rat.SetString
	// occasionally rejects depending on Go version; a JSON tokenizer never
	// hands us anything else shaped.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return FromFloat64(f)
}
