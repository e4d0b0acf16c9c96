// Package ojson is the in-scope half of spec.md's "JSON value" data model:
// given tokens from an external JSON parser (github.com/goccy/go-json's
// decoder, the same dependency the teacher decodes schemas with), it builds
// a tagged-variant tree that preserves object member insertion order —
// something map[string]any cannot do and which the evaluator depends on for
// annotation ordering and keyword-class tie-breaking (spec.md section 4.6).
// Turning JSON bytes into tokens is the external parser's job; assembling
// those tokens into an order-preserving tree is this package's.
package ojson

import (
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/schemacore/jsonschema/internal/number"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a JSON value: null, bool, arbitrary-precision number, string,
// an ordered array of Value, or an Object (ordered string->Value mapping).
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  number.Number
	str  string
	arr  []Value
	obj  *Object
}

func Null() Value                  { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func String(s string) Value        { return Value{kind: KindString, str: s} }
func NumberValue(n number.Number) Value { return Value{kind: KindNumber, num: n} }
func Array(elems []Value) Value    { return Value{kind: KindArray, arr: elems} }
func ObjectValue(o *Object) Value  { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) Bool() bool       { return v.b }
func (v Value) Number() number.Number { return v.num }
func (v Value) Str() string      { return v.str }
func (v Value) Array() []Value   { return v.arr }
func (v Value) Object() *Object  { return v.obj }

// TypeName returns the JSON Schema type name for v ("integer" for
// whole-valued numbers), as spec.md section 4.7's `type` keyword requires.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		if v.num.IsInteger() {
			return "integer"
		}
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Equal implements JSON-value equality: numbers compare by numeric value
// across representations, objects compare order-independently by member
// set, arrays compare element-wise in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num.Equal(o.num)
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(o.obj)
	}
	return false
}

// Object is an ordered string->Value mapping: a JSON object literal's
// member order, as parsed, is preserved for iteration.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set appends key (or overwrites in place if already present) with value.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the object's member names in insertion order. The returned
// slice must not be mutated.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Parse decodes JSON bytes into an order-preserving Value tree.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytesReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

type byteReaderWrapper struct {
	data []byte
	pos  int
}

func bytesReader(data []byte) io.Reader { return &byteReaderWrapper{data: data} }

func (r *byteReaderWrapper) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return NumberValue(number.ParseJSONLiteral(string(t))), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case json.Delim('['):
			var elems []Value
			for dec.More() {
				v, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return Array(elems), nil
		case json.Delim('{'):
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				v, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return ObjectValue(obj), nil
		}
	}
	return Value{}, errUnexpectedToken
}

var errUnexpectedToken = &parseError{"unexpected json token"}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// FromAny converts a Go value built from map[string]any/[]any/etc (as
// produced by ad hoc test fixtures or callers constructing instances in
// code) into a Value tree. Object key order for map[string]any is
// unspecified by Go; callers that care about deterministic member order
// should build the instance through Parse instead.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return NumberValue(number.ParseJSONLiteral(string(t)))
	case float64:
		return NumberValue(number.FromFloat64(t))
	case int:
		return NumberValue(number.FromInt(t))
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Array(elems)
	case map[string]any:
		obj := NewObject()
		for k, e := range t {
			obj.Set(k, FromAny(e))
		}
		return ObjectValue(obj)
	default:
		return Null()
	}
}

// ToAny is FromAny's inverse: it unpacks v into plain Go values
// (map[string]any/[]any/string/bool/number.Number/nil) for callers, such as
// annotation collection, that want to hand the value to code outside this
// package without exposing Value's internals.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.keys {
			out[k] = v.obj.values[k].ToAny()
		}
		return out
	}
	return nil
}

// MarshalJSON renders v back to JSON text, used by error/annotation output
// that embeds echoed instance fragments and by round-trip tests.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		out := []byte{'['}
		for i, e := range v.arr {
			if i > 0 {
				out = append(out, ',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return append(out, ']'), nil
	case KindObject:
		out := []byte{'{'}
		for i, k := range v.obj.keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			out = append(out, kb...)
			out = append(out, ':')
			vb, err := v.obj.values[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		return append(out, '}'), nil
	}
	return []byte("null"), strconv.ErrSyntax
}
