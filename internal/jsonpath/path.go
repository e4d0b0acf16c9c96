// Package jsonpath implements the spec's JSONPath value: an immutable
// ordered sequence of unescaped string tokens plus an absolute/relative
// flag, used throughout the evaluator to address locations inside a schema
// or an instance. It is distinct from (and predates) the query-language
// JSONPath that github.com/speakeasy-api/jsonpath and
// github.com/vmware-labs/yaml-jsonpath implement in the corpus — this one is
// closer to a typed RFC 6901 JSON Pointer with dot-segment normalization
// borrowed from RFC 3986 section 5.2.4.
package jsonpath

import "strings"

// Path is an ordered sequence of path elements. The zero value is the empty
// relative path.
type Path struct {
	elements []string
	abs      bool
}

// Absolute returns the empty absolute path.
func Absolute() Path { return Path{abs: true} }

// Relative returns the empty relative path.
func Relative() Path { return Path{} }

// FromElement returns a relative path containing a single element.
func FromElement(e string) Path { return Path{elements: []string{e}} }

// IsAbsolute reports whether the path is absolute.
func (p Path) IsAbsolute() bool { return p.abs }

// Len returns the number of elements.
func (p Path) Len() int { return len(p.elements) }

// Elements returns the path's elements. The returned slice must not be
// mutated by callers.
func (p Path) Elements() []string { return p.elements }

// Append returns a new path with e appended; p is left unmodified.
func (p Path) Append(e string) Path {
	next := make([]string, len(p.elements)+1)
	copy(next, p.elements)
	next[len(p.elements)] = e
	return Path{elements: next, abs: p.abs}
}

// AppendIndex appends an array index element.
func (p Path) AppendIndex(i int) Path {
	return p.Append(itoa(i))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// StartsWith reports whether p's elements begin with prefix's elements,
// ignoring the absolute/relative flag of either path.
func (p Path) StartsWith(prefix Path) bool {
	if len(prefix.elements) > len(p.elements) {
		return false
	}
	for i, e := range prefix.elements {
		if p.elements[i] != e {
			return false
		}
	}
	return true
}

// EndsWith reports whether p's last element equals e.
func (p Path) EndsWith(e string) bool {
	return len(p.elements) > 0 && p.elements[len(p.elements)-1] == e
}

// Equal reports whether p and o have the same flag and elements.
func (p Path) Equal(o Path) bool {
	if p.abs != o.abs || len(p.elements) != len(o.elements) {
		return false
	}
	for i := range p.elements {
		if p.elements[i] != o.elements[i] {
			return false
		}
	}
	return true
}

// CompareTo orders absolute paths after relative paths; within the same
// kind, lexicographically by element, shorter-is-less on equal prefix.
func (p Path) CompareTo(o Path) int {
	if p.abs != o.abs {
		if p.abs {
			return 1
		}
		return -1
	}
	n := len(p.elements)
	if len(o.elements) < n {
		n = len(o.elements)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(p.elements[i], o.elements[i]); c != 0 {
			return c
		}
	}
	return len(p.elements) - len(o.elements)
}

// String renders p as a JSON Pointer reference-token string: elements
// joined by '/', each encoded ('~'->"~0", '/'->"~1"); an absolute path
// carries the leading '/', an empty path renders as "".
func (p Path) String() string {
	if len(p.elements) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range p.elements {
		if i > 0 || p.abs {
			b.WriteByte('/')
		}
		b.WriteString(encodeToken(e))
	}
	return b.String()
}

func encodeToken(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

func decodeToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// FromPath parses s with no token decoding: a leading '/' marks an absolute
// path, an empty string is the empty relative path.
func FromPath(s string) Path {
	if s == "" {
		return Path{}
	}
	abs := strings.HasPrefix(s, "/")
	body := s
	if abs {
		body = s[1:]
	}
	return Path{elements: strings.Split(body, "/"), abs: abs}
}

// FromJSONPointer parses s as an RFC 6901 JSON Pointer: an empty string is
// the empty absolute path, otherwise s is split on '/' with token decoding
// applied in the order that turns "~01" into the literal "~1" (decode "~1"
// before "~0").
func FromJSONPointer(s string) Path {
	if s == "" {
		return Path{abs: true}
	}
	parts := strings.Split(strings.TrimPrefix(s, "/"), "/")
	elements := make([]string, len(parts))
	for i, p := range parts {
		elements[i] = decodeToken(p)
	}
	return Path{elements: elements, abs: true}
}

// Normalize applies RFC 3986 section 5.2.4 dot-segment removal to absolute
// paths (including the trailing-empty-segment rule for a "." or ".." final
// element); relative paths are returned unchanged since "." and ".." have
// no special meaning outside of path resolution against a base.
func (p Path) Normalize() Path {
	if !p.abs {
		return p
	}
	var out []string
	for i, e := range p.elements {
		switch e {
		case ".":
			if i == len(p.elements)-1 {
				out = append(out, "")
			}
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			if i == len(p.elements)-1 {
				out = append(out, "")
			}
		default:
			out = append(out, e)
		}
	}
	return Path{elements: out, abs: true}
}

// Resolve behaves like RFC 3986 section 5.2 merge-and-normalize with p as
// the reference against base r: an absolute p replaces r outright; a
// relative p is appended to r's elements (dropping r's last element, the
// way a file name is dropped when merging a relative URI path) and the
// result is normalized.
func (r Path) Resolve(p Path) Path {
	if p.abs {
		return p.Normalize()
	}
	merged := make([]string, 0, len(r.elements)+len(p.elements))
	if len(r.elements) > 0 {
		merged = append(merged, r.elements[:len(r.elements)-1]...)
	}
	merged = append(merged, p.elements...)
	return Path{elements: merged, abs: r.abs}.Normalize()
}
