// Package uri implements the subset of RFC 3986 the schema evaluation core
// depends on: parsing, normalization, and reference resolution. A platform
// net/url.URL is not enough here — it collapses an empty authority into "no
// authority" and normalizes paths in ways that lose the distinction between
// "no path" and "empty path" that $id/$ref resolution depends on, so this
// type is hand-rolled the way the teacher hand-rolls its Rat and SchemaType
// wrappers around things the standard library almost-but-not-quite covers.
package uri

import (
	"errors"
	"strings"
)

// ErrSyntax is returned when a string is not a valid URI or URI-reference.
var ErrSyntax = errors.New("uri: invalid syntax")

// URI is an RFC 3986 URI (absolute or relative reference). The zero value is
// the empty reference.
type URI struct {
	Scheme       string
	HasAuthority bool
	Authority    string
	Path         string
	HasQuery     bool
	Query        string
	HasFragment  bool
	Fragment     string
}

// Parse parses s as a URI or URI-reference per RFC 3986 appendix B's
// first-cut grammar, refined with the few validity checks the evaluator
// relies on (a scheme, when present, must look like a scheme).
func Parse(s string) (URI, error) {
	var u URI
	rest := s

	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		u.Scheme = rest[:i]
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		u.HasAuthority = true
		rest = rest[2:]
		end := len(rest)
		for i, c := range rest {
			if c == '/' || c == '?' || c == '#' {
				end = i
				break
			}
		}
		u.Authority = rest[:end]
		rest = rest[end:]
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.HasFragment = true
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}

	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.HasQuery = true
		u.Query = rest[i+1:]
		rest = rest[:i]
	}

	u.Path = rest

	if !validChars(u.Authority) || !validChars(u.Path) || !validChars(u.Query) || !validChars(u.Fragment) {
		return URI{}, ErrSyntax
	}

	return u, nil
}

// MustParse parses s, panicking on error. Intended for constant URIs.
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func isScheme(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// validChars rejects raw whitespace and control characters; percent-encoding
// of reserved/unwise characters is accepted without full pct-triplet
// validation since the schemas and instances this type addresses are
// produced by the surrounding JSON parser, not hand-typed by users.
func validChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] == 0x7f {
			return false
		}
	}
	return true
}

// IsAbsolute reports whether the URI has a scheme.
func (u URI) IsAbsolute() bool { return u.Scheme != "" }

// HasNonEmptyFragment reports whether the URI carries a fragment with at
// least one character.
func (u URI) HasNonEmptyFragment() bool { return u.HasFragment && u.Fragment != "" }

// IsNotFragmentOnly reports whether the URI has any component besides a
// fragment.
func (u URI) IsNotFragmentOnly() bool {
	return u.Scheme != "" || u.HasAuthority || u.Path != "" || u.HasQuery
}

// StripFragment returns a copy of u with the fragment removed.
func (u URI) StripFragment() URI {
	u.HasFragment = false
	u.Fragment = ""
	return u
}

// String renders the URI per RFC 3986 section 5.3.
func (u URI) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if u.HasAuthority {
		b.WriteString("//")
		b.WriteString(u.Authority)
	}
	b.WriteString(u.Path)
	if u.HasQuery {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.HasFragment {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// Equal compares two URIs component-wise (not normalized).
func (u URI) Equal(o URI) bool { return u.String() == o.String() }

// Resolve resolves reference ref against base u per RFC 3986 section 5.2.2.
// An empty path on ref keeps the base path (rather than the strict-empty
// normalization the RFC allows implementations to skip at their option) so
// that `$id: "#frag"`-style fragment-only references, and `$id: ""`, behave
// as JSON Schema implementations expect.
func (u URI) Resolve(ref URI) URI {
	var t URI

	switch {
	case ref.Scheme != "":
		t.Scheme = ref.Scheme
		t.HasAuthority = ref.HasAuthority
		t.Authority = ref.Authority
		t.Path = removeDotSegments(ref.Path)
		t.HasQuery = ref.HasQuery
		t.Query = ref.Query
	case ref.HasAuthority:
		t.Scheme = u.Scheme
		t.HasAuthority = true
		t.Authority = ref.Authority
		t.Path = removeDotSegments(ref.Path)
		t.HasQuery = ref.HasQuery
		t.Query = ref.Query
	case ref.Path == "":
		t.Scheme = u.Scheme
		t.HasAuthority = u.HasAuthority
		t.Authority = u.Authority
		t.Path = u.Path
		if ref.HasQuery {
			t.HasQuery = true
			t.Query = ref.Query
		} else {
			t.HasQuery = u.HasQuery
			t.Query = u.Query
		}
	default:
		t.Scheme = u.Scheme
		t.HasAuthority = u.HasAuthority
		t.Authority = u.Authority
		if strings.HasPrefix(ref.Path, "/") {
			t.Path = removeDotSegments(ref.Path)
		} else {
			t.Path = removeDotSegments(mergePath(u, ref.Path))
		}
		t.HasQuery = ref.HasQuery
		t.Query = ref.Query
	}

	// A fragment-only reference preserves the base entirely and swaps the
	// fragment; the "ref.Path == \"\"" arm above already yields the same
	// target, and this branch makes that case explicit.
	if !ref.IsNotFragmentOnly() && ref.HasFragment {
		t = u
	}

	t.HasFragment = ref.HasFragment
	t.Fragment = ref.Fragment
	return t
}

func mergePath(base URI, refPath string) string {
	if base.HasAuthority && base.Path == "" {
		return "/" + refPath
	}
	if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
		return base.Path[:i+1] + refPath
	}
	return refPath
}

// removeDotSegments implements RFC 3986 section 5.2.4.
func removeDotSegments(path string) string {
	var out []string
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			i := 0
			if strings.HasPrefix(in, "/") {
				i = 1
			}
			j := strings.IndexByte(in[i:], '/')
			var seg string
			if j < 0 {
				seg = in
				in = ""
			} else {
				seg = in[:i+j]
				in = in[i+j:]
			}
			out = append(out, seg)
		}
	}
	return strings.Join(out, "")
}

// Normalize lowercases the scheme/host and removes dot-segments; percent-decoding
// of unreserved characters is intentionally not performed on the authority
// beyond host casing, since JSON Schema IDs rarely carry userinfo/port
// percent-escapes worth decoding and doing so safely requires knowing which
// octets are unreserved, which in turn requires a full percent-decoder this
// package does not otherwise need.
func (u URI) Normalize() URI {
	n := u
	n.Scheme = strings.ToLower(n.Scheme)
	if n.HasAuthority {
		if at := strings.IndexByte(n.Authority, '@'); at >= 0 {
			n.Authority = n.Authority[:at+1] + strings.ToLower(n.Authority[at+1:])
		} else {
			n.Authority = strings.ToLower(n.Authority)
		}
	}
	n.Path = removeDotSegments(n.Path)
	return n
}
