package jsonschema

import "errors"

// Sentinel errors, grounded on the teacher's errors.go: plain errors.New
// values, wrapped at call sites with fmt.Errorf("%w: ...").
var (
	// ErrSchemaNotFound is returned when a $ref target cannot be located
	// anywhere in the known-document set and no Loader resolves it.
	ErrSchemaNotFound = errors.New("jsonschema: schema not found")

	// ErrUnknownSpecification is returned by the internal dialect guess when
	// a $schema value does not match any supported dialect; Compile then
	// validates the document against the default dialect's meta-schema and
	// reports a failure there as a *MalformedSchemaError.
	ErrUnknownSpecification = errors.New("jsonschema: unknown specification")

	// ErrUnsupportedVocabulary's text is the Reason of the
	// *MalformedSchemaError returned when a 2019-09 schema's $vocabulary
	// declares a required vocabulary this module does not implement; the
	// sentinel itself is not wrapped into that error.
	ErrUnsupportedVocabulary = errors.New("jsonschema: unsupported required vocabulary")

	// ErrCyclicSchema is returned when a $ref graph cannot be evaluated
	// without nontermination (a reference cycle with no instance
	// consumption between iterations).
	ErrCyclicSchema = errors.New("jsonschema: cyclic schema reference")

	// ErrInvalidInstance names an instance document that is not valid JSON
	// (as opposed to the schema rejecting its content). Validate takes an
	// already parsed ojson.Value, so no function of this package returns it.
	ErrInvalidInstance = errors.New("jsonschema: invalid instance document")

	// ErrNoLoader is returned when a $ref needs to fetch an unknown
	// document and no Loader is registered for its URI scheme.
	ErrNoLoader = errors.New("jsonschema: no loader registered for scheme")

	// ErrDuplicateID names two schema resources in the same document that
	// declare the same absolute $id; the scanner reports that case as a
	// *MalformedSchemaError with a "duplicate $id" Reason, not wrapping this
	// sentinel.
	ErrDuplicateID = errors.New("jsonschema: duplicate $id")

	// ErrAnchorNotFound is returned when a $ref/$recursiveRef fragment
	// names a plain-name anchor absent from the target resource.
	ErrAnchorNotFound = errors.New("jsonschema: anchor not found")

	// ErrIPv6AddressNotEnclosed is returned by the uri/uri-reference format
	// checks when an IPv6 host is not enclosed in brackets.
	ErrIPv6AddressNotEnclosed = errors.New("jsonschema: ipv6 address not enclosed in brackets")

	// ErrInvalidIPv6Address is returned by the uri/uri-reference format
	// checks when a bracketed host fails IPv6 validation.
	ErrInvalidIPv6Address = errors.New("jsonschema: invalid ipv6 address")
)

// MalformedSchemaError reports a structural problem with a schema document
// discovered during compilation. Location is the JSON Pointer of the problem
// within its document, or empty; it is not an absolute URI.
type MalformedSchemaError struct {
	Location string
	Reason   string
}

func (e *MalformedSchemaError) Error() string {
	return "jsonschema: malformed schema at " + e.Location + ": " + e.Reason
}

// RegexPatternError describes an invalid regular expression in a `pattern`
// or `patternProperties` keyword. Compilation does not construct it: it
// reports every invalid pattern together in one *MalformedSchemaError.
type RegexPatternError struct {
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return "jsonschema: invalid pattern " + quoteShort(e.Pattern) + " at " + e.Location + ": " + e.Err.Error()
}

func (e *RegexPatternError) Unwrap() error { return e.Err }

// RefResolutionError reports a $ref/$recursiveRef that could not be
// resolved to a schema location.
type RefResolutionError struct {
	Location string
	Ref      string
	Err      error
}

func (e *RefResolutionError) Error() string {
	return "jsonschema: cannot resolve " + quoteShort(e.Ref) + " at " + e.Location + ": " + e.Err.Error()
}

func (e *RefResolutionError) Unwrap() error { return e.Err }

func quoteShort(s string) string {
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return "\"" + s + "\""
}
