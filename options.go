package jsonschema

// Options configures a Compiler and every Schema/Validator built from it,
// covering the option set spec.md section 6 exposes as external interface:
// FORMAT, SPECIFICATION/DEFAULT_SPECIFICATION, COLLECT_ANNOTATIONS,
// COLLECT_ANNOTATIONS_FOR_FAILED, COLLECT_ERRORS, CONTENT, AUTO_RESOLVE.
type Options struct {
	// AssertFormat makes `format` a genuine assertion instead of an
	// annotation-only keyword (spec.md's FORMAT option).
	AssertFormat bool

	// DefaultSpecification is used when a schema's $schema is not one this
	// module recognizes, or when it has no $schema and the keyword
	// heuristic rules out every dialect; otherwise a schema without
	// $schema gets the newest dialect the heuristic does not rule out.
	DefaultSpecification Specification

	// ForceSpecification, when true, ignores $schema entirely and treats
	// every compiled document as Specification.
	ForceSpecification bool
	Specification      Specification

	// CollectAnnotations turns on annotation collection (title,
	// description, default, examples, deprecated, readOnly, writeOnly,
	// format, contentEncoding, contentMediaType). Applicators such as
	// properties, items, contains and unevaluated* emit no annotation of
	// the indexes or properties they covered.
	CollectAnnotations bool

	// CollectAnnotationsForFailed keeps annotations produced by a keyword
	// application that itself failed (normally annotations from a failed
	// application are discarded).
	CollectAnnotationsForFailed bool

	// CollectErrors is accepted but not read: validation always keeps the
	// full Error tree of failing keywords, whatever its value, and never
	// records passing keyword results.
	CollectErrors bool

	// Content turns on decoding contentEncoding/contentMediaType and
	// recursively validating contentSchema against the decoded value
	// rather than only annotating.
	Content bool

	// AutoResolve allows $ref resolution to invoke a registered Loader for
	// a URI the Compiler has not already seen. When false, an unknown $ref
	// is a hard RefResolutionError.
	AutoResolve bool
}

func defaultOptions() Options {
	return Options{
		AssertFormat:         true,
		DefaultSpecification: Draft2019_09,
		CollectAnnotations:   true,
		CollectErrors:        true,
		Content:              false,
		AutoResolve:          true,
	}
}

// Option mutates an Options value; pass any number to NewCompiler.
type Option func(*Options)

func WithFormat(assert bool) Option { return func(o *Options) { o.AssertFormat = assert } }

func WithDefaultSpecification(s Specification) Option {
	return func(o *Options) { o.DefaultSpecification = s }
}

func WithForcedSpecification(s Specification) Option {
	return func(o *Options) { o.ForceSpecification = true; o.Specification = s }
}

func WithCollectAnnotations(collect bool) Option {
	return func(o *Options) { o.CollectAnnotations = collect }
}

func WithCollectAnnotationsForFailed(collect bool) Option {
	return func(o *Options) { o.CollectAnnotationsForFailed = collect }
}

func WithCollectErrors(collect bool) Option { return func(o *Options) { o.CollectErrors = collect } }

func WithContent(enabled bool) Option { return func(o *Options) { o.Content = enabled } }

func WithAutoResolve(enabled bool) Option { return func(o *Options) { o.AutoResolve = enabled } }
