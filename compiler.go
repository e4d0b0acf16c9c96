package jsonschema

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/schemacore/jsonschema/internal/lru"
	"github.com/schemacore/jsonschema/internal/ojson"
	"github.com/schemacore/jsonschema/internal/uri"
)

// remoteCacheCapacity bounds the loader-fetched document cache per spec.md
// section 5's resource budget table.
const remoteCacheCapacity = 10

// Loader fetches the bytes of a schema document named by a URI the
// compiler does not already know, the same shape as the teacher's
// `func(url string) (io.ReadCloser, error)` Loaders map but keyed by
// scheme here since $ref resolution, not just top-level Compile calls,
// needs to trigger a fetch.
type Loader func(u uri.URI) (io.ReadCloser, error)

// Compiler compiles schema documents and resolves the $ref graph between
// them. A Compiler's Options apply to every Schema it produces; spawn a
// second Compiler for a different option set, matching the teacher's
// one-Compiler-per-configuration posture.
type Compiler struct {
	mu sync.RWMutex

	options Options

	// documents holds every document explicitly compiled through this
	// Compiler, keyed by its normalized retrieval URI. Never evicted: a
	// Schema handed back to the caller must stay valid for its lifetime.
	documents map[string]*document

	// resourceIndex maps every resource URI (a document's own retrieval
	// URI, or any $id declared inside it) to its node, across every
	// document this Compiler has ever seen. Append-only for the same
	// reason documents is.
	resourceIndex map[string]*node

	// remoteCache deduplicates repeated Loader fetches of the same URL
	// within a bounded window (spec.md section 5); it governs re-fetch
	// avoidance, not resource lifetime.
	remoteCache *lru.Cache[string, []byte]
	fetchGroup  singleflight.Group

	Loaders    map[string]Loader
	Decoders   map[string]func(string) ([]byte, error)
	MediaTypes map[string]func([]byte) (ojson.Value, error)

	customFormats   map[string]func(any) bool
	customFormatsMu sync.RWMutex
}

// NewCompiler constructs a Compiler with the given Options (WithXxx
// functional options, matching the teacher's Compiler builder methods).
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		options:       defaultOptions(),
		documents:     make(map[string]*document),
		resourceIndex: make(map[string]*node),
		remoteCache:   lru.New[string, []byte](remoteCacheCapacity),
		Loaders:       make(map[string]Loader),
		Decoders:      make(map[string]func(string) ([]byte, error)),
		MediaTypes:    make(map[string]func([]byte) (ojson.Value, error)),
		customFormats: make(map[string]func(any) bool),
	}
	for _, opt := range opts {
		opt(&c.options)
	}
	setupDecoders(c)
	setupMediaTypes(c)
	return c
}

// RegisterLoader registers a Loader for the given URI scheme (http, https,
// file, ...), matching the teacher's RegisterLoader.
func (c *Compiler) RegisterLoader(scheme string, loader Loader) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Loaders[scheme] = loader
	return c
}

// RegisterFormat adds or overrides a named format validator for this
// Compiler, consulted before the global Formats registry.
func (c *Compiler) RegisterFormat(name string, validate func(any) bool) *Compiler {
	c.customFormatsMu.Lock()
	defer c.customFormatsMu.Unlock()
	c.customFormats[name] = validate
	return c
}

// Compile parses data as a schema document, scans its resources, and
// registers it with the Compiler under baseURI (used to resolve relative
// $ref/$id, and as the document's own resource identity when it declares
// no root $id).
func (c *Compiler) Compile(data []byte, baseURI string) (*Schema, error) {
	root, err := ojson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: parsing schema: %w", err)
	}

	base := uri.URI{}
	if baseURI != "" {
		base, err = uri.Parse(baseURI)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: invalid base URI %q: %w", baseURI, err)
		}
	}
	base = base.Normalize()

	spec := c.options.DefaultSpecification
	if c.options.ForceSpecification {
		spec = c.options.Specification
	} else if guessed, gerr := guessSpecification(root, c.options.DefaultSpecification); gerr == nil {
		spec = guessed
	} else if gerr != ErrUnknownSpecification {
		return nil, gerr
	} else if err := validateAgainstMetaSchema(root, spec); err != nil {
		return nil, err
	}

	doc, err := scanDocument(base, root, spec)
	if err != nil {
		return nil, err
	}

	vocab, err := enforceVocabulary(doc.rootNode, spec)
	if err != nil {
		return nil, err
	}

	if err := compileRegexPatterns(doc.rootNode); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.documents[base.String()] = doc
	for resURI, n := range doc.resources {
		c.resourceIndex[resURI] = n
	}
	c.mu.Unlock()

	return &Schema{root: doc.rootNode, spec: spec, vocab: vocab, compiler: c}, nil
}

func setupDecoders(c *Compiler) {
	c.Decoders["base64"] = decodeBase64
}

func setupMediaTypes(c *Compiler) {
	c.MediaTypes["application/json"] = func(b []byte) (ojson.Value, error) { return ojson.Parse(b) }
	c.MediaTypes["application/yaml"] = decodeYAMLMediaType
}
