package jsonschema

import (
	"embed"
	"fmt"
	"sync"

	"github.com/schemacore/jsonschema/internal/ojson"
)

// metaschemaFS embeds the built-in meta-schema documents, the same way
// i18n.go embeds its locale bundles: data that ships with the module rather
// than being fetched at runtime.
//
//go:embed metaschemas/*.json
var metaschemaFS embed.FS

// builtinMetaSchemas lists the embedded documents and the base URI each
// should be compiled under, grounded on the santhosh-tekuri-jsonschema
// reference material's roots.validate step (other_examples), which keeps
// exactly this kind of built-in resource table so $schema can be checked
// without a network fetch.
var builtinMetaSchemas = []struct {
	file string
	base string
}{
	{"metaschemas/draft6.json", "http://json-schema.org/draft-06/schema#"},
	{"metaschemas/draft7.json", "http://json-schema.org/draft-07/schema#"},
	{"metaschemas/2019-09-schema.json", "https://json-schema.org/draft/2019-09/schema"},
	{"metaschemas/2019-09-core.json", "https://json-schema.org/draft/2019-09/meta/core"},
	{"metaschemas/2019-09-applicator.json", "https://json-schema.org/draft/2019-09/meta/applicator"},
	{"metaschemas/2019-09-validation.json", "https://json-schema.org/draft/2019-09/meta/validation"},
	{"metaschemas/2019-09-meta-data.json", "https://json-schema.org/draft/2019-09/meta/meta-data"},
	{"metaschemas/2019-09-format.json", "https://json-schema.org/draft/2019-09/meta/format"},
	{"metaschemas/2019-09-content.json", "https://json-schema.org/draft/2019-09/meta/content"},
}

var (
	metaCompilerOnce sync.Once
	metaSchemas      map[Specification]*Schema
	metaCompilerErr  error
)

func buildMetaCompiler() {
	c := NewCompiler()
	metaSchemas = make(map[Specification]*Schema, 3)
	for _, ms := range builtinMetaSchemas {
		data, err := metaschemaFS.ReadFile(ms.file)
		if err != nil {
			metaCompilerErr = fmt.Errorf("jsonschema: reading embedded meta-schema %s: %w", ms.file, err)
			return
		}
		s, err := c.Compile(data, ms.base)
		if err != nil {
			metaCompilerErr = fmt.Errorf("jsonschema: compiling embedded meta-schema %s: %w", ms.base, err)
			return
		}
		if spec, ok := specificationFromURI(ms.base); ok {
			metaSchemas[spec] = s
		}
	}
}

// metaSchemaFor returns the compiled Schema for one of the three dialects'
// own meta-schema, lazily building the shared meta-compiler once per
// process (meta-schemas never change at runtime).
func metaSchemaFor(spec Specification) (*Schema, error) {
	metaCompilerOnce.Do(buildMetaCompiler)
	if metaCompilerErr != nil {
		return nil, metaCompilerErr
	}
	s, ok := metaSchemas[spec]
	if !ok {
		return nil, fmt.Errorf("jsonschema: no built-in meta-schema for %s", spec)
	}
	return s, nil
}

// validateAgainstMetaSchema implements spec.md section 4.5/4.7's fallback:
// when a document's $schema is present but unrecognized, check the document
// is at least shaped like a schema of the Compiler's default dialect before
// falling back to treating it as one, rather than silently accepting
// arbitrary JSON as a schema.
func validateAgainstMetaSchema(root ojson.Value, spec Specification) error {
	meta, err := metaSchemaFor(spec)
	if err != nil {
		return err
	}
	result := meta.Validate(root)
	if !result.Valid {
		errs := result.GetDetailedErrors()
		reason := "does not conform to the " + spec.String() + " meta-schema"
		if len(errs) > 0 {
			reason += ": " + errs[0].Error()
		}
		return &MalformedSchemaError{Location: "", Reason: reason}
	}
	return nil
}
