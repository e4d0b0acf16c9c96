// Package testsuite runs JSON-Schema-Test-Suite-shaped fixture files
// against the compiler, the same fixture format and harness shape as the
// teacher's tests/utils.go, adapted for the Compile(data, baseURI)/
// Validate(ojson.Value) API.
package testsuite

import (
	"os"
	"testing"

	"github.com/schemacore/jsonschema"
	"github.com/schemacore/jsonschema/internal/ojson"
)

// Options configures a fixture run.
type Options struct {
	// AssertFormat enables format as an assertion, matching the upstream
	// suite's "optional/format" directories.
	AssertFormat bool
	// Exclusions names "<case description>" or "<case description>/<test
	// description>" entries to skip, for known-divergent cases.
	Exclusions map[string]bool
}

// Run loads path as a JSON array of test cases and runs every test in it through
// a fresh Compiler configured by opts, reporting failures via t.
func Run(t *testing.T, path string, opts Options) {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		t.Fatalf("testsuite: reading %s: %v", path, err)
	}

	root, err := ojson.Parse(data)
	if err != nil {
		t.Fatalf("testsuite: parsing %s: %v", path, err)
	}
	if root.Kind() != ojson.KindArray {
		t.Fatalf("testsuite: %s: expected a JSON array of cases", path)
	}

	for _, caseVal := range root.Array() {
		obj := caseVal.Object()
		descVal, _ := obj.Get("description")
		description := descVal.Str()

		t.Run(description, func(t *testing.T) {
			if opts.Exclusions[description] {
				t.Skip("excluded")
			}

			schemaVal, _ := obj.Get("schema")
			compiler := jsonschema.NewCompiler(jsonschema.WithFormat(opts.AssertFormat))
			schemaBytes, err := schemaVal.MarshalJSON()
			if err != nil {
				t.Fatalf("testsuite: re-marshaling schema: %v", err)
			}
			schema, err := compiler.Compile(schemaBytes, "")
			if err != nil {
				t.Fatalf("testsuite: compiling schema: %v", err)
			}

			testsVal, _ := obj.Get("tests")
			for _, testVal := range testsVal.Array() {
				tobj := testVal.Object()
				tdescVal, _ := tobj.Get("description")
				tdesc := tdescVal.Str()
				full := description + "/" + tdesc

				t.Run(tdesc, func(t *testing.T) {
					if opts.Exclusions[full] {
						t.Skip("excluded")
					}
					instance, _ := tobj.Get("data")
					validVal, _ := tobj.Get("valid")
					wantValid := validVal.Bool()

					result := schema.Validate(instance)
					if wantValid && !result.Valid {
						t.Errorf("expected valid, got errors: %v", result.GetDetailedErrors())
					}
					if !wantValid && result.Valid {
						t.Error("expected invalid, got valid")
					}
				})
			}
		})
	}
}
