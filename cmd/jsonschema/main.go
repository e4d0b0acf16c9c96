// Command jsonschema compiles a schema file and validates an instance file
// against it, printing the detailed result list as JSON. It exists as a
// small reference for the library's Compile/Validate workflow, not as a
// schema-generation tool.
//
// Usage:
//
//	jsonschema <schema.json> <instance.json>
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schemacore/jsonschema"
	"github.com/schemacore/jsonschema/internal/ojson"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: jsonschema <schema.json> <instance.json>")
		os.Exit(2)
	}

	schemaData, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema:", err)
		os.Exit(1)
	}
	instanceData, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema:", err)
		os.Exit(1)
	}

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaData, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema: compiling schema:", err)
		os.Exit(1)
	}

	instance, err := ojson.Parse(instanceData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema: parsing instance:", err)
		os.Exit(1)
	}

	result := schema.Validate(instance)
	out, err := json.MarshalIndent(result.ToList(), "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema: rendering result:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !result.Valid {
		os.Exit(1)
	}
}
