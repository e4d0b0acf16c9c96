// Package jsonschema implements a JSON Schema validator for Go, supporting
// the Draft-06, Draft-07, and 2019-09 dialects side by side in a single
// Compiler. It exposes a Compile/Validate workflow: parse and resolve a
// schema document's $ref graph once, then evaluate any number of instances
// against the result.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
