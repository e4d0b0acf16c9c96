package jsonschema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schemacore/jsonschema/internal/ojson"
)

// compileRegexPatterns eagerly compiles every `pattern` and
// `patternProperties` regular expression reachable from root, caching the
// result on each node's compiledPatterns so evaluation never pays regex
// compilation cost and so a malformed pattern is reported at compile time,
// matching the teacher's validateRegexSyntax/collectRegexErrors.
func compileRegexPatterns(root *node) error {
	var problems []string
	walkNodes(root, func(n *node) {
		if n.isBoolean() {
			return
		}
		obj := n.object()
		if patVal, ok := obj.Get("pattern"); ok && patVal.Kind() == ojson.KindString {
			if err := cachePattern(n, patVal.Str()); err != nil {
				problems = append(problems, fmt.Sprintf("%s: pattern %q: %v", n.pointer.String(), patVal.Str(), err))
			}
		}
		if ppVal, ok := obj.Get("patternProperties"); ok && ppVal.Kind() == ojson.KindObject {
			for _, pat := range ppVal.Object().Keys() {
				if err := cachePattern(n, pat); err != nil {
					problems = append(problems, fmt.Sprintf("%s: patternProperties %q: %v", n.pointer.String(), pat, err))
				}
			}
		}
	})
	if len(problems) > 0 {
		return &MalformedSchemaError{Location: root.pointer.String(), Reason: "invalid regular expressions: " + strings.Join(problems, "; ")}
	}
	return nil
}

func cachePattern(n *node, pattern string) error {
	if n.compiledPatterns == nil {
		n.compiledPatterns = make(map[string]*regexp.Regexp)
	}
	if _, ok := n.compiledPatterns[pattern]; ok {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	n.compiledPatterns[pattern] = re
	return nil
}

// walkNodes visits every node in root's document whose pointer is at or
// below root's, calling fn on each. Used for the one-time compile-phase
// regex compilation pass, which needs to see every schema location
// regardless of keyword semantics.
func walkNodes(root *node, fn func(*node)) {
	prefix := root.pointer.String()
	for ptr, n := range root.doc.byPointer {
		if ptr == prefix || strings.HasPrefix(ptr, prefix+"/") {
			fn(n)
		}
	}
}
