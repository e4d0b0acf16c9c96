package testsuite_test

import (
	"testing"

	"github.com/schemacore/jsonschema/internal/testsuite"
)

func TestScenarios(t *testing.T) {
	testsuite.Run(t, "testdata/scenarios.json", testsuite.Options{AssertFormat: true})
}
