// Package integration_test provides end-to-end tests for clawusage CLI commands.
// Tests compile the binary once via TestMain and run each test with an
// isolated CLAWUSAGE_HOME and, where needed, a fake gateway.
package integration_test

import (
	"log"
	"os"
	"testing"

	"github.com/renato0307/clawusage/test/integration/harness"
)

func TestMain(m *testing.M) {
	if err := harness.Build(); err != nil {
		log.Fatalf("Failed to build binary: %v", err)
	}

	code := m.Run()
	harness.Cleanup()
	os.Exit(code)
}
