package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own CLAWUSAGE_HOME.
type TestEnvironment struct {
	Home     string
	extraEnv map[string]string
	tb       testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp CLAWUSAGE_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home:     tb.TempDir(),
		extraEnv: make(map[string]string),
		tb:       tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out CLAWUSAGE_* and OPENCLAW_* variables and sets:
//   - CLAWUSAGE_HOME to the temp directory
//   - CLAWUSAGE_DEBUG to false (disables debug logging)
//   - OPENCLAW_CONFIG_PATH to a file inside the temp directory
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "CLAWUSAGE_") || strings.HasPrefix(key, "OPENCLAW_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"CLAWUSAGE_HOME="+e.Home,
		"CLAWUSAGE_DEBUG=false",
		"OPENCLAW_CONFIG_PATH="+e.OpenClawConfigPath(),
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// ConfigPath returns the path to the test config.toml.
func (e *TestEnvironment) ConfigPath() string {
	return filepath.Join(e.Home, "config.toml")
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.Home, "usage.db")
}

// OpenClawConfigPath returns the path the binary reads the gateway config from.
func (e *TestEnvironment) OpenClawConfigPath() string {
	return filepath.Join(e.Home, "openclaw.json")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// UseGateway points the binary at gw and authenticates with its token.
func (e *TestEnvironment) UseGateway(gw *FakeGateway) {
	e.SetEnv("OPENCLAW_GATEWAY_URL", gw.URL)
	e.SetEnv("OPENCLAW_TOKEN", gw.Token)
}
