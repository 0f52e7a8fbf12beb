package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// runTimeout bounds one invocation; the fake gateway answers immediately
const runTimeout = 30 * time.Second

var binary struct {
	once sync.Once
	path string
	err  error
}

// Result is the outcome of one clawusage invocation
type Result struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

// String formats the result for assertion messages
func (r Result) String() string {
	return fmt.Sprintf("$ clawusage %s\nexit %d\n--- stdout\n%s--- stderr\n%s",
		strings.Join(r.Args, " "), r.ExitCode, r.Stdout, r.Stderr)
}

// Build compiles clawusage into a temp directory, once per test process.
// TestMain calls it before running tests.
func Build() error {
	binary.once.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			binary.err = err
			return
		}

		dir, err := os.MkdirTemp("", "clawusage-integration-*")
		if err != nil {
			binary.err = err
			return
		}
		binary.path = filepath.Join(dir, "clawusage")
		if runtime.GOOS == "windows" {
			binary.path += ".exe"
		}

		cmd := exec.Command("go", "build", "-o", binary.path, ".")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			binary.err = fmt.Errorf("go build failed: %w\n%s", err, out)
		}
	})
	return binary.err
}

// Cleanup removes the directory created by Build
func Cleanup() {
	if binary.path != "" {
		os.RemoveAll(filepath.Dir(binary.path))
	}
}

// Run executes clawusage with args inside env and waits for it to exit.
// A hung process or one that cannot start fails the test.
func Run(tb testing.TB, env *TestEnvironment, args ...string) Result {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary.path, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Args: args, Stderr: stderr.String(), Stdout: stdout.String()}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		tb.Fatalf("clawusage did not exit within %s\n%s", runTimeout, result)
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Fatalf("failed to start clawusage: %v", err)
	}
	return result
}

// moduleRoot walks up from the working directory to the one holding go.mod
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above the working directory")
		}
		dir = parent
	}
}
