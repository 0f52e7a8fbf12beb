package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorPrefix starts the line main prints for a failed command
const errorPrefix = "Error:"

// AssertSuccess checks for exit 0 with no error line on stderr
func AssertSuccess(tb testing.TB, r Result) {
	tb.Helper()
	assert.Equal(tb, 0, r.ExitCode, "expected success\n%s", r)
	assert.NotContains(tb, r.Stderr, errorPrefix, "unexpected error line\n%s", r)
}

// AssertFailed checks that a command ran and failed: non-zero exit, an
// "Error:" line on stderr, and each of want somewhere on stderr
func AssertFailed(tb testing.TB, r Result, want ...string) {
	tb.Helper()
	assert.NotEqual(tb, 0, r.ExitCode, "expected failure\n%s", r)
	assert.True(tb, hasLinePrefix(r.Stderr, errorPrefix), "expected an %q line\n%s", errorPrefix, r)
	for _, w := range want {
		assert.Contains(tb, r.Stderr, w, "stderr is missing %q\n%s", w, r)
	}
}

// AssertRejected checks that arguments or configuration were refused
// during parsing, before any command ran
func AssertRejected(tb testing.TB, r Result, want ...string) {
	tb.Helper()
	assert.NotEqual(tb, 0, r.ExitCode, "expected rejection\n%s", r)
	assert.Contains(tb, r.Stderr, "clawusage: error:", "expected a parse error\n%s", r)
	for _, w := range want {
		assert.Contains(tb, r.Stderr, w, "stderr is missing %q\n%s", w, r)
	}
}

// AssertStdoutContains checks stdout for every string in want
func AssertStdoutContains(tb testing.TB, r Result, want ...string) {
	tb.Helper()
	for _, w := range want {
		assert.Contains(tb, r.Stdout, w, "stdout is missing %q\n%s", w, r)
	}
}

// AssertStdoutNotContains checks that stdout holds none of unwanted
func AssertStdoutNotContains(tb testing.TB, r Result, unwanted ...string) {
	tb.Helper()
	for _, u := range unwanted {
		assert.NotContains(tb, r.Stdout, u, "stdout should not contain %q\n%s", u, r)
	}
}

// AssertStdoutEmpty checks that nothing but whitespace reached stdout
func AssertStdoutEmpty(tb testing.TB, r Result) {
	tb.Helper()
	assert.Empty(tb, strings.TrimSpace(r.Stdout), "expected empty stdout\n%s", r)
}

// AssertSingleJSON requires stdout to be exactly one JSON document and decodes it into target.
// Anything printed before or after the document fails the test.
func AssertSingleJSON(tb testing.TB, r Result, target any) {
	tb.Helper()
	dec := json.NewDecoder(strings.NewReader(r.Stdout))
	require.NoError(tb, dec.Decode(target), "stdout is not JSON\n%s", r)

	var extra json.RawMessage
	err := dec.Decode(&extra)
	require.True(tb, errors.Is(err, io.EOF), "stdout has more than one JSON document\n%s", r)
}

// AssertJSONField decodes stdout as one JSON object and compares a top-level field
func AssertJSONField(tb testing.TB, r Result, key string, want any) {
	tb.Helper()
	var obj map[string]any
	AssertSingleJSON(tb, r, &obj)
	assert.Equal(tb, want, obj[key], "JSON field %q\n%s", key, r)
}

func hasLinePrefix(s, prefix string) bool {
	for line := range bytes.Lines([]byte(s)) {
		if bytes.HasPrefix(line, []byte(prefix)) {
			return true
		}
	}
	return false
}
