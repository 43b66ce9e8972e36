package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
base = "http://example.org/map"

topic "berlin" {
  subject_identifiers = ["http://example.org/berlin"]
  name { value = "Berlin" }
}

topic "hauptstadt" {
  subject_identifiers = ["http://example.org/berlin"]
}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "berlin.hcl"), []byte(fixture), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errW bytes.Buffer
	err := Execute(context.Background(), &out, &errW, args)
	return out.String(), errW.String(), err
}

func TestLoadCommand(t *testing.T) {
	// Arrange
	dir := writeFixture(t)

	// Act
	out, _, err := execute(t, "load", dir)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "files: 1\n")
	assert.Contains(t, out, "topics: 2\n")
	assert.Contains(t, out, "merges: 1\n")
	assert.NotContains(t, out, "topicmap_merges_total")
}

func TestLoadCommand_Metrics(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := execute(t, "--metrics", "load", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "topicmap_merges_total 1\n")
}

func TestLoadCommand_DebugLogsGoToStderr(t *testing.T) {
	dir := writeFixture(t)

	out, logs, err := execute(t, "--log-level", "debug", "--log-format", "json", "load", dir)

	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"Fixtures loaded."`)
	assert.NotContains(t, out, "Fixtures loaded.")
}

func TestResolveCommand(t *testing.T) {
	dir := writeFixture(t)

	testCases := []struct {
		name    string
		locator string
		want    string
	}{
		{name: "subject identifier", locator: "http://example.org/berlin", want: "name: Berlin\n"},
		{name: "label of the merged topic", locator: "hauptstadt", want: "item_identifier: http://example.org/map#hauptstadt\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, "--base", "http://example.org/map", "resolve", tc.locator, dir)

			require.NoError(t, err)
			assert.Contains(t, out, "construct: topic#")
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestResolveCommand_NotFound(t *testing.T) {
	_, _, err := execute(t, "resolve", "http://example.org/nothing")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitFailure, exitErr.Code)
	assert.Contains(t, exitErr.Message, "no construct found")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "topicmapgo version dev\n", out)
}

func TestUsageErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, want: "unknown flag"},
		{name: "invalid log level", args: []string{"--log-level", "loud", "load", "."}, want: "log.level"},
		{name: "invalid base", args: []string{"--base", "relative", "load", "."}, want: "map.base_locator"},
		{name: "missing config file", args: []string{"--config", "/nonexistent/topicmapgo.yaml", "load", "."}, want: "failed to read config file"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, ExitUsage, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
