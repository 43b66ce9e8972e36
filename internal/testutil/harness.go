package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/app"
	"github.com/specialistvlad/topicmapgo/internal/config"
	"github.com/stretchr/testify/require"
)

// Base is the base locator the harness resolves fixture labels against.
const Base = "http://example.org/map"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Report    app.Report
	Err       error
	App       *app.App
}

// RunFixtureTest loads files into a fresh app using a background context.
// cfg may be nil for the defaults; the harness always logs at debug level.
func RunFixtureTest(t *testing.T, files map[string]string, cfg *config.Config) *HarnessResult {
	t.Helper()
	return RunFixtureTestWithContext(context.Background(), t, files, cfg)
}

// RunFixtureTestWithContext writes files (relative path to content) into a
// temporary directory and loads that directory into a fresh app.
func RunFixtureTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *config.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg == nil {
		cfg = config.Default()
		cfg.Map.BaseLocator = Base
	}
	testApp, out, logs := app.SetupAppTest(t, cfg)

	report, err := testApp.Load(ctx, dir)

	if os.Getenv("TOPICMAPGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Report:    report,
		Err:       err,
		App:       testApp,
	}
}
