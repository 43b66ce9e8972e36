package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/config"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App for system testing with debug logging. nil cfg
// means the defaults. It returns the app with its output and log buffers.
func SetupAppTest(t *testing.T, cfg *config.Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Log.Level = "debug"

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp, err := NewApp(out, logs, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("TOPICMAPGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
