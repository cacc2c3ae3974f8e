package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Logs and sink
// output share the returned buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	out := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	testApp := NewApp(out, cfg, modules...)

	t.Cleanup(func() {
		if os.Getenv("UG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return testApp, out
}
