package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/config"
)

// testConfig returns the embedded default config.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

var testWindow = Window{W: 800, H: 600}
