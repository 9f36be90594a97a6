package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majo33/atom/internal/config"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Resources.Root = t.TempDir()
	cfg.Logging.Level = "error"

	a, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, a.DevServer())
	assert.Same(t, a.Resources(), a.Engine().Resources())
	assert.Len(t, a.Engine().Types().Types(), 5)

	cfg.DevServer.Enabled = true
	withDev, cleanupDev, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanupDev()
	assert.NotNil(t, withDev.DevServer())
}

func TestInitializeAppRejectsBadLogging(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	_, _, err := InitializeApp(cfg)
	assert.Error(t, err)
}
