package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Economy, cfg.Economy)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9090
economy:
  roster_cap: 25
  anti_snipe_window: 90s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Economy.RosterCap)
	assert.Equal(t, 90*time.Second, cfg.Economy.AntiSnipeWindow)
	assert.Equal(t, 20, cfg.Economy.PackRosterLimit)
	assert.Equal(t, "LEAGUE_EVENTS", cfg.NATS.StreamName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("NATS_URL", "nats://nats:4222")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("economy:\n  pack_roster_limit: 30\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pack_roster_limit")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
