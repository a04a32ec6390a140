package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, BackendLocal, cfg.Server.Backend)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 1*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 5, cfg.UI.FilmCountPerStep)
	assert.Equal(t, 600*time.Millisecond, cfg.UI.ShakeTimeout)
	assert.Equal(t, "ctrl", cfg.Keys.Modifier)
	assert.Equal(t, "q", cfg.Keys.Bindings.Quit)
	assert.Equal(t, "off", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.UI.FilmCountPerStep)
	assert.True(t, filepath.IsAbs(cfg.Database.Path))
}

func TestLoad_FromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.toml")
	configContent := `
[server]
backend = "remote"
endpoint = "https://films.test/cinemaddict"
timeout = "3s"

[database]
path = "/tmp/test.db"

[ui]
film_count_per_step = 8
shake_timeout = "250ms"

[ui.colors]
primary = "#FF0000"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, BackendRemote, cfg.Server.Backend)
	assert.Equal(t, "https://films.test/cinemaddict", cfg.Server.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 1*time.Second, cfg.Database.Timeout, "unset keys keep their defaults")
	assert.Equal(t, 8, cfg.UI.FilmCountPerStep)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.ShakeTimeout)
	assert.Equal(t, "#FF0000", cfg.UI.Colors.Primary)
	assert.Equal(t, "#4ECDC4", cfg.UI.Colors.Secondary)
}

func TestLoad_EnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[server]\nendpoint = \"films.test\"\n"), 0o644))
	t.Setenv("CINEMADDICT_SERVER_BACKEND", "remote")
	t.Setenv("CINEMADDICT_SERVER_AUTHORIZATION", "Basic abc")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, BackendRemote, cfg.Server.Backend)
	assert.Equal(t, "Basic abc", cfg.Server.Authorization)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown backend", "[server]\nbackend = \"ftp\"\n", "server.backend"},
		{"remote without endpoint", "[server]\nbackend = \"remote\"\nendpoint = \"\"\n", "server.endpoint"},
		{"zero page size", "[ui]\nfilm_count_per_step = 0\n", "film_count_per_step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSave(t *testing.T) {
	cfg := TestConfig()
	cfg.Server.Backend = BackendRemote
	cfg.Server.Authorization = "Basic xyz"
	cfg.Database.Path = "/test/path.db"
	cfg.UI.FilmCountPerStep = 7
	cfg.Keys.Modifier = "alt"

	savePath := filepath.Join(t.TempDir(), "nested", "saved-config.toml")
	require.NoError(t, Save(cfg, savePath))
	require.FileExists(t, savePath)

	loaded, err := Load(savePath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.Backend, loaded.Server.Backend)
	assert.Equal(t, cfg.Server.Authorization, loaded.Server.Authorization)
	assert.Equal(t, cfg.Server.Timeout, loaded.Server.Timeout)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
	assert.Equal(t, cfg.UI.FilmCountPerStep, loaded.UI.FilmCountPerStep)
	assert.Equal(t, cfg.UI.ShakeTimeout, loaded.UI.ShakeTimeout)
	assert.Equal(t, cfg.Keys.Modifier, loaded.Keys.Modifier)
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	require.NoError(t, GenerateDefaultConfig(configPath))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ctrl", cfg.Keys.Modifier)
	assert.Equal(t, defaultConfig().Keys.Bindings, cfg.Keys.Bindings)
}

func TestDumpMasksAuthorization(t *testing.T) {
	cfg := TestConfig()
	cfg.Server.Authorization = "Basic secret"

	out, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "backend = 'local'")
	assert.NotContains(t, out, "secret")
	assert.Equal(t, "Basic secret", cfg.Server.Authorization, "caller's config is untouched")
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "Tester", cfg.Database.Author)
	require.NoError(t, cfg.Validate())
}
