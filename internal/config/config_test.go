package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
input:
  header_offset: 0
decoder:
  first_layer: ethernet
report:
  top_n: 5
writers:
  - type: gob
    enabled: true
    file:
      root_path: /tmp/templates
  - type: nats
    enabled: false
    nats:
      url: nats://localhost:4222
      subject: templates
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Input.HeaderOffset)
	assert.Equal(t, "ethernet", cfg.Decoder.FirstLayer)
	assert.Equal(t, "up", cfg.Decoder.Direction, "default kept")
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.Equal(t, 256, cfg.Report.MaxWidth, "default kept")
	require.Len(t, cfg.Writers, 2)
	assert.Equal(t, "/tmp/templates", cfg.Writers[0].File.RootPath)
	assert.Equal(t, "templates", cfg.Writers[1].NATS.Subject)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEMPLATES_CLICKHOUSE_PASSWORD", "secret")
	t.Setenv("TEMPLATES_NATS_URL", "nats://broker:4222")

	path := writeConfig(t, `
writers:
  - type: clickhouse
    clickhouse:
      password: from-file
  - type: nats
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Writers[0].ClickHouse.Password)
	assert.Equal(t, "nats://broker:4222", cfg.Writers[1].NATS.URL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "input: [oops"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "input:\n  header_offset: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "writers:\n  - enabled: true\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 14, cfg.Input.HeaderOffset)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.NoError(t, cfg.Validate())
}
