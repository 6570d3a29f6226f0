package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "<file>", cfg.Tags.Start)
	assert.Equal(t, "</file>", cfg.Tags.End)
	assert.Empty(t, cfg.Allow)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blackbox.yaml")
	content := `enabled: true
allow:
  - "**/*.test.ts"
  - "fixtures/**"
tags:
  start: "<source>"
  end: "</source>"
logging:
  verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"**/*.test.ts", "fixtures/**"}, cfg.Allow)
	assert.Equal(t, "<source>", cfg.Tags.Start)
	assert.Equal(t, "</source>", cfg.Tags.End)
	assert.True(t, cfg.Logging.Verbose)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestParseAgentOptions(t *testing.T) {
	cfg, err := ParseAgentOptions([]byte(`{"enabled": false, "allow": ["*.d.ts"]}`))
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, []string{"*.d.ts"}, cfg.Allow)
	// Defaults survive for fields the blob omits.
	assert.Equal(t, "<file>", cfg.Tags.Start)
}

func TestParseAgentOptions_Empty(t *testing.T) {
	cfg, err := ParseAgentOptions(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
}

func TestParseAgentOptions_UnknownFieldsIgnored(t *testing.T) {
	cfg, err := ParseAgentOptions([]byte(`{"enabled": true, "model": "whatever"}`))
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
}

func TestParseAgentOptions_Malformed(t *testing.T) {
	_, err := ParseAgentOptions([]byte(`{not json`))
	assert.Error(t, err)
}
