package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes(t *testing.T) {
	data := []byte(`
version: "1"
output_dir: ./mocks
timeout: 30s
shell: /bin/bash
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, "./mocks", cfg.OutputDir)
	require.Equal(t, "/bin/bash", cfg.Shell)
	require.Equal(t, 30*time.Second, cfg.CaptureTimeout())
}

func TestLoadFromBytesInvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("output_dir: [unclosed"))
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""))
	require.NoError(t, err)
	require.Equal(t, "/bin/sh", cfg.Shell)
	require.Equal(t, "", cfg.OutputDir)
	require.Equal(t, DefaultTimeout, cfg.CaptureTimeout())
}

func TestCaptureTimeoutUnparseable(t *testing.T) {
	cfg := &Config{Timeout: "soon"}
	require.Equal(t, DefaultTimeout, cfg.CaptureTimeout())

	cfg = &Config{Timeout: "-5s"}
	require.Equal(t, DefaultTimeout, cfg.CaptureTimeout())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CMDMOCK_TEST_DIR", "/tmp/mocks")

	cfg, err := LoadFromBytes([]byte("output_dir: ${CMDMOCK_TEST_DIR}\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/mocks", cfg.OutputDir)
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version: \"1\"\n"), 0644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	require.Equal(t, configPath, found)
}

func TestLoadFromMissingConfigUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "/bin/sh", cfg.Shell)
}

func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "cmdmock")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
}

func TestLoadFromGlobalConfigOnly(t *testing.T) {
	writeGlobalConfig(t, "shell: /bin/bash\ntimeout: 45s\n")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "/bin/bash", cfg.Shell)
	require.Equal(t, 45*time.Second, cfg.CaptureTimeout())
}

func TestLoadFromProjectOverridesGlobal(t *testing.T) {
	writeGlobalConfig(t, "shell: /bin/bash\noutput_dir: /global/mocks\n")

	projectDir := t.TempDir()
	projectConfig := filepath.Join(projectDir, ConfigFileName)
	require.NoError(t, os.WriteFile(projectConfig, []byte("output_dir: ./mocks\n"), 0644))

	cfg, err := LoadFrom(projectDir)
	require.NoError(t, err)

	// Project value wins; unset project fields fall back to the global layer.
	require.Equal(t, "./mocks", cfg.OutputDir)
	require.Equal(t, "/bin/bash", cfg.Shell)
}

func TestLoadFromMalformedGlobalSkipped(t *testing.T) {
	writeGlobalConfig(t, "shell: [unclosed")

	projectDir := t.TempDir()
	projectConfig := filepath.Join(projectDir, ConfigFileName)
	require.NoError(t, os.WriteFile(projectConfig, []byte("output_dir: ./mocks\n"), 0644))

	cfg, err := LoadFrom(projectDir)
	require.NoError(t, err)
	require.Equal(t, "./mocks", cfg.OutputDir)
	require.Equal(t, "/bin/sh", cfg.Shell)
}

func TestMergeExtensions(t *testing.T) {
	base := &Config{Extensions: map[string]interface{}{
		"recorder": map[string]interface{}{"capture_dir": "/global"},
		"audit":    map[string]interface{}{"enabled": true},
	}}
	overlay := &Config{Extensions: map[string]interface{}{
		"recorder": map[string]interface{}{"capture_dir": "/project"},
	}}

	merged := merge(base, overlay)
	require.Equal(t, map[string]interface{}{"capture_dir": "/project"}, merged.Extensions["recorder"])
	require.Equal(t, map[string]interface{}{"enabled": true}, merged.Extensions["audit"])
}

func TestUnmarshalExtension(t *testing.T) {
	data := []byte(`
extensions:
  recorder:
    keep_captures: true
    capture_dir: /tmp/captures
`)
	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	var ext struct {
		KeepCaptures bool   `yaml:"keep_captures"`
		CaptureDir   string `yaml:"capture_dir"`
	}
	require.NoError(t, cfg.UnmarshalExtension("recorder", &ext))
	require.True(t, ext.KeepCaptures)
	require.Equal(t, "/tmp/captures", ext.CaptureDir)

	// Unknown keys leave the target zero-valued.
	var missing struct {
		Anything string `yaml:"anything"`
	}
	require.NoError(t, cfg.UnmarshalExtension("nope", &missing))
	require.Equal(t, "", missing.Anything)
}
