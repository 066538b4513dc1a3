// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// No config file: defaults apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err, "explicit missing config file is an error")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStorageBackend, cfg.Storage.Backend)
	assert.Equal(t, DefaultStoragePath, cfg.Storage.Path)
	assert.Equal(t, DefaultOutputFormat, cfg.Output.Format)
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: memory
logging:
  debug: true
output:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "json", cfg.Output.Format)
	// unset values keep their defaults
	assert.Equal(t, DefaultStoragePath, cfg.Storage.Path)
}

func TestLoadRejectsUnsupportedBackend(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: redis
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage backend")
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, `
output:
  format: xml
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Backend: "file", Path: "/tmp/x"},
		Output:  OutputConfig{Format: "yaml"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Backend = "s3"
	assert.Error(t, cfg.Validate())
}
