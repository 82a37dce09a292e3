// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDecodesPluginOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{
		"background_path": "/tmp/bg.png",
		"plugins": {
			"move": {"snap": true}
		}
	}`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bg.png", opts.BackgroundPath)
	assert.Equal(t, true, opts.Plugins["move"]["snap"])
}

func TestLoadDefaultsPluginsMapWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"background_path": ""}`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, opts.Plugins)
	assert.Empty(t, opts.Plugins)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSONReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
