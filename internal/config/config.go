// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes the manager's external configuration: the
// background image path and, per plugin, a bag of option values
// matched by string key against that plugin's own option registry.
// No config-file format is prescribed by the core; JSON is the
// simplest choice that still gives UpdateConfiguration something
// concrete to read.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Options is the flat, JSON-decoded configuration document. Plugins
// is keyed first by plugin name, then by that plugin's own option
// name, mirroring the fact that each built-in plugin owns an
// independent option registry (two plugins may reuse the same option
// name without collision).
type Options struct {
	BackgroundPath string                    `json:"background_path"`
	Plugins        map[string]map[string]any `json:"plugins"`
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var o Options
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if o.Plugins == nil {
		o.Plugins = make(map[string]map[string]any)
	}
	return &o, nil
}
