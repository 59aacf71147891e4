/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for netivim.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"

	netfs "bennypowers.dev/netivim/fs"
)

// projectConfigNames are the project configuration file names in priority order.
var projectConfigNames = []string{"tsconfig.json", "jsconfig.json"}

// ProjectConfig is the slice of a tsconfig-style document netivim reads.
// Editors write these files with comments and trailing commas, so parsing
// goes through jsonc.
type ProjectConfig struct {
	// Path is the absolute path of the configuration file.
	Path string `json:"-"`

	// DenoOptions carries the runtime-specific options block.
	DenoOptions DenoOptions `json:"denoOptions"`
}

// DenoOptions is the "denoOptions" block of a project configuration.
type DenoOptions struct {
	// ImportMap names an import map file, relative to the configuration
	// file's directory.
	ImportMap string `json:"importMap"`
}

// FindProject searches upward from dir for the nearest project configuration.
// Returns nil when none is found; a missing config is not an error, it just
// means resolution runs without an import map.
func FindProject(filesystem netfs.FileSystem, dir string) (*ProjectConfig, error) {
	for {
		for _, name := range projectConfigNames {
			path := filepath.Join(dir, name)
			if filesystem.Exists(path) {
				return loadProject(filesystem, path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return nil, nil
		}
		dir = parent
	}
}

func loadProject(filesystem netfs.FileSystem, path string) (*ProjectConfig, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &ProjectConfig{Path: path}
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// ImportMapPath resolves denoOptions.importMap against the configuration
// file's directory. Reports false when the project names no import map.
func (c *ProjectConfig) ImportMapPath() (string, bool) {
	if c.DenoOptions.ImportMap == "" {
		return "", false
	}

	path := c.DenoOptions.ImportMap
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(c.Path), path)
	}
	return path, true
}
