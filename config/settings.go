/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/netivim/denodir"
	netfs "bennypowers.dev/netivim/fs"
)

// SettingsFileName is the base name of the settings file without extension.
const SettingsFileName = "netivim"

// SettingsDir is the directory where settings files are stored.
const SettingsDir = ".config"

// settingsExtensions are the supported settings file extensions in priority order.
var settingsExtensions = []string{".yaml", ".yml", ".json"}

// Settings is the tool-level configuration, distinct from the per-project
// tsconfig: it describes the environment resolution runs in, not the project
// being resolved.
type Settings struct {
	// DenoDir overrides the dependency cache root ($DENO_DIR, ~/.deno).
	DenoDir string `yaml:"denoDir" json:"denoDir"`

	// MaxRedirects bounds sidecar redirect chains.
	MaxRedirects int `yaml:"maxRedirects" json:"maxRedirects"`

	// Files are source globs for batch resolution from the CLI.
	Files []string `yaml:"files" json:"files"`
}

// Default returns settings with default values.
func Default() *Settings {
	return &Settings{
		DenoDir:      "",
		MaxRedirects: denodir.DefaultMaxRedirects,
		Files:        nil,
	}
}

// LoadSettings searches for .config/netivim.{yaml,yml,json} under rootDir.
// Returns nil if no settings file is found (not an error).
func LoadSettings(filesystem netfs.FileSystem, rootDir string) (*Settings, error) {
	for _, ext := range settingsExtensions {
		path := filepath.Join(rootDir, SettingsDir, SettingsFileName+ext)
		if !filesystem.Exists(path) {
			continue
		}

		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, err
		}

		settings := Default()
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(data, settings); err != nil {
				return nil, err
			}
		}

		return settings, nil
	}

	return nil, nil
}

// LoadSettingsOrDefault returns settings or defaults if not found.
func LoadSettingsOrDefault(filesystem netfs.FileSystem, rootDir string) *Settings {
	settings, err := LoadSettings(filesystem, rootDir)
	if err != nil || settings == nil {
		return Default()
	}
	return settings
}
