// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global deadweight configuration.
// It uses $XDG_CONFIG_HOME/deadweight if set, otherwise ~/.config/deadweight.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deadweight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deadweight")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadLayered loads the global config and the project config at
// projectPath and combines them, project values winning.
func LoadLayered(projectPath string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}
	project, err := Load(projectPath)
	if err != nil {
		return nil, err
	}
	return Overlay(global, project), nil
}
