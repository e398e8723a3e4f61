// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"

	"github.com/BurntSushi/toml"
)

// decodeTOML parses a .deadweight.toml document. Keys that match no config
// field are logged and otherwise ignored, like unknown YAML keys.
func decodeTOML(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, err
	}
	for _, key := range md.Undecoded() {
		slog.Warn("ignoring unknown config key", "key", key.String())
	}
	return &cfg, nil
}
