// Copyright (C) 2025 Mac Configurator Authors
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lopperman/mac-configurator/types"
)

const appConfigFile = "configurator.json"

// AppConfig is the tool-level configuration stored alongside the profiles.
type AppConfig struct {
	ActiveProfile string `json:"active_profile"`
	Version       string `json:"version"`
}

// LoadAppConfig reads configurator.json, returning defaults when absent.
func (s *Store) LoadAppConfig() (*AppConfig, error) {
	path := filepath.Join(s.dir, appConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &AppConfig{Version: "1.0"}, nil
	}

	var cfg AppConfig
	if err := readJSONFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	return &cfg, nil
}

// SaveAppConfig persists configurator.json.
func (s *Store) SaveAppConfig(cfg *AppConfig) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.dir, err)
	}
	return writeJSONFile(filepath.Join(s.dir, appConfigFile), cfg)
}

// ActiveProfile resolves the active profile. When no profile is marked
// active, or the marked one no longer exists, the first listed profile
// becomes active and the selection is persisted.
func (s *Store) ActiveProfile() (*types.Profile, error) {
	cfg, err := s.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	if cfg.ActiveProfile != "" && s.Exists(cfg.ActiveProfile) {
		return s.Find(cfg.ActiveProfile)
	}

	profiles, _, err := s.List()
	if err != nil {
		return nil, err
	}

	cfg.ActiveProfile = profiles[0].Name
	if err := s.SaveAppConfig(cfg); err != nil {
		return nil, err
	}
	return profiles[0], nil
}

// SetActive marks an existing profile as the active one.
func (s *Store) SetActive(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("profile %q does not exist", name)
	}

	cfg, err := s.LoadAppConfig()
	if err != nil {
		return err
	}
	cfg.ActiveProfile = name
	return s.SaveAppConfig(cfg)
}
