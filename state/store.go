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
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lopperman/mac-configurator/types"
	"github.com/lopperman/mac-configurator/validation"
)

const (
	// profileSuffix is the file name convention for persisted profiles:
	// <ProfileName>_config.json inside the configuration directory.
	profileSuffix = "_config.json"

	// DefaultProfileName is the profile synthesized when the store is empty.
	DefaultProfileName = "Default"
)

// Store loads and saves named profiles in a configuration directory.
type Store struct {
	dir string
}

// NewStore creates a profile store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's configuration directory.
func (s *Store) Dir() string {
	return s.dir
}

// ProfilePath returns the file path a profile name persists to.
func (s *Store) ProfilePath(name string) string {
	return filepath.Join(s.dir, name+profileSuffix)
}

// Load reads one profile file. Files written before IDs existed get a fresh
// ID and a name derived from the file name, and keep them on the next save.
func (s *Store) Load(path string) (*types.Profile, error) {
	var profile types.Profile
	if err := readJSONFile(path, &profile); err != nil {
		return nil, err
	}

	if profile.Settings == nil {
		profile.Settings = make(map[string]types.Value)
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Name == "" {
		profile.Name = profileNameFromPath(path)
	}

	return &profile, nil
}

// Save persists a profile under its current name. Serialization is
// deterministic, so saving unchanged data produces byte-identical output.
// The directory is created if absent.
func (s *Store) Save(profile *types.Profile) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.dir, err)
	}
	return writeJSONFile(s.ProfilePath(profile.Name), profile)
}

// List enumerates the persisted profiles, sorted by name. A file that fails
// to parse is skipped, never fatal to the listing; its name is returned in
// skipped. An empty store synthesizes and persists one "Default" profile so
// there is always at least one workable profile.
func (s *Store) List() (profiles []*types.Profile, skipped []string, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to read config directory %s: %w", s.dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), profileSuffix) {
			continue
		}
		profile, loadErr := s.Load(filepath.Join(s.dir, e.Name()))
		if loadErr != nil {
			skipped = append(skipped, e.Name())
			continue
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		defaultProfile := types.NewProfile(uuid.NewString(), DefaultProfileName)
		if err := s.Save(defaultProfile); err != nil {
			return nil, skipped, fmt.Errorf("failed to create default profile: %w", err)
		}
		profiles = append(profiles, defaultProfile)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, skipped, nil
}

// Find loads a profile by name.
func (s *Store) Find(name string) (*types.Profile, error) {
	path := s.ProfilePath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile %q does not exist", name)
	}
	return s.Load(path)
}

// Exists reports whether a profile with the exact (case-sensitive) name is
// persisted.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.ProfilePath(name))
	return err == nil
}

// Create validates the name, rejects duplicates, and persists a new empty
// profile. Nothing touches storage when validation fails.
func (s *Store) Create(name string) (*types.Profile, error) {
	if err := validation.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if s.Exists(name) {
		return nil, fmt.Errorf("profile %q already exists", name)
	}

	profile := types.NewProfile(uuid.NewString(), name)
	if err := s.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile's persisted storage. Deleting an already-absent
// profile is not an error. If the deleted profile was active, the active
// selection moves to another profile or is cleared.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.ProfilePath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}

	cfg, err := s.LoadAppConfig()
	if err != nil || cfg.ActiveProfile != name {
		return nil
	}

	cfg.ActiveProfile = ""
	if remaining, _, listErr := s.List(); listErr == nil && len(remaining) > 0 {
		cfg.ActiveProfile = remaining[0].Name
	}
	return s.SaveAppConfig(cfg)
}

// Rename moves a profile to a new name in one operation: the new file is
// written and the old one removed, so a rename can never leave a duplicate
// behind. The profile ID is unchanged.
func (s *Store) Rename(oldName, newName string) (*types.Profile, error) {
	if err := validation.ValidateProfileName(newName); err != nil {
		return nil, err
	}
	if oldName == newName {
		return nil, fmt.Errorf("profile is already named %q", newName)
	}
	if s.Exists(newName) {
		return nil, fmt.Errorf("profile %q already exists", newName)
	}

	profile, err := s.Find(oldName)
	if err != nil {
		return nil, err
	}

	profile.Name = newName
	if err := s.Save(profile); err != nil {
		return nil, err
	}
	if err := os.Remove(s.ProfilePath(oldName)); err != nil {
		return nil, fmt.Errorf("failed to remove old profile file: %w", err)
	}

	cfg, err := s.LoadAppConfig()
	if err == nil && cfg.ActiveProfile == oldName {
		cfg.ActiveProfile = newName
		if err := s.SaveAppConfig(cfg); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func profileNameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), profileSuffix)
}
