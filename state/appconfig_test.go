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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadAppConfigDefaults tests defaults when no config file exists
func TestLoadAppConfigDefaults(t *testing.T) {
	store := tempStore(t)

	cfg, err := store.LoadAppConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.ActiveProfile)
	assert.Equal(t, "1.0", cfg.Version)
}

// TestSetActive tests selecting a profile and rejecting missing ones
func TestSetActive(t *testing.T) {
	store := tempStore(t)

	_, err := store.Create("Work")
	require.NoError(t, err)

	require.NoError(t, store.SetActive("Work"))

	cfg, err := store.LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "Work", cfg.ActiveProfile)

	assert.Error(t, store.SetActive("Missing"))
}

// TestActiveProfileFallback tests that the first listed profile becomes
// active when nothing is selected, and the choice is persisted
func TestActiveProfileFallback(t *testing.T) {
	store := tempStore(t)

	_, err := store.Create("Beta")
	require.NoError(t, err)
	_, err = store.Create("Alpha")
	require.NoError(t, err)

	profile, err := store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "Alpha", profile.Name, "fallback is the first profile by name")

	cfg, err := store.LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "Alpha", cfg.ActiveProfile, "fallback selection is persisted")
}

// TestActiveProfileEmptyStore tests that even an empty store resolves a profile
func TestActiveProfileEmptyStore(t *testing.T) {
	store := tempStore(t)

	profile, err := store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, DefaultProfileName, profile.Name)
}

// TestActiveProfileStaleSelection tests recovery when the selected profile is gone
func TestActiveProfileStaleSelection(t *testing.T) {
	store := tempStore(t)

	_, err := store.Create("Work")
	require.NoError(t, err)
	require.NoError(t, store.SaveAppConfig(&AppConfig{ActiveProfile: "Ghost", Version: "1.0"}))

	profile, err := store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "Work", profile.Name)
}
