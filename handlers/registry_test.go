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

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lopperman/mac-configurator/types"
)

type noopHandler struct{}

func (noopHandler) Get() (types.Value, bool) { return types.Value{}, false }
func (noopHandler) Set(types.Value) error    { return nil }

// TestRegistryRegisterResolve tests registration and lookup
func TestRegistryRegisterResolve(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("dock", noopHandler{}))

	h, ok := r.Resolve("dock")
	assert.True(t, ok)
	assert.NotNil(t, h)

	_, ok = r.Resolve("missing")
	assert.False(t, ok)
}

// TestRegistryDuplicateRejected tests that names are unique
func TestRegistryDuplicateRejected(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("dock", noopHandler{}))
	assert.Error(t, r.Register("dock", noopHandler{}))
}

// TestDefaultRegistryCoversSchema tests that every schema handler is registered
func TestDefaultRegistryCoversSchema(t *testing.T) {
	r := NewDefaultRegistry(newFakeRunner())

	expected := []string{
		"AudioInputHandler",
		"AudioOutputHandler",
		"BackgroundAppsHandler",
		"DockAutohideHandler",
		"DockPositionHandler",
		"FinderExtensionsHandler",
		"FinderHiddenFilesHandler",
		"LoginItemsHandler",
		"ScreenshotLocationHandler",
		"SystemExtensionsHandler",
		"WiFiPowerHandler",
	}
	assert.Equal(t, expected, r.List())
}
