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

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lopperman/mac-configurator/handlers"
	"github.com/lopperman/mac-configurator/types"
)

// stubHandler is a scriptable handler for pipeline tests.
type stubHandler struct {
	getValue types.Value
	getOK    bool
	setErr   error
	setCalls int
	lastSet  types.Value
}

func (h *stubHandler) Get() (types.Value, bool) {
	return h.getValue, h.getOK
}

func (h *stubHandler) Set(value types.Value) error {
	h.setCalls++
	h.lastSet = value
	return h.setErr
}

func testDefs() map[string]types.SettingDefinition {
	return types.IndexDefinitions([]types.SettingDefinition{
		{Key: "dock_autohide", Category: types.CategoryDock, Type: types.TypeBoolean, Handler: "dock"},
		{Key: "audio_output_volume", Category: types.CategoryAudio, Type: types.TypeInteger, Min: 0, Max: 100, Handler: "volume"},
		{Key: "wifi_enabled", Category: types.CategoryNetwork, Type: types.TypeBoolean, RequiresAdmin: true, Handler: "wifi"},
	})
}

func testRegistry(t *testing.T, hs map[string]handlers.Handler) *handlers.Registry {
	t.Helper()
	r := handlers.NewRegistry()
	for name, h := range hs {
		require.NoError(t, r.Register(name, h))
	}
	return r
}

// TestApplyPartialFailure tests that one failing setting never blocks the rest
func TestApplyPartialFailure(t *testing.T) {
	dock := &stubHandler{setErr: errors.New("Dock did not restart")}
	volume := &stubHandler{}
	registry := testRegistry(t, map[string]handlers.Handler{"dock": dock, "volume": volume})

	profile := types.NewProfile("id", "Work")
	profile.Set("audio_output_volume", types.IntValue(30))
	profile.Set("dock_autohide", types.BoolValue(true))

	outcomes := New(registry, nil).Apply(context.Background(), profile, testDefs(), true)
	require.Len(t, outcomes, 2)

	// Sorted key order: audio_output_volume before dock_autohide
	assert.Equal(t, "audio_output_volume", outcomes[0].Key)
	assert.Equal(t, types.StatusApplied, outcomes[0].Status)

	assert.Equal(t, "dock_autohide", outcomes[1].Key)
	assert.Equal(t, types.StatusFailed, outcomes[1].Status)
	assert.Contains(t, outcomes[1].Detail, "Dock did not restart")

	assert.Equal(t, 1, volume.setCalls, "the healthy handler still ran")
}

// TestApplyAdminGating tests that admin-required settings are skipped without
// touching the handler when not admin
func TestApplyAdminGating(t *testing.T) {
	wifi := &stubHandler{}
	dock := &stubHandler{}
	registry := testRegistry(t, map[string]handlers.Handler{"wifi": wifi, "dock": dock})

	profile := types.NewProfile("id", "Work")
	profile.Set("wifi_enabled", types.BoolValue(true))
	profile.Set("dock_autohide", types.BoolValue(true))

	engine := New(registry, nil)

	outcomes := engine.Apply(context.Background(), profile, testDefs(), false)
	summary := types.Summarize(outcomes)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.SkippedAdmin)
	assert.Equal(t, 0, wifi.setCalls, "the handler must not run for a skipped setting")
	assert.Equal(t, 1, dock.setCalls)

	// Same profile as admin: the skip disappears
	outcomes = engine.Apply(context.Background(), profile, testDefs(), true)
	summary = types.Summarize(outcomes)
	assert.Equal(t, 2, summary.Applied)
	assert.Equal(t, 1, wifi.setCalls)
}

// TestApplyUnknownKey tests stale keys with no definition
func TestApplyUnknownKey(t *testing.T) {
	registry := testRegistry(t, nil)

	profile := types.NewProfile("id", "Work")
	profile.Set("removed_setting", types.BoolValue(true))

	outcomes := New(registry, nil).Apply(context.Background(), profile, testDefs(), true)
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusUnknown, outcomes[0].Status)
}

// TestApplyInvalidValue tests that stored values are re-validated at apply time
func TestApplyInvalidValue(t *testing.T) {
	volume := &stubHandler{}
	registry := testRegistry(t, map[string]handlers.Handler{"volume": volume})

	// Out-of-range value, as if the profile file was hand-edited
	profile := types.NewProfile("id", "Work")
	profile.Set("audio_output_volume", types.IntValue(500))

	outcomes := New(registry, nil).Apply(context.Background(), profile, testDefs(), true)
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusInvalid, outcomes[0].Status)
	assert.Equal(t, 0, volume.setCalls, "invalid values are never dispatched")
}

// TestApplyUnregisteredHandler tests a definition naming a handler nobody registered
func TestApplyUnregisteredHandler(t *testing.T) {
	registry := testRegistry(t, nil)

	profile := types.NewProfile("id", "Work")
	profile.Set("dock_autohide", types.BoolValue(true))

	outcomes := New(registry, nil).Apply(context.Background(), profile, testDefs(), true)
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusUnknown, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Detail, "dock")
}

// TestApplyCancelledContext tests that remaining keys are reported, not dropped
func TestApplyCancelledContext(t *testing.T) {
	dock := &stubHandler{}
	registry := testRegistry(t, map[string]handlers.Handler{"dock": dock})

	profile := types.NewProfile("id", "Work")
	profile.Set("dock_autohide", types.BoolValue(true))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := New(registry, nil).Apply(ctx, profile, testDefs(), true)
	require.Len(t, outcomes, 1)
	assert.Equal(t, types.StatusFailed, outcomes[0].Status)
	assert.Equal(t, 0, dock.setCalls)
}

// TestApplyOne tests the single-setting path
func TestApplyOne(t *testing.T) {
	dock := &stubHandler{}
	registry := testRegistry(t, map[string]handlers.Handler{"dock": dock})

	profile := types.NewProfile("id", "Work")
	profile.Set("dock_autohide", types.BoolValue(true))

	engine := New(registry, nil)

	outcome, err := engine.ApplyOne(context.Background(), profile, "dock_autohide", testDefs(), true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, outcome.Status)
	assert.True(t, types.BoolValue(true).Equal(dock.lastSet))

	_, err = engine.ApplyOne(context.Background(), profile, "wifi_enabled", testDefs(), true)
	assert.Error(t, err, "unconfigured key is a caller error, not an outcome")
}

// TestCheckProfile tests that all problems are reported, not just the first
func TestCheckProfile(t *testing.T) {
	profile := types.NewProfile("id", "Work")
	profile.Set("audio_output_volume", types.IntValue(500))
	profile.Set("dock_autohide", types.StringValue("yes"))
	profile.Set("removed_setting", types.BoolValue(true))
	profile.Set("wifi_enabled", types.BoolValue(true))

	problems := CheckProfile(profile, testDefs())
	assert.Len(t, problems, 3)
}
