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

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lopperman/mac-configurator/handlers"
	"github.com/lopperman/mac-configurator/history"
	"github.com/lopperman/mac-configurator/types"
)

// cmdStubHandler is a scriptable handler for command tests.
type cmdStubHandler struct {
	value types.Value
	ok    bool
	err   error
	sets  int
}

func (h *cmdStubHandler) Get() (types.Value, bool) { return h.value, h.ok }
func (h *cmdStubHandler) Set(v types.Value) error  { h.sets++; return h.err }

// testEnv builds an environment over a temporary config directory with every
// schema handler stubbed out.
func testEnv(t *testing.T, stubs map[string]*cmdStubHandler) *environment {
	t.Helper()

	dir, err := os.MkdirTemp("", "mac-configurator-cmd-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	os.Setenv("MAC_CONFIGURATOR_DIR", dir)
	t.Cleanup(func() { os.Unsetenv("MAC_CONFIGURATOR_DIR") })

	origRegistry := newRegistry
	newRegistry = func() *handlers.Registry {
		r := handlers.NewRegistry()
		for name, h := range stubs {
			require.NoError(t, r.Register(name, h))
		}
		return r
	}
	t.Cleanup(func() { newRegistry = origRegistry })

	env, err := loadEnvironment()
	require.NoError(t, err)
	return env
}

// trapExit replaces exitWithError with a counter for the duration of the test
func trapExit(t *testing.T) *int {
	t.Helper()

	count := 0
	orig := exitWithError
	exitWithError = func() { count++ }
	t.Cleanup(func() { exitWithError = orig })
	return &count
}

// TestExecuteSettings tests the settings listing output
func TestExecuteSettings(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	require.NoError(t, executeSettings(&buf, env.defs))

	out := buf.String()
	assert.Contains(t, out, "Network:")
	assert.Contains(t, out, "wifi_enabled")
	assert.Contains(t, out, "[admin]")
	assert.Contains(t, out, "integer 0-100")
	assert.Contains(t, out, "one of: left, bottom, right")
}

// TestExecuteProfilesLifecycle tests create, use, rename, delete, and listing
func TestExecuteProfilesLifecycle(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	require.NoError(t, executeProfilesCreate(&buf, env.store, "Work"))
	assert.Contains(t, buf.String(), `[OK] Created profile "Work"`)

	assert.Error(t, executeProfilesCreate(&buf, env.store, "Work"), "duplicate rejected")
	assert.Error(t, executeProfilesCreate(&buf, env.store, "bad/name"))

	buf.Reset()
	require.NoError(t, executeProfilesUse(&buf, env.store, "Work"))

	buf.Reset()
	require.NoError(t, executeProfiles(&buf, env.store))
	assert.Contains(t, buf.String(), "* Work")

	buf.Reset()
	require.NoError(t, executeProfilesRename(&buf, env.store, "Work", "Home"))
	assert.True(t, env.store.Exists("Home"))
	assert.False(t, env.store.Exists("Work"))

	buf.Reset()
	require.NoError(t, executeProfilesDelete(&buf, env.store, "Home"))
	require.NoError(t, executeProfilesDelete(&buf, env.store, "Home"), "delete is idempotent")
}

// TestExecuteSetAndGet tests configuring a value and reading it back
func TestExecuteSetAndGet(t *testing.T) {
	dock := &cmdStubHandler{value: types.BoolValue(false), ok: true}
	env := testEnv(t, map[string]*cmdStubHandler{"DockAutohideHandler": dock})

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))
	assert.Contains(t, buf.String(), "[OK] dock_autohide = true")

	// Persisted, not just in memory
	profile, err := env.store.ActiveProfile()
	require.NoError(t, err)
	v, ok := profile.Get("dock_autohide")
	require.True(t, ok)
	b, _ := v.Bool()
	assert.True(t, b)

	buf.Reset()
	require.NoError(t, executeGet(&buf, env, "dock_autohide"))
	out := buf.String()
	assert.Contains(t, out, "Configured: true")
	assert.Contains(t, out, "System:     false")
	assert.Contains(t, out, string(types.SyncOutOfSync))
}

// TestExecuteSetRejections tests validation before persistence
func TestExecuteSetRejections(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	assert.Error(t, executeSet(&buf, env, "no_such_setting", "true"))
	assert.Error(t, executeSet(&buf, env, "audio_output_volume", "150"), "out of range")
	assert.Error(t, executeSet(&buf, env, "audio_output_volume", "loud"), "not an integer")
	assert.Error(t, executeSet(&buf, env, "dock_position", "top"), "not in enum")

	profile, err := env.store.ActiveProfile()
	require.NoError(t, err)
	assert.Empty(t, profile.Settings, "rejected values are never persisted")
}

// TestExecuteUnset tests removing a configured value
func TestExecuteUnset(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))

	buf.Reset()
	require.NoError(t, executeUnset(&buf, env, "dock_autohide"))
	assert.Contains(t, buf.String(), "[OK] Removed dock_autohide")

	profile, err := env.store.ActiveProfile()
	require.NoError(t, err)
	_, ok := profile.Get("dock_autohide")
	assert.False(t, ok)

	buf.Reset()
	require.NoError(t, executeUnset(&buf, env, "dock_autohide"), "unsetting an absent key is fine")
	assert.Contains(t, buf.String(), "was not configured")

	assert.Error(t, executeUnset(&buf, env, "no_such_setting"))
}

// TestExecuteStatus tests the status table and the non-admin banner
func TestExecuteStatus(t *testing.T) {
	dock := &cmdStubHandler{value: types.BoolValue(true), ok: true}
	env := testEnv(t, map[string]*cmdStubHandler{"DockAutohideHandler": dock})

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))

	buf.Reset()
	require.NoError(t, executeStatus(&buf, env, false))
	out := buf.String()
	assert.Contains(t, out, "[WARN] Not running as an admin user")
	assert.Contains(t, out, "Dock:")
	assert.Contains(t, out, "in sync")

	buf.Reset()
	require.NoError(t, executeStatus(&buf, env, true))
	assert.NotContains(t, buf.String(), "[WARN] Not running as an admin user")
}

// TestExecuteApply tests the apply output and partial failure exit
func TestExecuteApply(t *testing.T) {
	dock := &cmdStubHandler{}
	volume := &cmdStubHandler{err: errors.New("osascript unavailable")}
	env := testEnv(t, map[string]*cmdStubHandler{
		"DockAutohideHandler": dock,
		"AudioOutputHandler":  volume,
	})
	exits := trapExit(t)

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))
	require.NoError(t, executeSet(&buf, env, "audio_output_volume", "40"))
	require.NoError(t, executeSet(&buf, env, "wifi_enabled", "true"))

	buf.Reset()
	require.NoError(t, executeApply(&buf, env, "", "", false))
	out := buf.String()

	assert.Contains(t, out, "[OK] dock_autohide applied")
	assert.Contains(t, out, "[ERROR] audio_output_volume failed: osascript unavailable")
	assert.Contains(t, out, "[WARN] wifi_enabled skipped: requires admin")
	assert.Contains(t, out, "Applied 1, skipped 1, invalid 0, unknown 0, failed 1 of 3 setting(s).")
	assert.Equal(t, 1, *exits, "a failed setting exits non-zero")
	assert.Equal(t, 1, dock.sets)

	// The run landed in the journal
	journal, err := history.Open(filepath.Join(env.dir, history.FileName))
	require.NoError(t, err)
	defer journal.Close()
	runs, err := journal.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Summary.Failed)
}

// TestExecuteApplySingleSetting tests the --setting path
func TestExecuteApplySingleSetting(t *testing.T) {
	dock := &cmdStubHandler{}
	env := testEnv(t, map[string]*cmdStubHandler{"DockAutohideHandler": dock})
	exits := trapExit(t)

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))

	buf.Reset()
	require.NoError(t, executeApply(&buf, env, "", "dock_autohide", true))
	assert.Contains(t, buf.String(), "[OK] dock_autohide applied")
	assert.Equal(t, 0, *exits)

	assert.Error(t, executeApply(&buf, env, "", "wifi_enabled", true), "unconfigured key")
	assert.Error(t, executeApply(&buf, env, "NoSuchProfile", "", true))
}

// TestExecuteValidate tests profile validation output
func TestExecuteValidate(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	require.NoError(t, executeSet(&buf, env, "dock_autohide", "true"))

	buf.Reset()
	require.NoError(t, executeValidate(&buf, env, ""))
	assert.Contains(t, buf.String(), "is valid")

	// Hand-edit the profile to an out-of-range value
	profile, err := env.store.ActiveProfile()
	require.NoError(t, err)
	profile.Set("audio_output_volume", types.IntValue(500))
	require.NoError(t, env.store.Save(profile))

	buf.Reset()
	err = executeValidate(&buf, env, "")
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "audio_output_volume")
}

// TestExecuteHistory tests the history listing and empty state
func TestExecuteHistory(t *testing.T) {
	dir, err := os.MkdirTemp("", "mac-configurator-cmd-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	journalPath := filepath.Join(dir, history.FileName)

	var buf bytes.Buffer
	require.NoError(t, executeHistory(&buf, journalPath, 10, false))
	assert.Contains(t, buf.String(), "No apply runs recorded yet.")

	journal, err := history.Open(journalPath)
	require.NoError(t, err)
	_, err = journal.Record("Work", time.Now(), []types.ApplyOutcome{
		{Key: "dock_autohide", Status: types.StatusApplied},
	})
	require.NoError(t, err)
	require.NoError(t, journal.Close())

	buf.Reset()
	require.NoError(t, executeHistory(&buf, journalPath, 10, false))
	out := buf.String()
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "applied=1")

	buf.Reset()
	require.NoError(t, executeHistory(&buf, journalPath, 10, true))
	assert.Contains(t, buf.String(), "Apply success rate")
}

// TestExecuteScript tests elevation script generation
func TestExecuteScript(t *testing.T) {
	env := testEnv(t, nil)

	var buf bytes.Buffer
	require.NoError(t, executeScript(&buf, env))
	assert.Contains(t, buf.String(), "[OK] Wrote")

	data, err := os.ReadFile(filepath.Join(env.dir, "apply_settings.scpt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "with administrator privileges")
}

// TestParseSettingValue tests CLI argument parsing per setting type
func TestParseSettingValue(t *testing.T) {
	boolDef := types.SettingDefinition{Key: "k", Type: types.TypeBoolean}
	v, err := parseSettingValue(boolDef, "true")
	require.NoError(t, err)
	assert.True(t, types.BoolValue(true).Equal(v))
	_, err = parseSettingValue(boolDef, "yes")
	assert.Error(t, err)

	intDef := types.SettingDefinition{Key: "k", Type: types.TypeInteger}
	v, err = parseSettingValue(intDef, "42")
	require.NoError(t, err)
	assert.True(t, types.IntValue(42).Equal(v))
	_, err = parseSettingValue(intDef, "forty")
	assert.Error(t, err)

	arrayDef := types.SettingDefinition{Key: "k", Type: types.TypeArray}
	v, err = parseSettingValue(arrayDef, "Mail, Slack")
	require.NoError(t, err)
	assert.True(t, types.StringListValue([]string{"Mail", "Slack"}).Equal(v))
	v, err = parseSettingValue(arrayDef, "")
	require.NoError(t, err)
	assert.True(t, types.StringListValue([]string{}).Equal(v))

	dictDef := types.SettingDefinition{Key: "k", Type: types.TypeDictionary}
	v, err = parseSettingValue(dictDef, "Mail=true, Slack=false")
	require.NoError(t, err)
	assert.True(t, types.StringMapValue(map[string]bool{"Mail": true, "Slack": false}).Equal(v))
	_, err = parseSettingValue(dictDef, "Mail")
	assert.Error(t, err, "missing =flag")
	_, err = parseSettingValue(dictDef, "Mail=maybe")
	assert.Error(t, err)
}
