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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lopperman/mac-configurator/types"
)

// unmutedInputVolume is the input level restored when unmuting, since macOS
// has no direct mute toggle for input volume.
const unmutedInputVolume = 50

// WiFiPowerHandler controls WiFi power on the primary interface (en0)
// through networksetup. Mutation requires admin privileges.
type WiFiPowerHandler struct {
	Runner Runner
}

func (h *WiFiPowerHandler) Get() (types.Value, bool) {
	// Output format: "Wi-Fi Power (en0): On" or "Wi-Fi Power (en0): Off"
	out, err := h.Runner.Output("networksetup", "-getairportpower", "en0")
	if err != nil {
		return types.Value{}, false
	}
	return types.BoolValue(strings.Contains(out, "On")), true
}

func (h *WiFiPowerHandler) Set(value types.Value) error {
	enabled, ok := value.Bool()
	if !ok {
		return fmt.Errorf("WiFiPowerHandler expects a boolean value")
	}

	power := "off"
	if enabled {
		power = "on"
	}
	if err := h.Runner.Run("networksetup", "-setairportpower", "en0", power); err != nil {
		return fmt.Errorf("failed to set WiFi power %s: %w", power, err)
	}
	return nil
}

// AudioInputHandler mutes and unmutes the audio input via osascript. Input
// volume 0 is reported as muted.
type AudioInputHandler struct {
	Runner Runner
}

func (h *AudioInputHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("osascript", "-e", "input volume of (get volume settings)")
	if err != nil {
		return types.Value{}, false
	}
	volume, err := strconv.Atoi(out)
	if err != nil {
		return types.Value{}, false
	}
	return types.BoolValue(volume == 0), true
}

func (h *AudioInputHandler) Set(value types.Value) error {
	muted, ok := value.Bool()
	if !ok {
		return fmt.Errorf("AudioInputHandler expects a boolean value")
	}

	volume := unmutedInputVolume
	if muted {
		volume = 0
	}
	script := fmt.Sprintf("set volume input volume %d", volume)
	if err := h.Runner.Run("osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to set input volume %d: %w", volume, err)
	}
	return nil
}

// AudioOutputHandler reads and writes the output volume (0-100) via osascript.
type AudioOutputHandler struct {
	Runner Runner
}

func (h *AudioOutputHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("osascript", "-e", "output volume of (get volume settings)")
	if err != nil {
		return types.Value{}, false
	}
	volume, err := strconv.Atoi(out)
	if err != nil {
		return types.Value{}, false
	}
	return types.IntValue(volume), true
}

func (h *AudioOutputHandler) Set(value types.Value) error {
	volume, ok := value.Int()
	if !ok {
		return fmt.Errorf("AudioOutputHandler expects an integer value")
	}

	// Clamp defensively; validation upstream enforces the schema range.
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	script := fmt.Sprintf("set volume output volume %d", volume)
	if err := h.Runner.Run("osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to set output volume %d: %w", volume, err)
	}
	return nil
}

// DockAutohideHandler toggles Dock auto-hide through defaults and restarts
// the Dock so the change takes effect.
type DockAutohideHandler struct {
	Runner Runner
}

func (h *DockAutohideHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("defaults", "read", "com.apple.dock", "autohide")
	if err != nil {
		return types.Value{}, false
	}
	return types.BoolValue(out == "1"), true
}

func (h *DockAutohideHandler) Set(value types.Value) error {
	enabled, ok := value.Bool()
	if !ok {
		return fmt.Errorf("DockAutohideHandler expects a boolean value")
	}

	if err := h.Runner.Run("defaults", "write", "com.apple.dock", "autohide", "-bool", strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("failed to write dock autohide: %w", err)
	}
	if err := h.Runner.Run("killall", "Dock"); err != nil {
		return fmt.Errorf("failed to restart Dock: %w", err)
	}
	return nil
}

// DockPositionHandler moves the Dock between the left, bottom, and right
// screen edges.
type DockPositionHandler struct {
	Runner Runner
}

func (h *DockPositionHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("defaults", "read", "com.apple.dock", "orientation")
	if err != nil {
		// No orientation key set; the live value is unknown, not "bottom".
		return types.Value{}, false
	}
	return types.StringValue(out), true
}

func (h *DockPositionHandler) Set(value types.Value) error {
	position, ok := value.Str()
	if !ok {
		return fmt.Errorf("DockPositionHandler expects a string value")
	}
	if position != "left" && position != "bottom" && position != "right" {
		return fmt.Errorf("invalid dock position %q", position)
	}

	if err := h.Runner.Run("defaults", "write", "com.apple.dock", "orientation", position); err != nil {
		return fmt.Errorf("failed to write dock orientation: %w", err)
	}
	if err := h.Runner.Run("killall", "Dock"); err != nil {
		return fmt.Errorf("failed to restart Dock: %w", err)
	}
	return nil
}

// FinderHiddenFilesHandler toggles showing hidden files in Finder.
type FinderHiddenFilesHandler struct {
	Runner Runner
}

func (h *FinderHiddenFilesHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("defaults", "read", "com.apple.finder", "AppleShowAllFiles")
	if err != nil {
		return types.Value{}, false
	}
	upper := strings.ToUpper(out)
	return types.BoolValue(upper == "TRUE" || upper == "1"), true
}

func (h *FinderHiddenFilesHandler) Set(value types.Value) error {
	enabled, ok := value.Bool()
	if !ok {
		return fmt.Errorf("FinderHiddenFilesHandler expects a boolean value")
	}

	if err := h.Runner.Run("defaults", "write", "com.apple.finder", "AppleShowAllFiles", "-bool", strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("failed to write AppleShowAllFiles: %w", err)
	}
	if err := h.Runner.Run("killall", "Finder"); err != nil {
		return fmt.Errorf("failed to restart Finder: %w", err)
	}
	return nil
}

// FinderExtensionsHandler toggles showing all file name extensions.
type FinderExtensionsHandler struct {
	Runner Runner
}

func (h *FinderExtensionsHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("defaults", "read", "NSGlobalDomain", "AppleShowAllExtensions")
	if err != nil {
		return types.Value{}, false
	}
	return types.BoolValue(out == "1"), true
}

func (h *FinderExtensionsHandler) Set(value types.Value) error {
	enabled, ok := value.Bool()
	if !ok {
		return fmt.Errorf("FinderExtensionsHandler expects a boolean value")
	}

	if err := h.Runner.Run("defaults", "write", "NSGlobalDomain", "AppleShowAllExtensions", "-bool", strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("failed to write AppleShowAllExtensions: %w", err)
	}
	if err := h.Runner.Run("killall", "Finder"); err != nil {
		return fmt.Errorf("failed to restart Finder: %w", err)
	}
	return nil
}

// ScreenshotLocationHandler reads and writes the screenshot save directory.
type ScreenshotLocationHandler struct {
	Runner Runner
}

func (h *ScreenshotLocationHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("defaults", "read", "com.apple.screencapture", "location")
	if err != nil {
		return types.Value{}, false
	}
	return types.StringValue(out), true
}

func (h *ScreenshotLocationHandler) Set(value types.Value) error {
	path, ok := value.Str()
	if !ok {
		return fmt.Errorf("ScreenshotLocationHandler expects a string value")
	}

	// The directory must exist or screencapture falls back silently.
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory %s: %w", path, err)
	}
	if err := h.Runner.Run("defaults", "write", "com.apple.screencapture", "location", path); err != nil {
		return fmt.Errorf("failed to write screenshot location: %w", err)
	}
	if err := h.Runner.Run("killall", "SystemUIServer"); err != nil {
		return fmt.Errorf("failed to restart SystemUIServer: %w", err)
	}
	return nil
}

// LoginItemsHandler manages the list of applications opened at login through
// System Events.
type LoginItemsHandler struct {
	Runner Runner
}

func (h *LoginItemsHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("osascript", "-e",
		`tell application "System Events" to get the name of every login item`)
	if err != nil {
		return types.Value{}, false
	}
	return types.StringListValue(splitAppleScriptList(out)), true
}

func (h *LoginItemsHandler) Set(value types.Value) error {
	items, ok := value.StringList()
	if !ok {
		return fmt.Errorf("LoginItemsHandler expects a list of application names")
	}

	// Replace the whole list so the configured set is authoritative.
	if err := h.Runner.Run("osascript", "-e",
		`tell application "System Events" to delete every login item`); err != nil {
		return fmt.Errorf("failed to clear login items: %w", err)
	}

	for _, name := range items {
		script := fmt.Sprintf(
			`tell application "System Events" to make login item at end with properties {path:"/Applications/%s.app", hidden:false}`,
			name)
		if err := h.Runner.Run("osascript", "-e", script); err != nil {
			return fmt.Errorf("failed to add login item %q: %w", name, err)
		}
	}
	return nil
}

// BackgroundAppsHandler controls which login items run hidden in the
// background, keyed by application name.
type BackgroundAppsHandler struct {
	Runner Runner
}

func (h *BackgroundAppsHandler) Get() (types.Value, bool) {
	names, err := h.Runner.Output("osascript", "-e",
		`tell application "System Events" to get the name of every login item`)
	if err != nil {
		return types.Value{}, false
	}
	hidden, err := h.Runner.Output("osascript", "-e",
		`tell application "System Events" to get the hidden of every login item`)
	if err != nil {
		return types.Value{}, false
	}

	nameList := splitAppleScriptList(names)
	hiddenList := splitAppleScriptList(hidden)
	if len(nameList) != len(hiddenList) {
		return types.Value{}, false
	}

	apps := make(map[string]bool, len(nameList))
	for i, name := range nameList {
		apps[name] = hiddenList[i] == "true"
	}
	return types.StringMapValue(apps), true
}

func (h *BackgroundAppsHandler) Set(value types.Value) error {
	apps, ok := value.StringMap()
	if !ok {
		return fmt.Errorf("BackgroundAppsHandler expects a map of application names to hidden flags")
	}

	for name, hidden := range apps {
		script := fmt.Sprintf(
			`tell application "System Events" to set the hidden of login item %q to %t`,
			name, hidden)
		if err := h.Runner.Run("osascript", "-e", script); err != nil {
			return fmt.Errorf("failed to set hidden state for %q: %w", name, err)
		}
	}
	return nil
}

// SystemExtensionsHandler toggles system extension developer mode. Requires
// admin privileges.
type SystemExtensionsHandler struct {
	Runner Runner
}

func (h *SystemExtensionsHandler) Get() (types.Value, bool) {
	out, err := h.Runner.Output("systemextensionsctl", "developer")
	if err != nil {
		return types.Value{}, false
	}
	return types.BoolValue(strings.Contains(out, "on")), true
}

func (h *SystemExtensionsHandler) Set(value types.Value) error {
	enabled, ok := value.Bool()
	if !ok {
		return fmt.Errorf("SystemExtensionsHandler expects a boolean value")
	}

	mode := "off"
	if enabled {
		mode = "on"
	}
	if err := h.Runner.Run("systemextensionsctl", "developer", mode); err != nil {
		return fmt.Errorf("failed to set developer mode %s: %w", mode, err)
	}
	return nil
}

// splitAppleScriptList parses osascript's comma-separated list output.
// An empty output is an empty list.
func splitAppleScriptList(out string) []string {
	if out == "" {
		return []string{}
	}
	parts := strings.Split(out, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}
