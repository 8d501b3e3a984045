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

// Package script generates the startup AppleScript that re-applies a
// profile non-interactively, suitable for adding to Login Items.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// FileName is the generated script file name.
const FileName = "apply_settings.scpt"

var scriptTemplate = template.Must(template.New("applescript").Parse(
	`#!/usr/bin/osascript
# Mac System Configurator - Auto-apply Script
# This script applies the settings configured in profile "{{.Profile}}"

do shell script "{{.Binary}} apply --profile '{{.Profile}}'" with administrator privileges
`))

type templateData struct {
	Binary  string
	Profile string
}

// Generate writes the auto-apply script for a profile into dir and returns
// the script path. The script invokes the current binary, so a relocated
// install regenerates rather than edits it.
func Generate(dir, profileName string) (string, error) {
	binary, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create script file: %w", err)
	}
	defer f.Close()

	data := templateData{Binary: binary, Profile: profileName}
	if err := scriptTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render script: %w", err)
	}

	return path, nil
}
