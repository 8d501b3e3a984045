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

package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerate tests rendering the auto-apply script
func TestGenerate(t *testing.T) {
	dir, err := os.MkdirTemp("", "mac-configurator-script-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path, err := Generate(dir, "Work Laptop")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "#!/usr/bin/osascript")
	assert.Contains(t, content, "apply --profile 'Work Laptop'")
	assert.Contains(t, content, "with administrator privileges")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "script must be executable")
}

// TestGenerateOverwrites tests that regeneration replaces the old script
func TestGenerateOverwrites(t *testing.T) {
	dir, err := os.MkdirTemp("", "mac-configurator-script-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	_, err = Generate(dir, "First")
	require.NoError(t, err)

	path, err := Generate(dir, "Second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Second")
	assert.NotContains(t, string(data), "First")
}
