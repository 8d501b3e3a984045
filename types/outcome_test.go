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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSummarize tests outcome aggregation by status
func TestSummarize(t *testing.T) {
	outcomes := []ApplyOutcome{
		{Key: "a", Status: StatusApplied},
		{Key: "b", Status: StatusApplied},
		{Key: "c", Status: StatusSkippedAdmin},
		{Key: "d", Status: StatusInvalid, Detail: "out of range"},
		{Key: "e", Status: StatusUnknown, Detail: "no handler"},
		{Key: "f", Status: StatusFailed, Detail: "exit status 1"},
	}

	s := Summarize(outcomes)
	assert.Equal(t, 2, s.Applied)
	assert.Equal(t, 1, s.SkippedAdmin)
	assert.Equal(t, 1, s.Invalid)
	assert.Equal(t, 1, s.Unknown)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 6, s.Total())
}

// TestHasFailures tests that only Failed outcomes count as failures
func TestHasFailures(t *testing.T) {
	s := Summarize([]ApplyOutcome{
		{Key: "a", Status: StatusSkippedAdmin},
		{Key: "b", Status: StatusInvalid},
		{Key: "c", Status: StatusUnknown},
	})
	assert.False(t, s.HasFailures(), "skips, invalids, and unknowns are not failures")

	s = Summarize([]ApplyOutcome{{Key: "a", Status: StatusFailed}})
	assert.True(t, s.HasFailures())
}

// TestSummarizeEmpty tests the empty run
func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total())
	assert.False(t, s.HasFailures())
}
