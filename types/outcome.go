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

// OutcomeStatus classifies the result of applying one setting.
type OutcomeStatus string

const (
	StatusApplied      OutcomeStatus = "applied"
	StatusSkippedAdmin OutcomeStatus = "skipped_admin"
	StatusInvalid      OutcomeStatus = "invalid"
	StatusUnknown      OutcomeStatus = "unknown"
	StatusFailed       OutcomeStatus = "failed"
)

// ApplyOutcome is the per-setting result from the apply pipeline. Detail
// carries the validation or handler error text for Invalid/Failed outcomes.
type ApplyOutcome struct {
	Key    string        `json:"key"`
	Status OutcomeStatus `json:"status"`
	Detail string        `json:"detail,omitempty"`
}

// ApplySummary aggregates outcome counts for user display.
type ApplySummary struct {
	Applied      int `json:"applied"`
	SkippedAdmin int `json:"skipped_admin"`
	Invalid      int `json:"invalid"`
	Unknown      int `json:"unknown"`
	Failed       int `json:"failed"`
}

// Summarize counts outcomes by status.
func Summarize(outcomes []ApplyOutcome) ApplySummary {
	var s ApplySummary
	for _, o := range outcomes {
		switch o.Status {
		case StatusApplied:
			s.Applied++
		case StatusSkippedAdmin:
			s.SkippedAdmin++
		case StatusInvalid:
			s.Invalid++
		case StatusUnknown:
			s.Unknown++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of outcomes summarized.
func (s ApplySummary) Total() int {
	return s.Applied + s.SkippedAdmin + s.Invalid + s.Unknown + s.Failed
}

// HasFailures reports whether any setting failed to apply. Skipped and
// invalid settings are not failures; they were never dispatched.
func (s ApplySummary) HasFailures() bool {
	return s.Failed > 0
}

// SyncStatus is the three-way classification of a configured value against
// the live system value. A boolean cannot distinguish "nothing to compare"
// from "matches", so the status is always one of these three.
type SyncStatus string

const (
	SyncUnconfigured SyncStatus = "unconfigured"
	SyncInSync       SyncStatus = "in_sync"
	SyncOutOfSync    SyncStatus = "out_of_sync"
)

// SettingState pairs a definition with the profile's configured value and a
// freshly fetched system value. Derived per view, never persisted.
type SettingState struct {
	Definition SettingDefinition
	Configured *Value // nil when the profile does not configure the key
	System     *Value // nil when the live read failed or is unavailable
	Status     SyncStatus
}
