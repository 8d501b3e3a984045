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
	"sync"

	"github.com/lopperman/mac-configurator/types"
)

// Classify compares a configured value against a live system value.
// Unconfigured whenever nothing is configured, regardless of the system
// value. A configured value whose live counterpart could not be read is
// OutOfSync: sync cannot be confirmed, and an unreadable value must never
// masquerade as a real one.
func Classify(configured, system *types.Value) types.SyncStatus {
	if configured == nil {
		return types.SyncUnconfigured
	}
	if system != nil && configured.Equal(*system) {
		return types.SyncInSync
	}
	return types.SyncOutOfSync
}

// Evaluate builds the per-setting state for a profile: definition,
// configured value, freshly fetched system value, and sync status, in
// display order. Getter fetches are read-only and independent, so they fan
// out concurrently; values are never cached across evaluations.
func (e *Engine) Evaluate(profile *types.Profile, defs []types.SettingDefinition) []types.SettingState {
	ordered := types.SortForDisplay(defs)
	states := make([]types.SettingState, len(ordered))

	var wg sync.WaitGroup
	for i, def := range ordered {
		wg.Add(1)
		go func(i int, def types.SettingDefinition) {
			defer wg.Done()
			states[i] = e.evaluateOne(profile, def)
		}(i, def)
	}
	wg.Wait()

	return states
}

// EvaluateOne builds the state for a single setting.
func (e *Engine) EvaluateOne(profile *types.Profile, def types.SettingDefinition) types.SettingState {
	return e.evaluateOne(profile, def)
}

func (e *Engine) evaluateOne(profile *types.Profile, def types.SettingDefinition) types.SettingState {
	var configured, system *types.Value

	if v, ok := profile.Get(def.Key); ok {
		configured = &v
	}

	if handler, ok := e.registry.Resolve(def.Handler); ok {
		if v, ok := handler.Get(); ok {
			system = &v
		}
	}

	return types.SettingState{
		Definition: def,
		Configured: configured,
		System:     system,
		Status:     Classify(configured, system),
	}
}
