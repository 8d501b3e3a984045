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

// Package engine drives the apply pipeline and the sync evaluator. The
// engine holds no mutable state of its own; the profile and definitions it
// operates on are passed in explicitly.
package engine

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/lopperman/mac-configurator/handlers"
	"github.com/lopperman/mac-configurator/types"
	"github.com/lopperman/mac-configurator/validation"
)

// Engine resolves configured settings to handlers and dispatches them.
type Engine struct {
	registry *handlers.Registry
	logger   hclog.Logger
}

// New creates an engine. A nil logger is replaced with a no-op logger.
func New(registry *handlers.Registry, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{registry: registry, logger: logger}
}

// Apply runs the full pipeline for every configured key of the profile, in
// sorted key order so output is reproducible. One setting's failure never
// blocks subsequent settings: outcomes are collected, not thrown. When the
// context is cancelled mid-batch, the remaining keys are reported Failed
// with the context error instead of being dropped.
func (e *Engine) Apply(ctx context.Context, profile *types.Profile, defs map[string]types.SettingDefinition, isAdmin bool) []types.ApplyOutcome {
	keys := profile.ConfiguredKeys()
	outcomes := make([]types.ApplyOutcome, 0, len(keys))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, types.ApplyOutcome{
				Key:    key,
				Status: types.StatusFailed,
				Detail: fmt.Sprintf("apply cancelled: %v", err),
			})
			continue
		}

		value := profile.Settings[key]
		outcomes = append(outcomes, e.applyKey(key, value, defs, isAdmin))
	}

	summary := types.Summarize(outcomes)
	e.logger.Info("apply finished",
		"profile", profile.Name,
		"applied", summary.Applied,
		"skipped_admin", summary.SkippedAdmin,
		"invalid", summary.Invalid,
		"unknown", summary.Unknown,
		"failed", summary.Failed)

	return outcomes
}

// ApplyOne applies a single configured setting immediately, following the
// identical validate, admin-check, dispatch contract as the batch path.
// It returns an error only when the key is not configured in the profile.
func (e *Engine) ApplyOne(ctx context.Context, profile *types.Profile, key string, defs map[string]types.SettingDefinition, isAdmin bool) (types.ApplyOutcome, error) {
	value, ok := profile.Get(key)
	if !ok {
		return types.ApplyOutcome{}, fmt.Errorf("setting %q is not configured in profile %q", key, profile.Name)
	}
	if err := ctx.Err(); err != nil {
		return types.ApplyOutcome{}, err
	}
	return e.applyKey(key, value, defs, isAdmin), nil
}

// applyKey is the single implementation both Apply and ApplyOne share, so
// batch and immediate application can never diverge.
func (e *Engine) applyKey(key string, value types.Value, defs map[string]types.SettingDefinition, isAdmin bool) types.ApplyOutcome {
	def, exists := defs[key]
	if !exists {
		// Stale key from an older schema version; report, do not dispatch.
		e.logger.Warn("configured key has no setting definition", "key", key)
		return types.ApplyOutcome{Key: key, Status: types.StatusUnknown, Detail: "no setting definition for key"}
	}

	if def.RequiresAdmin && !isAdmin {
		e.logger.Debug("skipping admin-required setting", "key", key)
		return types.ApplyOutcome{Key: key, Status: types.StatusSkippedAdmin}
	}

	// Re-validate even though mutations were validated at save time: the
	// profile file may have been hand-edited or written by an older schema.
	if err := validation.Validate(value, def); err != nil {
		e.logger.Warn("configured value failed validation", "key", key, "error", err)
		return types.ApplyOutcome{Key: key, Status: types.StatusInvalid, Detail: err.Error()}
	}

	handler, exists := e.registry.Resolve(def.Handler)
	if !exists {
		e.logger.Warn("no handler registered", "key", key, "handler", def.Handler)
		return types.ApplyOutcome{Key: key, Status: types.StatusUnknown,
			Detail: fmt.Sprintf("handler %q not registered", def.Handler)}
	}

	if err := handler.Set(value); err != nil {
		e.logger.Error("handler set failed", "key", key, "error", err)
		return types.ApplyOutcome{Key: key, Status: types.StatusFailed, Detail: err.Error()}
	}

	e.logger.Debug("setting applied", "key", key, "value", value.String())
	return types.ApplyOutcome{Key: key, Status: types.StatusApplied}
}

// CheckProfile validates every configured value against the definitions and
// returns all problems found, one error per bad setting.
func CheckProfile(profile *types.Profile, defs map[string]types.SettingDefinition) []error {
	collector := validation.NewCollector()

	for _, key := range profile.ConfiguredKeys() {
		def, exists := defs[key]
		if !exists {
			collector.Check(fmt.Errorf("setting %s: no setting definition for key", key))
			continue
		}
		collector.Checkf(validation.Validate(profile.Settings[key], def), fmt.Sprintf("setting %s", key))
	}

	return collector.Errors()
}
