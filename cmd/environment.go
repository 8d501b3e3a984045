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
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/lopperman/mac-configurator/engine"
	"github.com/lopperman/mac-configurator/handlers"
	"github.com/lopperman/mac-configurator/schema"
	"github.com/lopperman/mac-configurator/state"
	"github.com/lopperman/mac-configurator/system"
	"github.com/lopperman/mac-configurator/types"
)

// environment wires the components every command needs: the profile store,
// the loaded setting definitions, and the engine over the handler registry.
type environment struct {
	dir    string
	store  *state.Store
	defs   []types.SettingDefinition
	index  map[string]types.SettingDefinition
	engine *engine.Engine
	logger hclog.Logger
}

// newRegistry builds the handler registry. Overridden in tests to
// substitute doubles for the real macOS handlers.
var newRegistry = func() *handlers.Registry {
	return handlers.NewDefaultRegistry(handlers.NewExecRunner())
}

// isAdmin reports admin membership. Overridden in tests.
var isAdmin = system.IsAdmin

// newLogger builds the CLI logger: quiet by default so command output stays
// clean, debug when MAC_CONFIGURATOR_DEBUG is set.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if os.Getenv("MAC_CONFIGURATOR_DEBUG") != "" {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "mac-configurator",
		Level:  level,
		Output: os.Stderr,
	})
}

// loadEnvironment resolves the config directory, loads the schema (the
// MAC_CONFIGURATOR_SCHEMA env var selects an alternate document), and builds
// the engine. Schema-entry warnings are logged, never fatal; a missing or
// unparseable schema document is fatal since no settings can be shown.
func loadEnvironment() (*environment, error) {
	logger := newLogger()

	dir, err := state.EnsureConfigDir()
	if err != nil {
		return nil, err
	}

	var defs []types.SettingDefinition
	var warnings []schema.Warning
	if path := os.Getenv("MAC_CONFIGURATOR_SCHEMA"); path != "" {
		defs, warnings, err = schema.LoadFile(path)
	} else {
		defs, warnings, err = schema.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("schema entry dropped", "key", w.Key, "reason", w.Reason)
	}

	return &environment{
		dir:    dir,
		store:  state.NewStore(dir),
		defs:   defs,
		index:  types.IndexDefinitions(defs),
		engine: engine.New(newRegistry(), logger),
		logger: logger,
	}, nil
}
