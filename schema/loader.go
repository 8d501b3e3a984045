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

// Package schema parses the declarative settings schema document into typed
// setting definitions. The parse is pure: no processes are spawned and no
// state is mutated. Loaded definitions are passed explicitly to consumers;
// there is no package-level schema singleton.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lopperman/mac-configurator/state"
	"github.com/lopperman/mac-configurator/types"
	"github.com/lopperman/mac-configurator/validation"
)

//go:embed settings.json
var defaultSchema []byte

// Warning records a schema entry that was dropped and why. A malformed
// entry never fails the whole load; it is skipped and reported.
type Warning struct {
	Key    string
	Reason string
}

// document mirrors the schema file shape: setting objects nested under
// properties.settings.properties.<key>.
type document struct {
	Properties struct {
		Settings struct {
			Properties map[string]entry `json:"properties"`
		} `json:"settings"`
	} `json:"properties"`
}

type entry struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Handler       string   `json:"handler"`
	Minimum       *int     `json:"minimum"`
	Maximum       *int     `json:"maximum"`
	Enum          []string `json:"enum"`
	RequiresAdmin bool     `json:"requires_admin"`
}

// Integer settings without explicit bounds fall back to 0..100, matching the
// ranges the handlers accept.
const (
	defaultMinimum = 0
	defaultMaximum = 100
)

// LoadDefault parses the schema document embedded in the binary.
func LoadDefault() ([]types.SettingDefinition, []Warning, error) {
	return Parse(defaultSchema)
}

// LoadFile parses a schema document from an alternate path.
func LoadFile(path string) ([]types.SettingDefinition, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a schema document and converts each setting entry into a
// SettingDefinition. A document that is not well-formed JSON, or that lacks
// the settings path entirely, is an error - distinct from a well-formed
// document where individual entries are dropped with warnings. Definitions
// are returned in no guaranteed order.
func Parse(data []byte) ([]types.SettingDefinition, []Warning, error) {
	var doc document
	if err := state.UnmarshalJSON(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse schema document: %w", err)
	}

	if doc.Properties.Settings.Properties == nil {
		return nil, nil, fmt.Errorf("schema document has no properties.settings.properties object")
	}

	var defs []types.SettingDefinition
	var warnings []Warning

	for key, e := range doc.Properties.Settings.Properties {
		def, err := convertEntry(key, e)
		if err != nil {
			warnings = append(warnings, Warning{Key: key, Reason: err.Error()})
			continue
		}
		defs = append(defs, def)
	}

	return defs, warnings, nil
}

// convertEntry maps one schema entry to a definition, rejecting entries with
// missing required fields, unknown categories, or unknown types.
func convertEntry(key string, e entry) (types.SettingDefinition, error) {
	var def types.SettingDefinition

	if e.Type == "" || e.Title == "" || e.Description == "" || e.Category == "" || e.Handler == "" {
		return def, fmt.Errorf("missing required field (type, title, description, category, and handler are required)")
	}

	category, ok := types.ParseCategory(e.Category)
	if !ok {
		return def, fmt.Errorf("unrecognized category %q", e.Category)
	}

	def = types.SettingDefinition{
		Key:           key,
		Title:         e.Title,
		Description:   e.Description,
		Category:      category,
		RequiresAdmin: e.RequiresAdmin,
		Handler:       e.Handler,
	}

	switch e.Type {
	case "boolean":
		def.Type = types.TypeBoolean
	case "integer":
		def.Type = types.TypeInteger
		def.Min = defaultMinimum
		def.Max = defaultMaximum
		if e.Minimum != nil {
			def.Min = *e.Minimum
		}
		if e.Maximum != nil {
			def.Max = *e.Maximum
		}
	case "string":
		if len(e.Enum) > 0 {
			def.Type = types.TypeChoice
			def.Options = append([]string(nil), e.Enum...)
		} else {
			def.Type = types.TypeString
		}
	case "array":
		def.Type = types.TypeArray
	case "object":
		def.Type = types.TypeDictionary
	default:
		return types.SettingDefinition{}, fmt.Errorf("unrecognized type %q", e.Type)
	}

	if err := validation.ValidateDefinition(def); err != nil {
		return types.SettingDefinition{}, err
	}

	return def, nil
}
