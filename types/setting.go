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

import "sort"

// SettingType identifies the value shape a setting accepts.
type SettingType string

const (
	TypeBoolean    SettingType = "boolean"
	TypeInteger    SettingType = "integer"
	TypeChoice     SettingType = "choice" // string constrained to an enum
	TypeString     SettingType = "string"
	TypeArray      SettingType = "array"
	TypeDictionary SettingType = "dictionary"
)

// Category groups settings for display. The set is fixed by the schema.
type Category string

const (
	CategoryNetwork          Category = "Network"
	CategoryAudio            Category = "Audio"
	CategoryDock             Category = "Dock"
	CategoryFinder           Category = "Finder"
	CategorySystem           Category = "System"
	CategoryStartup          Category = "Startup"
	CategoryBackgroundApps   Category = "BackgroundApps"
	CategorySystemExtensions Category = "SystemExtensions"
)

// CategoryOrder is the fixed display order for categories.
var CategoryOrder = []Category{
	CategoryNetwork,
	CategoryAudio,
	CategoryDock,
	CategoryFinder,
	CategorySystem,
	CategoryStartup,
	CategoryBackgroundApps,
	CategorySystemExtensions,
}

// ParseCategory maps a schema category string to a known Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range CategoryOrder {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// SettingDefinition describes one configurable system setting. Definitions
// are created once by the schema loader and never mutated afterward.
type SettingDefinition struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Category      Category    `json:"category"`
	Type          SettingType `json:"type"`
	Min           int         `json:"min,omitempty"`     // Integer only
	Max           int         `json:"max,omitempty"`     // Integer only
	Options       []string    `json:"options,omitempty"` // Choice only
	RequiresAdmin bool        `json:"requires_admin"`
	Handler       string      `json:"handler"`
}

// ExpectedKind returns the Value variant this definition's type accepts.
func (d SettingDefinition) ExpectedKind() ValueKind {
	switch d.Type {
	case TypeBoolean:
		return KindBool
	case TypeInteger:
		return KindInt
	case TypeChoice, TypeString:
		return KindString
	case TypeArray:
		return KindStringList
	case TypeDictionary:
		return KindStringMap
	}
	return KindString
}

// IndexDefinitions builds a key-indexed lookup map. Later duplicates are
// ignored so the first definition for a key wins.
func IndexDefinitions(defs []SettingDefinition) map[string]SettingDefinition {
	index := make(map[string]SettingDefinition, len(defs))
	for _, def := range defs {
		if _, exists := index[def.Key]; !exists {
			index[def.Key] = def
		}
	}
	return index
}

// SortForDisplay orders definitions by category (fixed category order) and
// then by key. The schema loader guarantees no ordering, so anything that
// renders settings sorts explicitly.
func SortForDisplay(defs []SettingDefinition) []SettingDefinition {
	rank := make(map[Category]int, len(CategoryOrder))
	for i, c := range CategoryOrder {
		rank[c] = i
	}

	sorted := make([]SettingDefinition, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return rank[sorted[i].Category] < rank[sorted[j].Category]
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
