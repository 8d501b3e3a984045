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

// Profile is a named set of explicitly configured setting values. Absence of
// a key means "use the system default" - never an implicit value. The ID is
// stable across renames; the Name determines the on-disk file name.
type Profile struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Settings map[string]Value `json:"settings"`
}

// NewProfile creates an empty profile with the given identity.
func NewProfile(id, name string) *Profile {
	return &Profile{
		ID:       id,
		Name:     name,
		Settings: make(map[string]Value),
	}
}

// Get returns the configured value for a key, if present.
func (p *Profile) Get(key string) (Value, bool) {
	v, ok := p.Settings[key]
	return v, ok
}

// Set records a configured value for a key.
func (p *Profile) Set(key string, value Value) {
	if p.Settings == nil {
		p.Settings = make(map[string]Value)
	}
	p.Settings[key] = value
}

// Unset removes a configured key. Removing an absent key is a no-op.
func (p *Profile) Unset(key string) {
	delete(p.Settings, key)
}

// ConfiguredKeys returns the configured keys in sorted order, so iteration
// over a profile is deterministic.
func (p *Profile) ConfiguredKeys() []string {
	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy. Mutations on the copy never touch the original.
func (p *Profile) Clone() *Profile {
	clone := NewProfile(p.ID, p.Name)
	for k, v := range p.Settings {
		clone.Settings[k] = v
	}
	return clone
}
