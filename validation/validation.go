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

// Package validation provides value and name validation for Mac Configurator.
// The same rules run before persisting a profile mutation and again inside
// the apply pipeline, so what the CLI accepts and what gets applied never
// diverge.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lopperman/mac-configurator/types"
)

// Sentinel errors for the validation taxonomy. Callers match them with
// errors.Is on the wrapped errors returned below.
var (
	ErrTypeMismatch = errors.New("value type does not match setting type")
	ErrOutOfRange   = errors.New("value out of range")
	ErrNotInEnum    = errors.New("value not in allowed options")
)

// Validate checks a value against a setting definition.
// Boolean and String accept any value of the matching variant; Integer
// enforces the inclusive min/max range; Choice requires a case-sensitive
// exact match against the options; Array and Dictionary are structural
// variant checks only, with no element-level constraints.
func Validate(value types.Value, def types.SettingDefinition) error {
	switch def.Type {
	case types.TypeBoolean:
		if value.Kind() != types.KindBool {
			return mismatch(value, def)
		}
		return nil

	case types.TypeInteger:
		i, ok := value.Int()
		if !ok {
			return mismatch(value, def)
		}
		if i < def.Min || i > def.Max {
			return fmt.Errorf("%w: %d not in [%d, %d] for setting %s",
				ErrOutOfRange, i, def.Min, def.Max, def.Key)
		}
		return nil

	case types.TypeChoice:
		s, ok := value.Str()
		if !ok {
			return mismatch(value, def)
		}
		for _, option := range def.Options {
			if s == option {
				return nil
			}
		}
		return fmt.Errorf("%w: %q must be one of: %s",
			ErrNotInEnum, s, strings.Join(def.Options, ", "))

	case types.TypeString:
		if value.Kind() != types.KindString {
			return mismatch(value, def)
		}
		return nil

	case types.TypeArray:
		if value.Kind() != types.KindStringList {
			return mismatch(value, def)
		}
		return nil

	case types.TypeDictionary:
		if value.Kind() != types.KindStringMap {
			return mismatch(value, def)
		}
		return nil
	}

	return fmt.Errorf("%w: setting %s has unrecognized type %q",
		ErrTypeMismatch, def.Key, def.Type)
}

func mismatch(value types.Value, def types.SettingDefinition) error {
	return fmt.Errorf("%w: setting %s expects %s, got %s",
		ErrTypeMismatch, def.Key, def.ExpectedKind(), value.Kind())
}

// ValidateDefinition checks the structural invariants of a setting
// definition: Integer requires min <= max, Choice requires a non-empty
// option list. The schema loader rejects definitions that fail this.
func ValidateDefinition(def types.SettingDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("setting definition has empty key")
	}
	if def.Handler == "" {
		return fmt.Errorf("setting %s has no handler", def.Key)
	}

	switch def.Type {
	case types.TypeInteger:
		if def.Min > def.Max {
			return fmt.Errorf("setting %s has minimum %d greater than maximum %d",
				def.Key, def.Min, def.Max)
		}
	case types.TypeChoice:
		if len(def.Options) == 0 {
			return fmt.Errorf("setting %s declares a choice with no options", def.Key)
		}
	}
	return nil
}

// profileNameRegex allows letters, digits, spaces, hyphens, and underscores.
var profileNameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ValidateProfileName checks a profile name against the naming rules.
// Uniqueness is enforced separately by the profile store.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q (only letters, digits, spaces, hyphens, and underscores are allowed)", name)
	}
	return nil
}
