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

// Package cmd implements the CLI commands for Mac Configurator using cobra.
package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/types"
	"github.com/lopperman/mac-configurator/validation"
)

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Configure a setting in the active profile",
	Long: `Validates a value against the setting's schema definition and stores it in
the active profile. The profile is saved immediately; a failed save is
reported, never silently lost.

Examples:
  mac-configurator set dock_autohide true
  mac-configurator set audio_output_volume 75
  mac-configurator set dock_position left
  mac-configurator set screenshot_location ~/Screenshots
  mac-configurator set login_items "Mail,Slack"
  mac-configurator set background_apps "Mail=true,Slack=false"`,
	Args: cobra.ExactArgs(2),
	Run:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeSet(cmd.OutOrStdout(), env, args[0], args[1])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeSet validates and persists one configured value in the active
// profile. Validation runs before anything touches storage, with the same
// rules the apply pipeline re-checks later.
func executeSet(w io.Writer, env *environment, key, raw string) error {
	def, exists := env.index[key]
	if !exists {
		return fmt.Errorf("unknown setting %q (run 'mac-configurator settings' for the list)", key)
	}

	value, err := parseSettingValue(def, raw)
	if err != nil {
		return err
	}

	if err := validation.Validate(value, def); err != nil {
		return err
	}

	profile, err := env.store.ActiveProfile()
	if err != nil {
		return err
	}

	profile.Set(key, value)
	if err := env.store.Save(profile); err != nil {
		return fmt.Errorf("failed to save profile %q: %w", profile.Name, err)
	}

	fmt.Fprintf(w, "[OK] %s = %s (profile %q)\n", key, value.String(), profile.Name)
	return nil
}

// parseSettingValue converts the CLI argument into a typed Value according
// to the setting definition. Lists are comma-separated; dictionaries are
// comma-separated name=true|false pairs.
func parseSettingValue(def types.SettingDefinition, raw string) (types.Value, error) {
	switch def.Type {
	case types.TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return types.Value{}, fmt.Errorf("setting %s expects true or false, got %q", def.Key, raw)
		}
		return types.BoolValue(b), nil

	case types.TypeInteger:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return types.Value{}, fmt.Errorf("setting %s expects an integer, got %q", def.Key, raw)
		}
		return types.IntValue(i), nil

	case types.TypeChoice, types.TypeString:
		return types.StringValue(raw), nil

	case types.TypeArray:
		if raw == "" {
			return types.StringListValue([]string{}), nil
		}
		parts := strings.Split(raw, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			items = append(items, strings.TrimSpace(p))
		}
		return types.StringListValue(items), nil

	case types.TypeDictionary:
		entries := make(map[string]bool)
		if raw == "" {
			return types.StringMapValue(entries), nil
		}
		for _, pair := range strings.Split(raw, ",") {
			name, flag, found := strings.Cut(strings.TrimSpace(pair), "=")
			if !found {
				return types.Value{}, fmt.Errorf("setting %s expects name=true|false pairs, got %q", def.Key, pair)
			}
			b, err := strconv.ParseBool(flag)
			if err != nil {
				return types.Value{}, fmt.Errorf("setting %s: %q is not a boolean in pair %q", def.Key, flag, pair)
			}
			entries[strings.TrimSpace(name)] = b
		}
		return types.StringMapValue(entries), nil
	}

	return types.Value{}, fmt.Errorf("setting %s has unsupported type %q", def.Key, def.Type)
}
