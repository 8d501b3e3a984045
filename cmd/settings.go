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
	"strings"

	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List the available settings",
	Long:  `Lists every setting the schema defines, grouped by category.`,
	Run:   runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeSettings(cmd.OutOrStdout(), env.defs)
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeSettings prints the schema's settings grouped by category in the
// fixed category order.
func executeSettings(w io.Writer, defs []types.SettingDefinition) error {
	if len(defs) == 0 {
		fmt.Fprintln(w, "No settings defined by the schema.")
		return nil
	}

	var lastCategory types.Category
	for _, def := range types.SortForDisplay(defs) {
		if def.Category != lastCategory {
			fmt.Fprintf(w, "\n%s:\n", def.Category)
			lastCategory = def.Category
		}

		constraint := describeType(def)
		admin := ""
		if def.RequiresAdmin {
			admin = " [admin]"
		}
		fmt.Fprintf(w, "  %-26s %s (%s)%s\n", def.Key, def.Title, constraint, admin)
	}
	return nil
}

// describeType renders the value constraint for display.
func describeType(def types.SettingDefinition) string {
	switch def.Type {
	case types.TypeInteger:
		return fmt.Sprintf("integer %d-%d", def.Min, def.Max)
	case types.TypeChoice:
		return "one of: " + strings.Join(def.Options, ", ")
	case types.TypeArray:
		return "list of strings"
	case types.TypeDictionary:
		return "name=true|false pairs"
	default:
		return string(def.Type)
	}
}
