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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show every setting's sync status",
	Long: `Evaluates each setting in the schema against the active profile and the
live system, grouped by category. System values are fetched fresh on every
invocation.`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeStatus(cmd.OutOrStdout(), env, isAdmin())
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeStatus(w io.Writer, env *environment, admin bool) error {
	profile, err := env.store.ActiveProfile()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Profile: %s\n", profile.Name)
	if !admin {
		fmt.Fprintln(w, "[WARN] Not running as an admin user; admin-required settings will be skipped on apply.")
	}

	states := env.engine.Evaluate(profile, env.defs)

	var lastCategory types.Category
	for _, st := range states {
		if st.Definition.Category != lastCategory {
			fmt.Fprintf(w, "\n%s:\n", st.Definition.Category)
			lastCategory = st.Definition.Category
		}
		fmt.Fprintf(w, "  %-26s %-12s configured=%s system=%s\n",
			st.Definition.Key, statusGlyph(st.Status), displayValue(st.Configured), displayValue(st.System))
	}
	return nil
}

// statusGlyph renders a sync status for the table.
func statusGlyph(status types.SyncStatus) string {
	switch status {
	case types.SyncInSync:
		return "in sync"
	case types.SyncOutOfSync:
		return "OUT OF SYNC"
	default:
		return "-"
	}
}
