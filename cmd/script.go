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

	"github.com/lopperman/mac-configurator/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate an elevation script for admin-required settings",
	Long: `Writes an AppleScript into the config directory that re-runs apply with
administrator privileges, so admin-required settings stop being skipped.`,
	Run: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeScript(cmd.OutOrStdout(), env)
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeScript(w io.Writer, env *environment) error {
	profile, err := env.store.ActiveProfile()
	if err != nil {
		return err
	}

	path, err := script.Generate(env.dir, profile.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "[OK] Wrote %s\n", path)
	fmt.Fprintln(w, "Run it with:")
	fmt.Fprintf(w, "  osascript %q\n", path)
	fmt.Fprintln(w, "You will be prompted for an administrator password.")
	return nil
}
