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
)

var unsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a setting from the active profile",
	Long: `Removes a configured value from the active profile. The setting returns to
Unconfigured; the current system state is left untouched. Unsetting a key
that is not configured is not an error.`,
	Args: cobra.ExactArgs(1),
	Run:  runUnset,
}

func init() {
	rootCmd.AddCommand(unsetCmd)
}

func runUnset(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeUnset(cmd.OutOrStdout(), env, args[0])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeUnset(w io.Writer, env *environment, key string) error {
	if _, exists := env.index[key]; !exists {
		return fmt.Errorf("unknown setting %q (run 'mac-configurator settings' for the list)", key)
	}

	profile, err := env.store.ActiveProfile()
	if err != nil {
		return err
	}

	if _, configured := profile.Get(key); !configured {
		fmt.Fprintf(w, "[OK] %s was not configured in profile %q\n", key, profile.Name)
		return nil
	}

	profile.Unset(key)
	if err := env.store.Save(profile); err != nil {
		return fmt.Errorf("failed to save profile %q: %w", profile.Name, err)
	}

	fmt.Fprintf(w, "[OK] Removed %s from profile %q\n", key, profile.Name)
	return nil
}
