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

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a setting's configured and live values",
	Long: `Shows one setting: the value configured in the active profile, the value
read live from the system, and the resulting sync status.`,
	Args: cobra.ExactArgs(1),
	Run:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeGet(cmd.OutOrStdout(), env, args[0])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeGet(w io.Writer, env *environment, key string) error {
	def, exists := env.index[key]
	if !exists {
		return fmt.Errorf("unknown setting %q (run 'mac-configurator settings' for the list)", key)
	}

	profile, err := env.store.ActiveProfile()
	if err != nil {
		return err
	}

	st := env.engine.EvaluateOne(profile, def)

	fmt.Fprintf(w, "%s (%s)\n", def.Title, def.Key)
	fmt.Fprintf(w, "  Configured: %s\n", displayValue(st.Configured))
	fmt.Fprintf(w, "  System:     %s\n", displayValue(st.System))
	fmt.Fprintf(w, "  Status:     %s\n", st.Status)
	return nil
}

// displayValue renders an optional value, with "-" for absent.
func displayValue(v *types.Value) string {
	if v == nil {
		return "-"
	}
	return v.String()
}
