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

	"github.com/lopperman/mac-configurator/engine"
	"github.com/lopperman/mac-configurator/types"
)

var validateProfile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a profile's configured values against the schema",
	Long: `Validates every configured value of a profile against its setting
definition and reports all problems found, not just the first. Useful after
hand-editing a profile file or upgrading to a newer schema.`,
	Run: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateProfile, "profile", "", "profile to validate (default: the active profile)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeValidate(cmd.OutOrStdout(), env, validateProfile)
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeValidate(w io.Writer, env *environment, profileName string) error {
	var profile *types.Profile
	var err error
	if profileName != "" {
		profile, err = env.store.Find(profileName)
	} else {
		profile, err = env.store.ActiveProfile()
	}
	if err != nil {
		return err
	}

	problems := engine.CheckProfile(profile, env.index)
	if len(problems) == 0 {
		fmt.Fprintf(w, "[OK] Profile %q is valid (%d configured setting(s))\n",
			profile.Name, len(profile.Settings))
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(w, "[ERROR] %v\n", p)
	}
	return fmt.Errorf("profile %q has %d invalid setting(s)", profile.Name, len(problems))
}
