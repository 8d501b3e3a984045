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

	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/state"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configuration profiles",
	Long:  `Lists all persisted profiles. The active profile is marked with an asterisk.`,
	Run:   runProfiles,
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new empty profile",
	Args:  cobra.ExactArgs(1),
	Run:   runProfilesCreate,
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a profile",
	Long:  `Removes a profile's persisted storage. Deleting an absent profile is not an error.`,
	Args:  cobra.ExactArgs(1),
	Run:   runProfilesDelete,
}

var profilesRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	Run:   runProfilesRename,
}

var profilesUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Select the active profile",
	Args:  cobra.ExactArgs(1),
	Run:   runProfilesUse,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesCreateCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesRenameCmd)
	profilesCmd.AddCommand(profilesUseCmd)
}

func runProfiles(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeProfiles(cmd.OutOrStdout(), env.store)
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeProfiles lists the persisted profiles with the active one marked.
func executeProfiles(w io.Writer, store *state.Store) error {
	profiles, skipped, err := store.List()
	if err != nil {
		return err
	}

	active := ""
	if cfg, cfgErr := store.LoadAppConfig(); cfgErr == nil {
		active = cfg.ActiveProfile
	}

	fmt.Fprintln(w, "Profiles:")
	for _, p := range profiles {
		marker := " "
		if p.Name == active {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-24s %d setting(s)\n", marker, p.Name, len(p.Settings))
	}

	for _, name := range skipped {
		fmt.Fprintf(w, "[WARN] Skipped unreadable profile file: %s\n", name)
	}
	return nil
}

func runProfilesCreate(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeProfilesCreate(cmd.OutOrStdout(), env.store, args[0])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeProfilesCreate(w io.Writer, store *state.Store, name string) error {
	profile, err := store.Create(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[OK] Created profile %q\n", profile.Name)
	return nil
}

func runProfilesDelete(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeProfilesDelete(cmd.OutOrStdout(), env.store, args[0])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeProfilesDelete(w io.Writer, store *state.Store, name string) error {
	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "[OK] Deleted profile %q\n", name)
	return nil
}

func runProfilesRename(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeProfilesRename(cmd.OutOrStdout(), env.store, args[0], args[1])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeProfilesRename(w io.Writer, store *state.Store, oldName, newName string) error {
	profile, err := store.Rename(oldName, newName)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[OK] Renamed profile %q to %q\n", oldName, profile.Name)
	return nil
}

func runProfilesUse(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeProfilesUse(cmd.OutOrStdout(), env.store, args[0])
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeProfilesUse(w io.Writer, store *state.Store, name string) error {
	if err := store.SetActive(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "[OK] Active profile is now %q\n", name)
	return nil
}
