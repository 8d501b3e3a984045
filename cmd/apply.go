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
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/history"
	"github.com/lopperman/mac-configurator/state"
	"github.com/lopperman/mac-configurator/types"
)

var (
	applyProfile string
	applyKey     string
	applyAsAdmin bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply configured settings to the system",
	Long: `Applies every configured setting of a profile to the running system, in
sorted key order. One setting's failure never stops the rest; a per-setting
outcome report is printed at the end, and the run is recorded in the
history journal.

By default the active profile is applied. Use --profile to apply another
profile without selecting it, or --setting to apply a single key.`,
	Run: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyProfile, "profile", "", "profile to apply (default: the active profile)")
	applyCmd.Flags().StringVar(&applyKey, "setting", "", "apply only this setting key")
	applyCmd.Flags().BoolVar(&applyAsAdmin, "admin", false, "treat this run as admin (used by the generated elevation script)")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment()
	if err == nil {
		err = executeApply(cmd.OutOrStdout(), env, applyProfile, applyKey, applyAsAdmin || isAdmin())
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeApply runs the apply pipeline and prints per-setting outcomes. The
// command exits non-zero only when at least one setting Failed; skips and
// unknowns are reported but do not fail the run.
func executeApply(w io.Writer, env *environment, profileName, key string, admin bool) error {
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

	if !admin {
		fmt.Fprintln(w, "[WARN] Not running as an admin user; admin-required settings will be skipped.")
	}

	startedAt := time.Now()
	ctx := context.Background()

	var outcomes []types.ApplyOutcome
	if key != "" {
		outcome, applyErr := env.engine.ApplyOne(ctx, profile, key, env.index, admin)
		if applyErr != nil {
			return applyErr
		}
		outcomes = []types.ApplyOutcome{outcome}
	} else {
		outcomes = env.engine.Apply(ctx, profile, env.index, admin)
	}

	for _, outcome := range outcomes {
		printOutcome(w, outcome)
	}

	summary := types.Summarize(outcomes)
	fmt.Fprintf(w, "\nApplied %d, skipped %d, invalid %d, unknown %d, failed %d of %d setting(s).\n",
		summary.Applied, summary.SkippedAdmin, summary.Invalid, summary.Unknown, summary.Failed, summary.Total())

	recordRun(env, profile.Name, startedAt, outcomes)

	if summary.HasFailures() {
		exitWithError()
	}
	return nil
}

func printOutcome(w io.Writer, outcome types.ApplyOutcome) {
	switch outcome.Status {
	case types.StatusApplied:
		fmt.Fprintf(w, "[OK] %s applied\n", outcome.Key)
	case types.StatusSkippedAdmin:
		fmt.Fprintf(w, "[WARN] %s skipped: requires admin\n", outcome.Key)
	case types.StatusInvalid:
		fmt.Fprintf(w, "[ERROR] %s invalid: %s\n", outcome.Key, outcome.Detail)
	case types.StatusUnknown:
		fmt.Fprintf(w, "[WARN] %s unknown: %s\n", outcome.Key, outcome.Detail)
	case types.StatusFailed:
		fmt.Fprintf(w, "[ERROR] %s failed: %s\n", outcome.Key, outcome.Detail)
	}
}

// recordRun appends the outcomes to the history journal. Journal problems
// never fail an apply that already ran against the system.
func recordRun(env *environment, profileName string, startedAt time.Time, outcomes []types.ApplyOutcome) {
	journal, err := history.Open(filepath.Join(state.GetConfigDir(), history.FileName))
	if err != nil {
		env.logger.Warn("history journal unavailable", "error", err)
		return
	}
	defer journal.Close()

	if _, err := journal.Record(profileName, startedAt, outcomes); err != nil {
		env.logger.Warn("failed to record apply run", "error", err)
	}
}
