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
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lopperman/mac-configurator/history"
	"github.com/lopperman/mac-configurator/state"
)

var (
	historyLimit int
	historyGraph bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent apply runs",
	Long: `Shows recent apply runs from the history journal, newest first. With
--graph, plots the success rate of recent runs instead.`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	historyCmd.Flags().BoolVar(&historyGraph, "graph", false, "plot success rate over recent runs")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	err := executeHistory(cmd.OutOrStdout(), filepath.Join(state.GetConfigDir(), history.FileName), historyLimit, historyGraph)
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeHistory(w io.Writer, journalPath string, limit int, graph bool) error {
	journal, err := history.Open(journalPath)
	if err != nil {
		return fmt.Errorf("failed to open history journal: %w", err)
	}
	defer journal.Close()

	if graph {
		return executeHistoryGraph(w, journal, limit)
	}

	runs, err := journal.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No apply runs recorded yet.")
		return nil
	}

	fmt.Fprintln(w, "Recent apply runs:")
	for _, run := range runs {
		fmt.Fprintf(w, "  #%-4d %s  %-24s applied=%d skipped=%d invalid=%d unknown=%d failed=%d\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Profile,
			run.Summary.Applied, run.Summary.SkippedAdmin, run.Summary.Invalid,
			run.Summary.Unknown, run.Summary.Failed)
	}
	return nil
}

func executeHistoryGraph(w io.Writer, journal *history.Journal, limit int) error {
	rates, err := journal.SuccessRates(limit)
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		fmt.Fprintln(w, "No apply runs recorded yet.")
		return nil
	}

	fmt.Fprintln(w, "Apply success rate (%), oldest to newest:")
	fmt.Fprintln(w, asciigraph.Plot(rates,
		asciigraph.Height(8),
		asciigraph.Width(60)))
	return nil
}
