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

// Package handlers implements the get/set pairs that read and write live
// macOS system state, and the name-keyed registry the apply pipeline and
// sync evaluator resolve them through. All system access goes through
// subprocess invocation (defaults, osascript, networksetup, killall,
// systemextensionsctl) behind the Runner abstraction.
package handlers

import (
	"os/exec"
	"strings"

	"github.com/lopperman/mac-configurator/types"
)

// Handler is the capability pair for one setting family.
type Handler interface {
	// Get reads the live system value. ok is false on any failure - an
	// unavailable value is always absent, never a sentinel like false or 0.
	Get() (value types.Value, ok bool)

	// Set writes the live system value. The apply pipeline validates the
	// value against the setting definition before calling Set; handlers
	// still reject values of the wrong variant.
	Set(value types.Value) error
}

// Runner abstracts subprocess execution so handler behavior is testable
// without touching the host system.
type Runner interface {
	// Output runs a command and returns its trimmed standard output.
	Output(name string, args ...string) (string, error)

	// Run runs a command and waits for it to finish.
	Run(name string, args ...string) error
}

type execRunner struct{}

// NewExecRunner returns the production Runner backed by os/exec.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
