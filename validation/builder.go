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

package validation

import (
	"errors"
	"fmt"
)

// ErrorCollector accumulates validation errors so a whole profile can be
// checked in one pass instead of failing on the first bad setting.
type ErrorCollector struct {
	errs []error
	ctx  string // optional prefix, e.g. "setting dock_position"
}

// NewCollector creates a new error collector.
func NewCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// WithContext sets a prefix prepended to subsequently collected errors.
func (ec *ErrorCollector) WithContext(ctx string) *ErrorCollector {
	ec.ctx = ctx
	return ec
}

// Check collects a non-nil error with the configured context prefix.
func (ec *ErrorCollector) Check(err error) {
	if err != nil {
		if ec.ctx != "" {
			ec.errs = append(ec.errs, fmt.Errorf("%s: %w", ec.ctx, err))
		} else {
			ec.errs = append(ec.errs, err)
		}
	}
}

// Checkf collects a non-nil error wrapped with an additional message.
func (ec *ErrorCollector) Checkf(err error, msg string) {
	if err != nil {
		if ec.ctx != "" {
			ec.errs = append(ec.errs, fmt.Errorf("%s: %s: %w", ec.ctx, msg, err))
		} else {
			ec.errs = append(ec.errs, fmt.Errorf("%s: %w", msg, err))
		}
	}
}

// Errors returns the individual collected errors in collection order.
func (ec *ErrorCollector) Errors() []error {
	return ec.errs
}

// Error returns all accumulated errors joined, or nil if none were collected.
func (ec *ErrorCollector) Error() error {
	return errors.Join(ec.errs...)
}
