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

// Package system provides host-level inspection for Mac Configurator.
package system

import "os/user"

// adminGroupName is the macOS administrators group (GID 80).
const adminGroupName = "admin"

// IsAdmin reports whether the current user is a member of the admin group.
// Any lookup failure is treated as not-admin; admin-required settings are
// then skipped rather than attempted and failed.
func IsAdmin() bool {
	current, err := user.Current()
	if err != nil {
		return false
	}

	gids, err := current.GroupIds()
	if err != nil {
		return false
	}

	for _, gid := range gids {
		group, err := user.LookupGroupId(gid)
		if err != nil {
			continue
		}
		if group.Name == adminGroupName {
			return true
		}
	}
	return false
}
