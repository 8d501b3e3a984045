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

package handlers

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps handler names (as declared in the schema) to Handlers.
// It is resolved once at startup; an unknown handler name surfaces as a
// data-driven Unknown outcome in the apply pipeline, never a silent no-op.
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under a name. Duplicate names are rejected.
func (r *Registry) Register(name string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler %q already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// Resolve retrieves a handler by name.
func (r *Registry) Resolve(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.handlers[name]
	return h, exists
}

// List returns all registered handler names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultRegistry builds the registry with every macOS handler wired to
// the given runner.
func NewDefaultRegistry(runner Runner) *Registry {
	r := NewRegistry()

	// Registration of the built-in set cannot collide.
	_ = r.Register("WiFiPowerHandler", &WiFiPowerHandler{Runner: runner})
	_ = r.Register("AudioInputHandler", &AudioInputHandler{Runner: runner})
	_ = r.Register("AudioOutputHandler", &AudioOutputHandler{Runner: runner})
	_ = r.Register("DockAutohideHandler", &DockAutohideHandler{Runner: runner})
	_ = r.Register("DockPositionHandler", &DockPositionHandler{Runner: runner})
	_ = r.Register("FinderHiddenFilesHandler", &FinderHiddenFilesHandler{Runner: runner})
	_ = r.Register("FinderExtensionsHandler", &FinderExtensionsHandler{Runner: runner})
	_ = r.Register("ScreenshotLocationHandler", &ScreenshotLocationHandler{Runner: runner})
	_ = r.Register("LoginItemsHandler", &LoginItemsHandler{Runner: runner})
	_ = r.Register("BackgroundAppsHandler", &BackgroundAppsHandler{Runner: runner})
	_ = r.Register("SystemExtensionsHandler", &SystemExtensionsHandler{Runner: runner})

	return r
}
