// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package modelio

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownModel is returned when a container names a model kind that
// no factory has been registered for.
var ErrUnknownModel = errors.New("no factory registered for model kind")

// Factory reconstructs a model of one kind from its recorded config.
// It must accept any config its own constructor can record.
type Factory func(cfg Config) (Model, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a model kind reconstructable by Load. It is typically
// called from an init function in the package defining the model.
//
// Panics on an empty kind or a duplicate registration; both are
// programmer errors that should surface at startup.
func Register(kind string, factory Factory) {
	if kind == "" {
		panic("modelio: Register called with empty model kind")
	}
	if factory == nil {
		panic(fmt.Sprintf("modelio: Register(%q) called with nil factory", kind))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("modelio: Register called twice for model kind %q", kind))
	}
	registry[kind] = factory
}

// FromConfig constructs a new model of the given kind from a recorded
// config by invoking the registered factory. Factory errors propagate
// unchanged.
func FromConfig(kind string, cfg Config) (Model, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, kind)
	}
	return factory(cfg)
}

// Kinds returns the registered model kinds in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
