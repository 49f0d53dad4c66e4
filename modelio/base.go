// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package modelio

import (
	"errors"
	"fmt"

	"github.com/kiln-ml/kiln/nn"
)

// ErrNoConfig is returned when a model is constructed without a
// recorded config. Loading such a model later would be impossible, so
// construction fails immediately.
var ErrNoConfig = errors.New("model constructed without a recorded config: build one with modelio.RecordArgs")

// Model is a module that can be saved and reconstructed from its
// recorded construction config. Embedding Base satisfies the Config and
// Kind methods.
type Model interface {
	nn.Module

	// Config returns the recorded construction arguments verbatim.
	Config() Config

	// Kind returns the registered model kind used to look up the
	// reconstruction factory at load time.
	Kind() string
}

// Base carries the recorded construction config for a loadable model.
// Concrete models embed it by value:
//
//	type MLP struct {
//	    modelio.Base
//	    net *nn.Sequential
//	}
type Base struct {
	kind   string
	config Config
}

// New creates the Base for a concrete model.
//
// kind is the model's registered factory name. cfg is the config
// recorded by the constructor, normally via RecordArgs. An empty or nil
// config fails with ErrNoConfig before the model becomes usable: a
// model that cannot be reconstructed must not be constructible either.
func New(kind string, cfg Config) (Base, error) {
	if kind == "" {
		return Base{}, errors.New("model kind must not be empty")
	}
	if len(cfg) == 0 {
		return Base{}, fmt.Errorf("%s: %w", kind, ErrNoConfig)
	}
	return Base{kind: kind, config: cfg}, nil
}

// Config returns the recorded construction arguments verbatim.
func (b *Base) Config() Config {
	return b.config
}

// Kind returns the registered model kind.
func (b *Base) Kind() string {
	return b.kind
}
