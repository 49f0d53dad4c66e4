// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package modelio

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/kiln-ml/kiln/internal/container"
)

// ErrNoModelConfig is returned when a container lacks the model_config
// attribute or the attribute has no "config" entry. The file may hold
// valid weights, but the architecture cannot be rebuilt from it.
var ErrNoModelConfig = errors.New("container has no model_config attribute")

// Load reads a model from a .kiln container: it rebuilds the
// architecture from the recorded config, then restores the weights.
//
// The two phases are deliberately separate. Rebuilding needs only the
// constructor arguments recorded at construction time, never optimizers
// or loss functions, and the container is fully closed between reading
// the config and reading the weights.
//
// With byName true, stored tensors are matched to model parameters by
// name via LoadStateDict, so the restore survives layer reordering.
// With byName false, stored tensors are assigned positionally in the
// container's canonical order, ignoring names.
func Load(path string, byName bool) (Model, error) {
	kind, cfg, err := readModelConfig(path)
	if err != nil {
		return nil, err
	}

	m, err := FromConfig(kind, cfg)
	if err != nil {
		return nil, err
	}

	if err := restoreWeights(path, m, byName); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return m, nil
}

// LoadAs loads a model and asserts its concrete type.
func LoadAs[T Model](path string, byName bool) (T, error) {
	m, err := Load(path, byName)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := m.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("load %s: model kind %q is %T, not %T", path, m.Kind(), m, zero)
	}
	return typed, nil
}

// readModelConfig extracts the model kind and recorded config from the
// container's metadata. The container is closed before returning.
func readModelConfig(path string) (string, Config, error) {
	r, err := container.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer func() {
		_ = r.Close()
	}()

	blob, err := r.Attr(container.ModelConfigAttr)
	if err != nil {
		if errors.Is(err, container.ErrAttrNotFound) {
			return "", nil, fmt.Errorf("load %s: %w", path, ErrNoModelConfig)
		}
		return "", nil, fmt.Errorf("load %s: %w", path, err)
	}

	var env configEnvelope
	if err := json.Unmarshal([]byte(blob), &env); err != nil {
		return "", nil, fmt.Errorf("load %s: invalid model_config attribute: %w", path, err)
	}
	if env.Config == nil {
		return "", nil, fmt.Errorf("load %s: model_config has no \"config\" entry: %w", path, ErrNoModelConfig)
	}

	if env.ClassName == "" {
		return "", nil, fmt.Errorf("load %s: model_config has no \"class_name\" entry", path)
	}

	return env.ClassName, env.Config, nil
}

// restoreWeights populates m's parameters from the container at path.
func restoreWeights(path string, m Model, byName bool) error {
	r, err := container.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	if byName {
		stateDict, err := r.ReadStateDict()
		if err != nil {
			return err
		}
		return m.LoadStateDict(stateDict)
	}

	// Positional restore: i-th stored tensor into the i-th model
	// tensor, both in canonical (sorted-key) order. Names are ignored;
	// shape and dtype are still checked per tensor.
	stored, storedNames, err := r.ReadTensorsInOrder()
	if err != nil {
		return err
	}

	live := m.StateDict()
	if len(live) != len(stored) {
		return fmt.Errorf("tensor count mismatch: container has %d, model has %d", len(stored), len(live))
	}

	keys := make([]string, 0, len(live))
	for key := range live {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		if err := live[key].CopyFrom(stored[i]); err != nil {
			return fmt.Errorf("tensor %d (%s → %s): %w", i, storedNames[i], key, err)
		}
	}

	return nil
}
