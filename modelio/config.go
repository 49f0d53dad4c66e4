// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package modelio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Config is the recorded set of constructor arguments for a model,
// keyed by argument name. It is written once at construction time and
// treated as immutable afterwards.
//
// Configs survive a JSON round-trip through the container file, which
// turns every number into a float64. The typed getters absorb that, so
// factories read arguments the same way whether the config is fresh or
// reloaded.
type Config map[string]any

// Option sets a named argument on a config under construction. Options
// play the role of keyword arguments: they are applied last and
// override defaults and required arguments of the same name.
type Option func(Config)

// Arg returns an Option recording name→value.
// Panics if name is empty; an unnamed argument can never be replayed.
func Arg(name string, value any) Option {
	if name == "" {
		panic("modelio: argument name must not be empty")
	}
	return func(c Config) {
		c[name] = value
	}
}

// RecordArgs builds the construction config for a model the way a
// constructor resolves its arguments: defaults first, then required
// arguments, then options, later entries overriding earlier ones for
// the same name. The result equals the effective argument set the
// constructor actually used, which is what makes later reconstruction
// exact.
//
// Every recorded entry is named by construction, so there is no
// variadic ambiguity: an option list of any length contributes exactly
// the named entries its options write.
//
// Panics if defaults or required contain an empty argument name. That
// is a programmer error in the constructor itself and fails fast on the
// first call, not at save time.
func RecordArgs(defaults, required Config, opts ...Option) Config {
	cfg := make(Config, len(defaults)+len(required))
	for name, value := range defaults {
		if name == "" {
			panic("modelio: default argument name must not be empty")
		}
		cfg[name] = value
	}
	for name, value := range required {
		if name == "" {
			panic("modelio: required argument name must not be empty")
		}
		cfg[name] = value
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Clone returns a shallow copy of the config.
func (c Config) Clone() Config {
	clone := make(Config, len(c))
	for name, value := range c {
		clone[name] = value
	}
	return clone
}

// Has reports whether the named argument is present.
func (c Config) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Int returns the named argument as an int. JSON round-trips store
// numbers as float64; both are accepted.
func (c Config) Int(name string) (int, error) {
	value, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("config: missing argument %q", name)
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// Fractional values cannot come from an integer argument that
		// survived a JSON round-trip; treat them as corruption.
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("config: argument %q is %v, not an integer", name, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("config: argument %q: %w", name, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("config: argument %q is %T, not an integer", name, value)
	}
}

// Float returns the named argument as a float64.
func (c Config) Float(name string) (float64, error) {
	value, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("config: missing argument %q", name)
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("config: argument %q is %T, not a number", name, value)
	}
}

// String returns the named argument as a string.
func (c Config) String(name string) (string, error) {
	value, ok := c[name]
	if !ok {
		return "", fmt.Errorf("config: missing argument %q", name)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("config: argument %q is %T, not a string", name, value)
	}
	return s, nil
}

// Bool returns the named argument as a bool.
func (c Config) Bool(name string) (bool, error) {
	value, ok := c[name]
	if !ok {
		return false, fmt.Errorf("config: missing argument %q", name)
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("config: argument %q is %T, not a bool", name, value)
	}
	return b, nil
}

// IntSlice returns the named argument as []int. Accepts []int directly
// or the []any of float64 a JSON round-trip produces.
func (c Config) IntSlice(name string) ([]int, error) {
	value, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("config: missing argument %q", name)
	}
	switch v := value.(type) {
	case []int:
		out := make([]int, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]int, len(v))
		for i, elem := range v {
			f, ok := elem.(float64)
			if !ok {
				return nil, fmt.Errorf("config: argument %q element %d is %T, not a number", name, i, elem)
			}
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("config: argument %q element %d is %v, not an integer", name, i, f)
			}
			out[i] = int(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("config: argument %q is %T, not an int slice", name, value)
	}
}

// Equal reports whether two configs record the same arguments.
//
// Comparison goes through the JSON encoding, which both sorts keys and
// unifies numeric representations, so a config compares equal to itself
// after a save/load round-trip even though ints come back as float64.
func (c Config) Equal(other Config) bool {
	a, errA := json.Marshal(c)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}
