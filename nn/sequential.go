// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kiln-ml/kiln/tensor"
)

// Sequential is a container module that chains named child modules
// together. Each child's output becomes the next child's input.
//
// Children are named so that state-dict keys are stable across layer
// reordering: a child registered as "hidden" exports its weight as
// "hidden.weight" regardless of its position in the chain.
//
// Example:
//
//	model := nn.NewSequential().
//	    Add("hidden", nn.NewDense(784, 128)).
//	    Add("act", nn.NewReLU()).
//	    Add("out", nn.NewDense(128, 10))
type Sequential struct {
	names   []string
	modules map[string]Module
}

// NewSequential creates an empty Sequential container.
func NewSequential() *Sequential {
	return &Sequential{modules: make(map[string]Module)}
}

// Add appends a named child module and returns the container for
// chaining. Panics on an empty or duplicate name, or a name containing
// a dot (dots separate path segments in state-dict keys).
func (s *Sequential) Add(name string, m Module) *Sequential {
	if name == "" {
		panic("nn: Sequential child name must not be empty")
	}
	if strings.Contains(name, ".") {
		panic(fmt.Sprintf("nn: Sequential child name %q must not contain '.'", name))
	}
	if _, exists := s.modules[name]; exists {
		panic(fmt.Sprintf("nn: Sequential already has a child named %q", name))
	}
	s.names = append(s.names, name)
	s.modules[name] = m
	return s
}

// Children returns the child names in registration order.
func (s *Sequential) Children() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Child returns the named child module, or nil if absent.
func (s *Sequential) Child(name string) Module {
	return s.modules[name]
}

// Forward applies all children in registration order.
func (s *Sequential) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	output := input
	for _, name := range s.names {
		output = s.modules[name].Forward(output)
	}
	return output
}

// Parameters returns all child parameters in registration order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, name := range s.names {
		params = append(params, s.modules[name].Parameters()...)
	}
	return params
}

// StateDict returns all child parameters keyed by "<child>.<param>".
func (s *Sequential) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for _, name := range s.names {
		for key, raw := range s.modules[name].StateDict() {
			stateDict[name+"."+key] = raw
		}
	}
	return stateDict
}

// LoadStateDict distributes entries to children by name prefix.
//
// Every child receives the sub-dictionary of keys under its prefix;
// errors from a child are wrapped with the child name. A key that
// matches no child is an error: a misnamed tensor must surface as a
// load failure, not silently leave a layer at its fresh init.
func (s *Sequential) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	subs := make(map[string]map[string]*tensor.RawTensor, len(s.names))
	consumed := make(map[string]bool, len(stateDict))
	for _, name := range s.names {
		prefix := name + "."
		sub := make(map[string]*tensor.RawTensor)
		for key, raw := range stateDict {
			if strings.HasPrefix(key, prefix) {
				sub[strings.TrimPrefix(key, prefix)] = raw
				consumed[key] = true
			}
		}
		subs[name] = sub
	}

	// Reject unmatched keys before touching any child, so a malformed
	// dict cannot leave the container half restored.
	var orphans []string
	for key := range stateDict {
		if !consumed[key] {
			orphans = append(orphans, key)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return fmt.Errorf("state dict keys match no child: %s", strings.Join(orphans, ", "))
	}

	for _, name := range s.names {
		if err := s.modules[name].LoadStateDict(subs[name]); err != nil {
			return fmt.Errorf("child %q: %w", name, err)
		}
	}
	return nil
}
