// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/kiln-ml/kiln/tensor"

// Module is the base interface for all neural network components.
//
// Every module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters, in a deterministic order
//   - StateDict: Export parameters for serialization
//   - LoadStateDict: Import parameters from serialization
//
// The order returned by Parameters matters: it is the order used when a
// container's weights are restored positionally rather than by name.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Dense expects [batch_size, in_features].
	Forward(input *tensor.RawTensor) *tensor.RawTensor

	// Parameters returns all trainable parameters of this module in a
	// deterministic order, including nested module parameters.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter

	// StateDict returns a map of parameter names to raw tensors.
	//
	// Nested modules qualify names with their path (e.g., "hidden.weight").
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict loads parameters from a state dictionary.
	//
	// Returns an error if a required parameter is missing or has the
	// wrong shape or dtype.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}
