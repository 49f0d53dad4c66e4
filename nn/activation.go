// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/kiln-ml/kiln/tensor"

// ReLU applies the rectified linear unit element-wise: max(0, x).
//
// ReLU has no trainable parameters, so it contributes nothing to state
// dictionaries and is transparent to save/load.
type ReLU struct{}

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies max(0, x) element-wise.
func (r *ReLU) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	out := input.Clone()
	data := out.AsFloat32()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return out
}

// Parameters returns an empty slice; ReLU has no trainable parameters.
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// StateDict returns an empty map.
func (r *ReLU) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op for ReLU.
func (r *ReLU) LoadStateDict(_ map[string]*tensor.RawTensor) error {
	return nil
}
