// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/kiln-ml/kiln/tensor"

// Parameter represents a named tensor owned by a module, typically a
// weight matrix or bias vector.
type Parameter struct {
	name string
	raw  *tensor.RawTensor
}

// NewParameter creates a new parameter.
//
// The name is local to the owning module (e.g., "weight", "bias");
// containers qualify it with the module path when exporting.
func NewParameter(name string, raw *tensor.RawTensor) *Parameter {
	return &Parameter{name: name, raw: raw}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.raw
}
