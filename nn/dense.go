// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/kiln-ml/kiln/tensor"
)

// Dense implements a fully connected layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Dense struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
}

// NewDense creates a new Dense layer with inFeatures inputs and
// outFeatures outputs.
func NewDense(inFeatures, outFeatures int) *Dense {
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}))

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (d *Dense) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Dense.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != d.inFeatures {
		panic(fmt.Sprintf("Dense.Forward: expected input with %d features, got %d", d.inFeatures, inputShape[1]))
	}

	batch := inputShape[0]
	x := input.AsFloat32()
	w := d.weight.Tensor().AsFloat32()
	b := d.bias.Tensor().AsFloat32()

	out, err := tensor.NewRaw(tensor.Shape{batch, d.outFeatures}, tensor.Float32)
	if err != nil {
		panic(err)
	}
	y := out.AsFloat32()

	for i := 0; i < batch; i++ {
		for j := 0; j < d.outFeatures; j++ {
			sum := b[j]
			row := w[j*d.inFeatures:]
			for k := 0; k < d.inFeatures; k++ {
				sum += x[i*d.inFeatures+k] * row[k]
			}
			y[i*d.outFeatures+j] = sum
		}
	}

	return out
}

// Parameters returns [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weight returns the weight parameter.
func (d *Dense) Weight() *Parameter {
	return d.weight
}

// Bias returns the bias parameter.
func (d *Dense) Bias() *Parameter {
	return d.bias
}

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}

// StateDict returns a map of parameter names to raw tensors.
func (d *Dense) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"weight": d.weight.Tensor(),
		"bias":   d.bias.Tensor(),
	}
}

// LoadStateDict loads parameters from a state dictionary.
func (d *Dense) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	weightRaw, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	if err := d.weight.Tensor().CopyFrom(weightRaw); err != nil {
		return fmt.Errorf("weight: %w", err)
	}

	biasRaw, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}
	if err := d.bias.Tensor().CopyFrom(biasRaw); err != nil {
		return fmt.Errorf("bias: %w", err)
	}

	return nil
}
