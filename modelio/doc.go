// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package modelio saves and loads models without manual architecture
// re-specification.
//
// A model records the arguments it was constructed with as a Config and
// embeds modelio.Base:
//
//	type MLP struct {
//	    modelio.Base
//	    net *nn.Sequential
//	}
//
//	func NewMLP(in, out int, opts ...modelio.Option) (*MLP, error) {
//	    cfg := modelio.RecordArgs(
//	        modelio.Config{"hidden": 64},
//	        modelio.Config{"in": in, "out": out},
//	        opts...,
//	    )
//	    base, err := modelio.New("mlp", cfg)
//	    ...
//	}
//
// Save embeds the recorded config in the weight container; Load reads
// the config back, rebuilds the architecture through the registered
// factory, and only then restores the weights. The caller never has to
// re-supply constructor arguments, optimizers or loss functions to load
// a trained model.
package modelio
