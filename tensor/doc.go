// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the raw tensor value type carried by kiln
// containers and model parameters.
//
// A RawTensor is a shape, a runtime data type, and a flat little-endian
// byte buffer. It performs no computation: kiln moves tensors between
// models and container files, it does not run kernels on them.
package tensor
