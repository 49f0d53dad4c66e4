// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn defines the module contract kiln saves and loads: a Module
// exposes its trainable parameters in a deterministic order and can
// export and import them as a state dictionary.
//
// The package ships two concrete modules, Dense and Sequential, which
// are enough to build the multi-layer perceptrons used throughout the
// tests and examples. Richer architectures implement the same interface
// downstream.
package nn
