// Package container implements the .kiln container format: a single
// binary file holding a model's weight tensors together with the string
// attributes (most importantly "model_config") needed to rebuild the
// model at load time.
//
//	Format structure:
//	  [4 bytes:  Magic "KILN"]
//	  [4 bytes:  Version (uint32 LE)]
//	  [4 bytes:  Flags (uint32 LE)]
//	  [8 bytes:  Header Size (uint64 LE)]
//	  [32 bytes: SHA-256 checksum of tensor data (zero if unchecksummed)]
//	  [Header:   JSON metadata]
//	  [Tensor data: raw bytes, 64-byte aligned]
//
// The JSON header carries the model type, creation time, the attribute
// map and per-tensor metadata (name, dtype, shape, offset, size). Tensor
// data is concatenated in the order listed in the header.
package container
