// Copyright (c) 2015 The Decred developers
// Copyright (c) 2016-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"
	"hash"
	"io"

	"golang.org/x/crypto/ripemd160"
)

// Hash160Size is the size of a ripemd160(sha256(x)) digest.
const Hash160Size = ripemd160.Size

// Digest is a hash function fed incrementally through io.Writer, typically
// straight from an encoder, and read once with Finalize.
type Digest interface {
	io.Writer
	Finalize() Hash
}

// DoubleHashWriter is used to incrementally double hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
type DoubleHashWriter struct {
	inner hash.Hash
}

// NewDoubleHashWriter Returns a new DoubleHashWriter
func NewDoubleHashWriter() *DoubleHashWriter {
	return &DoubleHashWriter{sha256.New()}
}

// Write will always return (len(p), nil)
func (h *DoubleHashWriter) Write(p []byte) (n int, err error) {
	return h.inner.Write(p)
}

// Finalize returns the resulting double hash
func (h *DoubleHashWriter) Finalize() Hash {
	firstHashInTheSum := h.inner.Sum(nil)
	return sha256.Sum256(firstHashInTheSum)
}

// Hash160 calculates ripemd160(sha256(b)).
func Hash160(b []byte) [Hash160Size]byte {
	first := sha256.Sum256(b)
	ripemd := ripemd160.New()
	_, _ = ripemd.Write(first[:])
	var res [Hash160Size]byte
	ripemd.Sum(res[:0])
	return res
}
