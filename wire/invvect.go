// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/util/chainhash"
)

const (
	// MaxInvPerMsg is the maximum number of inventory vectors that can be in a
	// single bitcoin inv message.
	MaxInvPerMsg = 50000

	// Maximum payload size for an inventory vector.
	maxInvVectPayload = 4 + chainhash.HashSize
)

// InvType represents the allowed types of inventory vectors. See InvVect.
type InvType uint32

// These constants define the various supported inventory vector types.
const (
	InvTypeTx            InvType = 1
	InvTypeBlock         InvType = 2
	InvTypeFilteredBlock InvType = 3
)

// Map of service flags back to their constant names for pretty printing.
var ivStrings = map[InvType]string{
	InvTypeTx:            "MSG_TX",
	InvTypeBlock:         "MSG_BLOCK",
	InvTypeFilteredBlock: "MSG_FILTERED_BLOCK",
}

// String returns the InvType in human-readable form.
func (invtype InvType) String() string {
	if s, ok := ivStrings[invtype]; ok {
		return s
	}

	return fmt.Sprintf("Unknown InvType (%d)", uint32(invtype))
}

// IsKnown returns whether the type is one of the defined inventory types.
func (invtype InvType) IsKnown() bool {
	_, ok := ivStrings[invtype]
	return ok
}

// InvVect defines a bitcoin inventory vector which is used to describe data,
// as specified by the Type field, that a peer wants, has, or does not have to
// another peer.
type InvVect struct {
	Type InvType        // Type of data
	Hash chainhash.Hash // Hash of the data
}

// NewInvVect returns a new InvVect using the provided type and hash.
func NewInvVect(typ InvType, hash *chainhash.Hash) *InvVect {
	return &InvVect{
		Type: typ,
		Hash: *hash,
	}
}

// BtcDecode reads an encoded InvVect from r. Unknown inventory types are
// rejected.
func (iv *InvVect) BtcDecode(r io.Reader, media Media) error {
	err := readElements(r, &iv.Type, &iv.Hash)
	if err != nil {
		return err
	}
	if !iv.Type.IsKnown() {
		str := fmt.Sprintf("unknown inventory type %d", uint32(iv.Type))
		return messageError("InvVect.BtcDecode", ErrMalformedDiscriminant, str)
	}
	return nil
}

// BtcEncode serializes an InvVect to w. Unknown inventory types are rejected
// since they could not be decoded again.
func (iv *InvVect) BtcEncode(w io.Writer, media Media) error {
	if !iv.Type.IsKnown() {
		str := fmt.Sprintf("unknown inventory type %d", uint32(iv.Type))
		return messageError("InvVect.BtcEncode", ErrDomainViolation, str)
	}
	return writeElements(w, iv.Type, &iv.Hash)
}

func readInvVect(r io.Reader, media Media) (*InvVect, error) {
	iv := &InvVect{}
	return iv, iv.BtcDecode(r, media)
}
