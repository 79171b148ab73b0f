// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MsgMerkleBlock implements the Message interface and represents a bitcoin
// merkleblock message. It carries a block header and the partial merkle tree
// proving which of the block's transactions matched a filter.
type MsgMerkleBlock struct {
	Header BlockHeader
	Tree   PartialMerkleTree
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgMerkleBlock) BtcDecode(r io.Reader, media Media) error {
	err := msg.Header.BtcDecode(r, media)
	if err != nil {
		return err
	}
	return msg.Tree.BtcDecode(r, media)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgMerkleBlock) BtcEncode(w io.Writer, media Media) error {
	err := msg.Header.BtcEncode(w, media)
	if err != nil {
		return err
	}
	return msg.Tree.BtcEncode(w, media)
}

// Command returns the protocol command string for the message. This is part
// of the Message interface implementation.
func (msg *MsgMerkleBlock) Command() string {
	return CmdMerkleBlock
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the Message interface implementation.
func (msg *MsgMerkleBlock) MaxPayloadLength(pver uint32) uint32 {
	return MaxBlockPayload
}

// NewMsgMerkleBlock returns a new bitcoin merkleblock message that conforms to
// the Message interface. See MsgMerkleBlock for details.
func NewMsgMerkleBlock(bh *BlockHeader) *MsgMerkleBlock {
	return &MsgMerkleBlock{
		Header: *bh,
	}
}
