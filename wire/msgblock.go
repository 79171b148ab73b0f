// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/kaspanet/btcwire/util/chainhash"
)

// defaultTransactionAlloc is the default size used for the backing array
// for transactions. The transaction array will dynamically grow as needed, but
// this figure is intended to provide enough space for the number of
// transactions in the vast majority of blocks without needing to grow the
// backing array multiple times.
const defaultTransactionAlloc = 2048

// MaxBlockPayload is the maximum bytes a block message can be in bytes.
const MaxBlockPayload = 4000000

// maxTxPerBlock is the maximum number of transactions that could
// possibly fit into a block. Version 4 bytes + two empty counts 2 bytes +
// LockTime 4 bytes.
const maxTxPerBlock = (MaxBlockPayload / 10) + 1

// MsgBlock implements the Message interface and represents a bitcoin
// block message. It is used to deliver block and transaction information in
// response to a getdata message (MsgGetData) for a given block hash.
//
// Under a trimmed media the transactions are omitted: the block encodes as
// its header followed by a zero transaction count.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, defaultTransactionAlloc)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// This is part of the Message interface implementation.
// See Deserialize for decoding blocks stored to disk, such as in a database, as
// opposed to decoding blocks from the wire.
func (msg *MsgBlock) BtcDecode(r io.Reader, media Media) error {
	err := msg.Header.BtcDecode(r, media)
	if err != nil {
		return err
	}

	if media.IsTrimmed() {
		_, err := readCount(r, 0, "MsgBlock.BtcDecode", "trimmed block transactions")
		if err != nil {
			return err
		}
		msg.Transactions = []*MsgTx{}
		return nil
	}

	msg.Transactions, err = ReadSequence(r, maxTxPerBlock, "block transactions",
		func(r io.Reader) (*MsgTx, error) {
			tx := &MsgTx{}
			return tx, tx.BtcDecode(r, media)
		})
	return err
}

// Deserialize decodes a block from r into the receiver using the disk
// encoding.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, DiskMedia())
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// This is part of the Message interface implementation.
// See Serialize for encoding blocks to be stored to disk, such as in a
// database, as opposed to encoding blocks for the wire.
func (msg *MsgBlock) BtcEncode(w io.Writer, media Media) error {
	err := msg.Header.BtcEncode(w, media)
	if err != nil {
		return err
	}

	if media.IsTrimmed() {
		return WriteVarInt(w, 0)
	}

	return WriteSequence(w, msg.Transactions, maxTxPerBlock, "block transactions",
		func(w io.Writer, tx *MsgTx) error {
			return tx.BtcEncode(w, media)
		})
}

// Serialize encodes the block to w using the disk encoding.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, DiskMedia())
}

// SerializeSize returns the number of bytes it would take to serialize the
// block.
func (msg *MsgBlock) SerializeSize() int {
	// Block header bytes + Serialized varint size for the number of
	// transactions.
	n := BlockHeaderPayload + VarIntSerializeSize(uint64(len(msg.Transactions)))

	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}

	return n
}

// Command returns the protocol command string for the message. This is part
// of the Message interface implementation.
func (msg *MsgBlock) Command() string {
	return CmdBlock
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the Message interface implementation.
func (msg *MsgBlock) MaxPayloadLength(pver uint32) uint32 {
	return MaxBlockPayload
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// TxHashes returns a slice of hashes of all of transactions in this block.
func (msg *MsgBlock) TxHashes() ([]chainhash.Hash, error) {
	hashList := make([]chainhash.Hash, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		hash, err := tx.TxHash()
		if err != nil {
			return nil, err
		}
		hashList = append(hashList, hash)
	}
	return hashList, nil
}

// NewMsgBlock returns a new bitcoin block message that conforms to the
// Message interface. See MsgBlock for details.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, defaultTransactionAlloc),
	}
}
