// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"strconv"

	"github.com/kaspanet/btcwire/util/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// SequenceLockTimeDisabled is a flag that if set on a transaction
	// input's sequence number, the sequence number will not be interpreted
	// as a relative locktime.
	SequenceLockTimeDisabled = 1 << 31

	// SequenceLockTimeIsSeconds is a flag that if set on a transaction
	// input's sequence number, the relative locktime has units of 512
	// seconds.
	SequenceLockTimeIsSeconds = 1 << 22

	// SequenceLockTimeMask is a mask that extracts the relative locktime
	// when masked against the transaction input sequence number.
	SequenceLockTimeMask = 0x0000ffff

	// SequenceLockTimeGranularity is the defined time based granularity
	// for seconds-based relative time locks. When converting from seconds
	// to a sequence number, the value is right shifted by this amount,
	// therefore the granularity of relative time locks in 512 or 2^9
	// seconds. Enforced relative lock times are multiples of 512 seconds.
	SequenceLockTimeGranularity = 9

	// NullTxOutValue is the value carried by a null transaction output.
	NullTxOutValue int64 = -1

	// defaultTxInOutAlloc is the default size used for the backing array for
	// transaction inputs and outputs. The array will dynamically grow as needed,
	// but this figure is intended to provide enough space for the number of
	// inputs and outputs in a typical transaction without needing to grow the
	// backing array multiple times.
	defaultTxInOutAlloc = 15
)

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new bitcoin transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// NullOutPoint returns the outpoint referenced by coinbase inputs: the zero
// hash with the maximum index.
func NullOutPoint() OutPoint {
	return OutPoint{Index: MaxPrevOutIndex}
}

// IsNull returns whether the outpoint references no previous output.
func (o OutPoint) IsNull() bool {
	return o.Index == MaxPrevOutIndex && o.Hash == chainhash.Hash{}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits. Although
	// at the time of writing, the number of digits can be no greater than
	// the length of the decimal representation of maxTxOutPerMessage, the
	// maximum message payload may increase in the future and this
	// optimization may go unnoticed, so allocate space for 10 decimal
	// digits, which will fit any uint32.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (o *OutPoint) BtcEncode(w io.Writer, media Media) error {
	return writeElements(w, &o.Hash, o.Index)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (o *OutPoint) BtcDecode(r io.Reader, media Media) error {
	return readElements(r, &o.Hash, &o.Index)
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  Script
	Sequence         uint32
}

// NewTxIn returns a new bitcoin transaction input with the provided
// previous outpoint point and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// IsFinal returns whether the input's sequence number is final.
func (t *TxIn) IsFinal() bool {
	return t.Sequence == MaxTxInSequenceNum
}

// RelativeLockTimeEnabled returns whether the sequence number is to be
// interpreted as a relative lock time.
func (t *TxIn) RelativeLockTimeEnabled() bool {
	return t.Sequence&SequenceLockTimeDisabled == 0
}

// RelativeLockTimeIsSeconds returns whether the relative lock time is
// expressed in units of 512 seconds rather than blocks.
func (t *TxIn) RelativeLockTimeIsSeconds() bool {
	return t.Sequence&SequenceLockTimeIsSeconds != 0
}

// RelativeLockBlocks returns the number of blocks the input is locked for.
// It is 0 when relative lock time is disabled or time based.
func (t *TxIn) RelativeLockBlocks() uint32 {
	if !t.RelativeLockTimeEnabled() || t.RelativeLockTimeIsSeconds() {
		return 0
	}
	return t.Sequence & SequenceLockTimeMask
}

// RelativeLockSeconds returns the number of seconds the input is locked for.
// It is 0 when relative lock time is disabled or block based.
func (t *TxIn) RelativeLockSeconds() uint32 {
	if !t.RelativeLockTimeEnabled() || !t.RelativeLockTimeIsSeconds() {
		return 0
	}
	return (t.Sequence & SequenceLockTimeMask) << SequenceLockTimeGranularity
}

// LockTimeToSequence converts the passed relative locktime to a sequence
// number in accordance to BIP-68.
// See: https://github.com/bitcoin/bips/blob/master/bip-0068.mediawiki
func LockTimeToSequence(isSeconds bool, locktime uint32) uint32 {
	// If we're expressing the relative lock time in blocks, then the
	// corresponding sequence number is simply the desired input age.
	if !isSeconds {
		return locktime & SequenceLockTimeMask
	}

	// Set the 22nd bit which indicates the lock time is in seconds, then
	// shift the locktime over by 9 since the time granularity is in
	// 512-second intervals (2^9). This results in a max lock-time of
	// 33,553,920 seconds, or 1.1 years.
	return SequenceLockTimeIsSeconds |
		(locktime>>SequenceLockTimeGranularity)&SequenceLockTimeMask
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (t *TxIn) BtcEncode(w io.Writer, media Media) error {
	err := t.PreviousOutPoint.BtcEncode(w, media)
	if err != nil {
		return err
	}
	err = t.SignatureScript.BtcEncode(w, media)
	if err != nil {
		return err
	}
	return WriteElement(w, t.Sequence)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (t *TxIn) BtcDecode(r io.Reader, media Media) error {
	err := t.PreviousOutPoint.BtcDecode(r, media)
	if err != nil {
		return err
	}
	err = t.SignatureScript.BtcDecode(r, media)
	if err != nil {
		return err
	}
	return ReadElement(r, &t.Sequence)
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript Script
}

// NewTxOut returns a new bitcoin transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// NullTxOut returns an output with value -1 and an empty script.
func NullTxOut() *TxOut {
	return &TxOut{Value: NullTxOutValue, PkScript: Script{}}
}

// IsNull returns whether the output is the null output.
func (t *TxOut) IsNull() bool {
	return t.Value == NullTxOutValue && len(t.PkScript) == 0
}

// SetNull turns the output into the null output.
func (t *TxOut) SetNull() {
	t.Value = NullTxOutValue
	t.PkScript = Script{}
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (t *TxOut) BtcEncode(w io.Writer, media Media) error {
	err := WriteElement(w, t.Value)
	if err != nil {
		return err
	}
	return t.PkScript.BtcEncode(w, media)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (t *TxOut) BtcDecode(r io.Reader, media Media) error {
	err := ReadElement(r, &t.Value)
	if err != nil {
		return err
	}
	return t.PkScript.BtcDecode(r, media)
}

// MsgTx implements the Message interface and represents a bitcoin tx message.
// It is used to deliver transaction information in response to a getdata
// message (MsgGetData) for a given transaction.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime LockTime
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether or not a transaction is a coinbase. A
// coinbase is a special transaction created by miners that has no inputs.
// This is represented in the block chain by a transaction with a single
// input that has a previous output transaction index set to the maximum
// value along with a zero hash.
func (msg *MsgTx) IsCoinBase() bool {
	// A coin base must only have one transaction input.
	if len(msg.TxIn) != 1 {
		return false
	}

	// The previous output of a coin base must have a max value index and
	// a zero hash.
	return msg.TxIn[0].PreviousOutPoint.IsNull()
}

// TxHash generates the Hash for the transaction. The error is only set when
// the transaction has no encoding, which happens for an out of range lock
// time.
func (msg *MsgTx) TxHash() (chainhash.Hash, error) {
	return HashOf(msg, chainhash.NewDoubleHashWriter())
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	// Deep copy the old TxIn data.
	for _, oldTxIn := range msg.TxIn {
		// Deep copy the old signature script.
		var newScript Script
		if oldTxIn.SignatureScript != nil {
			newScript = make(Script, len(oldTxIn.SignatureScript))
			copy(newScript, oldTxIn.SignatureScript)
		}

		newTx.TxIn = append(newTx.TxIn, &TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
		})
	}

	// Deep copy the old TxOut data.
	for _, oldTxOut := range msg.TxOut {
		var newScript Script
		if oldTxOut.PkScript != nil {
			newScript = make(Script, len(oldTxOut.PkScript))
			copy(newScript, oldTxOut.PkScript)
		}

		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: newScript,
		})
	}

	return &newTx
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// This is part of the Message interface implementation.
// See Deserialize for decoding transactions stored to disk, such as in a
// database, as opposed to decoding transactions from the wire.
func (msg *MsgTx) BtcDecode(r io.Reader, media Media) error {
	err := ReadElement(r, &msg.Version)
	if err != nil {
		return err
	}

	// Inputs and outputs are bounded only by the data actually present;
	// ReadSequence never reserves more than it has decoded.
	msg.TxIn, err = ReadSequence(r, Unbounded, "transaction inputs",
		func(r io.Reader) (*TxIn, error) {
			ti := &TxIn{}
			return ti, ti.BtcDecode(r, media)
		})
	if err != nil {
		return err
	}

	msg.TxOut, err = ReadSequence(r, Unbounded, "transaction outputs",
		func(r io.Reader) (*TxOut, error) {
			to := &TxOut{}
			return to, to.BtcDecode(r, media)
		})
	if err != nil {
		return err
	}

	return msg.LockTime.BtcDecode(r, media)
}

// Deserialize decodes a transaction from r into the receiver using the disk
// encoding.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, DiskMedia())
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// This is part of the Message interface implementation.
// See Serialize for encoding transactions to be stored to disk, such as in a
// database, as opposed to encoding transactions for the wire.
func (msg *MsgTx) BtcEncode(w io.Writer, media Media) error {
	err := WriteElement(w, msg.Version)
	if err != nil {
		return err
	}

	err = WriteSequence(w, msg.TxIn, Unbounded, "transaction inputs",
		func(w io.Writer, ti *TxIn) error {
			return ti.BtcEncode(w, media)
		})
	if err != nil {
		return err
	}

	err = WriteSequence(w, msg.TxOut, Unbounded, "transaction outputs",
		func(w io.Writer, to *TxOut) error {
			return to.BtcEncode(w, media)
		})
	if err != nil {
		return err
	}

	return msg.LockTime.BtcEncode(w, media)
}

// Serialize encodes the transaction to w using the disk encoding.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, DiskMedia())
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		// Outpoint 36 bytes + script + sequence 4 bytes.
		n += chainhash.HashSize + 8 + txIn.SignatureScript.SerializeSize()
	}

	for _, txOut := range msg.TxOut {
		// Value 8 bytes + script.
		n += 8 + txOut.PkScript.SerializeSize()
	}

	return n
}

// Bytes returns the network encoding of the transaction.
func (msg *MsgTx) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	err := msg.BtcEncode(buf, NetworkMedia(ProtocolVersion))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Command returns the protocol command string for the message. This is part
// of the Message interface implementation.
func (msg *MsgTx) Command() string {
	return CmdTx
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the Message interface implementation.
func (msg *MsgTx) MaxPayloadLength(pver uint32) uint32 {
	return MaxBlockPayload
}

// NewMsgTx returns a new bitcoin tx message that conforms to the Message
// interface. The return instance has a default version of TxVersion and there
// are no transaction inputs or outputs. Also, the lock time is set to zero
// to indicate the transaction is valid immediately as opposed to some time in
// future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}
