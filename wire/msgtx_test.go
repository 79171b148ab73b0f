// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/pkg/errors"
)

// twoInputTxHex is a mainnet transaction spending two P2PKH outputs into two
// P2PKH outputs.
const twoInputTxHex = "0100000002d8c8df6a6fdd2addaf589a83d860f18b44872d13ee6ec3526b2b470d42a96d4d000000008b483045022100b31557e47191936cb14e013fb421b1860b5e4fd5d2bc5ec1938f4ffb1651dc8902202661c2920771fd29dd91cd4100cefb971269836da4914d970d333861819265ba014104c54f8ea9507f31a05ae325616e3024bd9878cb0a5dff780444002d731577be4e2e69c663ff2da922902a4454841aa1754c1b6292ad7d317150308d8cce0ad7abffffffff2ab3fa4f68a512266134085d3260b94d3b6cfd351450cff021c045a69ba120b2000000008b4830450220230110bc99ef311f1f8bda9d0d968bfe5dfa4af171adbef9ef71678d658823bf022100f956d4fcfa0995a578d84e7e913f9bb1cf5b5be1440bcede07bce9cd5b38115d014104c6ec27cffce0823c3fecb162dbd576c88dd7cda0b7b32b0961188a392b488c94ca174d833ee6a9b71c0996620ae71e799fc7c77901db147fa7d97732e49c8226ffffffff02c0175302000000001976a914a3d89c53bb956f08917b44d113c6b2bcbe0c29b788acc01c3d09000000001976a91408338e1d5e26db3fce21b011795b1c3c8a5a5d0788ac00000000"

const twoInputTxID = "9021b49d445c719106c95d561b9c3fac7bcb3650db67684a9226cd7fa1e1c1a0"

func mustDecodeHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	return b
}

func mustHashFromStr(t *testing.T, s string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		t.Fatalf("NewHashFromStr: %v", err)
	}
	return hash
}

// buildTwoInputTx constructs the transaction encoded by twoInputTxHex.
func buildTwoInputTx(t *testing.T) *MsgTx {
	tx := NewMsgTx(TxVersion)
	tx.AddTxIn(NewTxIn(
		NewOutPoint(mustHashFromStr(t, "4d6da9420d472b6b52c36eee132d87448bf160d8839a58afdd2add6f6adfc8d8"), 0),
		mustDecodeHex(t, "483045022100b31557e47191936cb14e013fb421b1860b5e4fd5d2bc5ec1938f4ffb1651dc8902202661c2920771fd29dd91cd4100cefb971269836da4914d970d333861819265ba014104c54f8ea9507f31a05ae325616e3024bd9878cb0a5dff780444002d731577be4e2e69c663ff2da922902a4454841aa1754c1b6292ad7d317150308d8cce0ad7ab")))
	tx.AddTxIn(NewTxIn(
		NewOutPoint(mustHashFromStr(t, "b220a19ba645c021f0cf501435fd6c3b4db960325d0834612612a5684ffab32a"), 0),
		mustDecodeHex(t, "4830450220230110bc99ef311f1f8bda9d0d968bfe5dfa4af171adbef9ef71678d658823bf022100f956d4fcfa0995a578d84e7e913f9bb1cf5b5be1440bcede07bce9cd5b38115d014104c6ec27cffce0823c3fecb162dbd576c88dd7cda0b7b32b0961188a392b488c94ca174d833ee6a9b71c0996620ae71e799fc7c77901db147fa7d97732e49c8226")))
	tx.AddTxOut(NewTxOut(39000000, mustDecodeHex(t, "76a914a3d89c53bb956f08917b44d113c6b2bcbe0c29b788ac")))
	tx.AddTxOut(NewTxOut(155000000, mustDecodeHex(t, "76a91408338e1d5e26db3fce21b011795b1c3c8a5a5d0788ac")))
	return tx
}

// TestTx tests the MsgTx API.
func TestTx(t *testing.T) {
	pver := ProtocolVersion

	// Block 100000 hash.
	hashStr := "3ba27aa200b1cecaad478d2b00432346c3f1f3986da1afd33e506"
	hash := mustHashFromStr(t, hashStr)

	// Ensure the command is expected value.
	wantCmd := "tx"
	msg := NewMsgTx(1)
	if cmd := msg.Command(); cmd != wantCmd {
		t.Errorf("NewMsgTx: wrong command - got %v want %v",
			cmd, wantCmd)
	}

	// Ensure max payload is expected value for latest protocol version.
	wantPayload := uint32(4000000)
	maxPayload := msg.MaxPayloadLength(pver)
	if maxPayload != wantPayload {
		t.Errorf("MaxPayloadLength: wrong max payload length for "+
			"protocol version %d - got %v, want %v", pver,
			maxPayload, wantPayload)
	}

	// Ensure we get the same transaction output point data back out.
	// NOTE: This is a block hash and made up index, but we're only
	// testing package functionality.
	prevOutIndex := uint32(1)
	prevOut := NewOutPoint(hash, prevOutIndex)
	if prevOut.Hash != *hash {
		t.Errorf("NewOutPoint: wrong hash - got %v, want %v",
			spew.Sprint(&prevOut.Hash), spew.Sprint(hash))
	}
	if prevOut.Index != prevOutIndex {
		t.Errorf("NewOutPoint: wrong index - got %v, want %v",
			prevOut.Index, prevOutIndex)
	}
	prevOutStr := fmt.Sprintf("%s:%d", hash.String(), prevOutIndex)
	if s := prevOut.String(); s != prevOutStr {
		t.Errorf("OutPoint.String: unexpected result - got %v, "+
			"want %v", s, prevOutStr)
	}

	// Ensure we get the same transaction input back out.
	sigScript := []byte{0x04, 0x31, 0xdc, 0x00, 0x1b, 0x01, 0x62}
	txIn := NewTxIn(prevOut, sigScript)
	if !reflect.DeepEqual(&txIn.PreviousOutPoint, prevOut) {
		t.Errorf("NewTxIn: wrong prev outpoint - got %v, want %v",
			spew.Sprint(&txIn.PreviousOutPoint),
			spew.Sprint(prevOut))
	}
	if !bytes.Equal(txIn.SignatureScript, sigScript) {
		t.Errorf("NewTxIn: wrong signature script - got %v, want %v",
			spew.Sdump(txIn.SignatureScript),
			spew.Sdump(sigScript))
	}

	// Ensure we get the same transaction output back out.
	txValue := int64(5000000000)
	pkScript := []byte{0x76, 0xa9, 0x14}
	txOut := NewTxOut(txValue, pkScript)
	if txOut.Value != txValue {
		t.Errorf("NewTxOut: wrong value - got %v, want %v",
			txOut.Value, txValue)
	}
	if !bytes.Equal(txOut.PkScript, pkScript) {
		t.Errorf("NewTxOut: wrong pk script - got %v, want %v",
			spew.Sdump(txOut.PkScript),
			spew.Sdump(pkScript))
	}

	// Ensure transaction inputs are added properly.
	msg.AddTxIn(txIn)
	if !reflect.DeepEqual(msg.TxIn[0], txIn) {
		t.Errorf("AddTxIn: wrong transaction input added - got %v, want %v",
			spew.Sprint(msg.TxIn[0]), spew.Sprint(txIn))
	}

	// Ensure transaction outputs are added properly.
	msg.AddTxOut(txOut)
	if !reflect.DeepEqual(msg.TxOut[0], txOut) {
		t.Errorf("AddTxIn: wrong transaction output added - got %v, want %v",
			spew.Sprint(msg.TxOut[0]), spew.Sprint(txOut))
	}

	// Ensure the copy produced an identical transaction message.
	newMsg := msg.Copy()
	if !reflect.DeepEqual(newMsg, msg) {
		t.Errorf("Copy: mismatched tx messages - got %v, want %v",
			spew.Sdump(newMsg), spew.Sdump(msg))
	}

	// Ensure the copy does not share script memory with the original.
	newMsg.TxIn[0].SignatureScript[0] = 0xff
	if msg.TxIn[0].SignatureScript[0] == 0xff {
		t.Errorf("Copy: signature script shares memory with the original")
	}
}

// TestTxVector decodes a known mainnet transaction and checks every field,
// the re-encoding and the transaction id.
func TestTxVector(t *testing.T) {
	buf := mustDecodeHex(t, twoInputTxHex)

	var tx MsgTx
	consumed, err := Decode(buf, NetworkMedia(ProtocolVersion), &tx)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if consumed != len(buf) {
		t.Errorf("Decode: consumed %d bytes, want %d", consumed, len(buf))
	}

	if tx.Version != 1 {
		t.Errorf("Version: got %d want 1", tx.Version)
	}
	if len(tx.TxIn) != 2 || len(tx.TxOut) != 2 {
		t.Fatalf("got %d inputs and %d outputs, want 2 and 2",
			len(tx.TxIn), len(tx.TxOut))
	}
	if tx.LockTime.Kind() != LockTimeNone {
		t.Errorf("LockTime: got %v want none", tx.LockTime)
	}

	wantPrevOuts := []string{
		"4d6da9420d472b6b52c36eee132d87448bf160d8839a58afdd2add6f6adfc8d8:0",
		"b220a19ba645c021f0cf501435fd6c3b4db960325d0834612612a5684ffab32a:0",
	}
	for i, txIn := range tx.TxIn {
		if s := txIn.PreviousOutPoint.String(); s != wantPrevOuts[i] {
			t.Errorf("TxIn[%d] outpoint: got %s want %s", i, s, wantPrevOuts[i])
		}
		if !txIn.IsFinal() {
			t.Errorf("TxIn[%d]: sequence %x is not final", i, txIn.Sequence)
		}
		if len(txIn.SignatureScript) != 0x8b {
			t.Errorf("TxIn[%d]: script length %d", i, len(txIn.SignatureScript))
		}
	}

	wantValues := []int64{39000000, 155000000}
	for i, txOut := range tx.TxOut {
		if txOut.Value != wantValues[i] {
			t.Errorf("TxOut[%d] value: got %d want %d", i, txOut.Value, wantValues[i])
		}
	}
	if got := tx.TxOut[0].PkScript.String(); got != "76a914a3d89c53bb956f08917b44d113c6b2bcbe0c29b788ac" {
		t.Errorf("TxOut[0] script: got %s", got)
	}

	// Building the same transaction field by field encodes to the same
	// bytes.
	built := buildTwoInputTx(t)
	encoded, err := Encode(built, NetworkMedia(ProtocolVersion))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, buf) {
		t.Errorf("Encode: got %x\nwant %x", encoded, buf)
	}
	if built.SerializeSize() != len(buf) {
		t.Errorf("SerializeSize: got %d want %d", built.SerializeSize(), len(buf))
	}

	txHash, err := tx.TxHash()
	if err != nil {
		t.Fatalf("TxHash: %v", err)
	}
	if txHash.String() != twoInputTxID {
		t.Errorf("TxHash: got %s want %s", txHash, twoInputTxID)
	}
	if tx.IsCoinBase() {
		t.Errorf("IsCoinBase: regular transaction reported as coinbase")
	}
}

// TestTxTruncated ensures every strict prefix of a valid transaction fails
// to decode as truncated input.
func TestTxTruncated(t *testing.T) {
	buf := mustDecodeHex(t, twoInputTxHex)
	for i := 0; i < len(buf); i++ {
		var tx MsgTx
		err := tx.BtcDecode(bytes.NewReader(buf[:i]), NetworkMedia(ProtocolVersion))
		if !IsTruncated(err) {
			t.Fatalf("BtcDecode of %d/%d bytes: got %v, want truncated",
				i, len(buf), err)
		}
	}
}

// TestTxHugeCounts ensures that absurd input and output counts are not
// trusted for allocation and fail once the data runs out.
func TestTxHugeCounts(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{
			"max inputs",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // Input count
			},
		},
		{
			"max outputs",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0x00,                                                 // Input count
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // Output count
			},
		},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		var tx MsgTx
		err := tx.BtcDecode(bytes.NewReader(test.buf), NetworkMedia(ProtocolVersion))
		if !IsTruncated(err) {
			t.Errorf("%s: got %v, want truncated", test.name, err)
		}
	}
}

// TestCoinbase checks the null outpoint and null output helpers.
func TestCoinbase(t *testing.T) {
	null := NullOutPoint()
	if !null.IsNull() {
		t.Errorf("NullOutPoint is not null: %v", null)
	}
	if (OutPoint{Index: MaxPrevOutIndex, Hash: chainhash.Hash{0x01}}).IsNull() {
		t.Errorf("OutPoint with non-zero hash reported as null")
	}
	if (OutPoint{}).IsNull() {
		t.Errorf("OutPoint with zero index reported as null")
	}

	coinbase := NewMsgTx(TxVersion)
	coinbase.AddTxIn(NewTxIn(&null, []byte{0x51}))
	coinbase.AddTxOut(NewTxOut(5000000000, []byte{0x51}))
	if !coinbase.IsCoinBase() {
		t.Errorf("IsCoinBase: coinbase not detected")
	}
	coinbase.AddTxIn(NewTxIn(&null, nil))
	if coinbase.IsCoinBase() {
		t.Errorf("IsCoinBase: two-input transaction reported as coinbase")
	}

	out := NewTxOut(1, []byte{0x51})
	out.SetNull()
	if !out.IsNull() || !NullTxOut().IsNull() {
		t.Errorf("SetNull/NullTxOut did not produce a null output")
	}
	var buf bytes.Buffer
	err := out.BtcEncode(&buf, NetworkMedia(ProtocolVersion))
	if err != nil {
		t.Fatalf("BtcEncode: %v", err)
	}
	want := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("null output encoding: got %x want %x", buf.Bytes(), want)
	}
}

// TestTxInSequence tests the relative lock time helpers of TxIn.
func TestTxInSequence(t *testing.T) {
	tests := []struct {
		name     string
		sequence uint32
		final    bool
		enabled  bool
		seconds  bool
		blocks   uint32
		duration uint32
	}{
		{"final", MaxTxInSequenceNum, true, false, false, 0, 0},
		{"disabled", SequenceLockTimeDisabled | 10, false, false, false, 0, 0},
		{"10 blocks", LockTimeToSequence(false, 10), false, true, false, 10, 0},
		{"1024 seconds", LockTimeToSequence(true, 1024), false, true, true, 0, 1024},
		{"rounded down seconds", LockTimeToSequence(true, 1000), false, true, true, 0, 512},
		{"zero", 0, false, true, false, 0, 0},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		txIn := &TxIn{Sequence: test.sequence}
		if txIn.IsFinal() != test.final {
			t.Errorf("%s: IsFinal got %v", test.name, txIn.IsFinal())
		}
		if txIn.RelativeLockTimeEnabled() != test.enabled {
			t.Errorf("%s: RelativeLockTimeEnabled got %v", test.name,
				txIn.RelativeLockTimeEnabled())
		}
		if test.enabled && txIn.RelativeLockTimeIsSeconds() != test.seconds {
			t.Errorf("%s: RelativeLockTimeIsSeconds got %v", test.name,
				txIn.RelativeLockTimeIsSeconds())
		}
		if txIn.RelativeLockBlocks() != test.blocks {
			t.Errorf("%s: RelativeLockBlocks got %d want %d", test.name,
				txIn.RelativeLockBlocks(), test.blocks)
		}
		if txIn.RelativeLockSeconds() != test.duration {
			t.Errorf("%s: RelativeLockSeconds got %d want %d", test.name,
				txIn.RelativeLockSeconds(), test.duration)
		}
	}
}

// TestTxInvalidLockTime ensures a transaction whose lock time has no
// encoding fails to encode and to hash.
func TestTxInvalidLockTime(t *testing.T) {
	tx := buildTwoInputTx(t)
	tx.LockTime = BlockLockTime(LockTimeThreshold)

	_, err := Encode(tx, NetworkMedia(ProtocolVersion))
	if !errors.Is(err, ErrDomainViolation) {
		t.Errorf("Encode: got %v, want %v", err, ErrDomainViolation)
	}
	_, err = tx.TxHash()
	if !errors.Is(err, ErrDomainViolation) {
		t.Errorf("TxHash: got %v, want %v", err, ErrDomainViolation)
	}
}

// TestTxSerialize tests the disk encoding helpers.
func TestTxSerialize(t *testing.T) {
	tx := buildTwoInputTx(t)
	tx.LockTime = BlockLockTime(200000)

	var buf bytes.Buffer
	err := tx.Serialize(&buf)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	var decoded MsgTx
	err = decoded.Deserialize(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(&decoded, tx) {
		t.Errorf("Deserialize: mismatched tx\n got: %s want: %s",
			spew.Sdump(&decoded), spew.Sdump(tx))
	}
}
