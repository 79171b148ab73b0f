// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/btcwire/util/chainhash"
)

// genesisHeader is the header of the main network genesis block.
var genesisHeader = BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: mainNetGenesisMerkleRoot,
	Timestamp:  1231006505, // 2009-01-03 18:15:05 +0000 UTC
	Bits:       0x1d00ffff,
	Nonce:      0x7c2bac1d, // 2083236893
}

// genesisHeaderEncoded is the wire encoding of genesisHeader.
var genesisHeaderEncoded = []byte{
	0x01, 0x00, 0x00, 0x00, // Version 1
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // PrevBlock
	0x3b, 0xa3, 0xed, 0xfd, 0x7a, 0x7b, 0x12, 0xb2,
	0x7a, 0xc7, 0x2c, 0x3e, 0x67, 0x76, 0x8f, 0x61,
	0x7f, 0xc8, 0x1b, 0xc3, 0x88, 0x8a, 0x51, 0x32,
	0x3a, 0x9f, 0xb8, 0xaa, 0x4b, 0x1e, 0x5e, 0x4a, // MerkleRoot
	0x29, 0xab, 0x5f, 0x49, // Timestamp
	0xff, 0xff, 0x00, 0x1d, // Bits
	0x1d, 0xac, 0x2b, 0x7c, // Nonce
}

// TestBlockHeader tests the BlockHeader API.
func TestBlockHeader(t *testing.T) {
	bh := NewBlockHeader(1, &chainhash.Hash{}, &mainNetGenesisMerkleRoot,
		1231006505, 0x1d00ffff, 0x7c2bac1d)
	if !reflect.DeepEqual(*bh, genesisHeader) {
		t.Errorf("NewBlockHeader: got %v want %v", spew.Sdump(bh),
			spew.Sdump(genesisHeader))
	}

	want := time.Date(2009, 1, 3, 18, 15, 5, 0, time.UTC)
	if !bh.Time().Equal(want) {
		t.Errorf("Time: got %v want %v", bh.Time(), want)
	}

	hash := bh.BlockHash()
	if hash != mainNetGenesisHash {
		t.Errorf("BlockHash: got %v want %v", hash, mainNetGenesisHash)
	}
	if hash.String() != "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f" {
		t.Errorf("BlockHash: unexpected string %v", hash)
	}
}

// TestBlockHeaderWire tests the BlockHeader wire encode and decode for every
// media, since a header encodes the same way everywhere.
func TestBlockHeaderWire(t *testing.T) {
	medias := []Media{
		NetworkMedia(ProtocolVersion),
		NetworkMedia(BIP0031Version),
		DiskMedia(),
		HashMedia(),
		NetworkMedia(ProtocolVersion).WithMode(ModeTrimmed),
	}

	t.Logf("Running %d tests", len(medias))
	for i, media := range medias {
		var buf bytes.Buffer
		err := genesisHeader.BtcEncode(&buf, media)
		if err != nil {
			t.Errorf("BtcEncode #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), genesisHeaderEncoded) {
			t.Errorf("BtcEncode #%d\n got: %s want: %s", i,
				spew.Sdump(buf.Bytes()), spew.Sdump(genesisHeaderEncoded))
			continue
		}
		if buf.Len() != BlockHeaderPayload {
			t.Errorf("BtcEncode #%d: got %d bytes want %d", i, buf.Len(),
				BlockHeaderPayload)
		}

		var bh BlockHeader
		err = bh.BtcDecode(bytes.NewReader(genesisHeaderEncoded), media)
		if err != nil {
			t.Errorf("BtcDecode #%d error %v", i, err)
			continue
		}
		if !reflect.DeepEqual(bh, genesisHeader) {
			t.Errorf("BtcDecode #%d\n got: %s want: %s", i,
				spew.Sdump(bh), spew.Sdump(genesisHeader))
		}
	}
}

// TestBlockHeaderWireErrors performs negative tests against wire encode and
// decode of BlockHeader to confirm error paths work correctly.
func TestBlockHeaderWireErrors(t *testing.T) {
	media := NetworkMedia(ProtocolVersion)

	tests := []struct {
		max int
	}{
		{0},  // Force error in version.
		{4},  // Force error in prev block hash.
		{36}, // Force error in merkle root.
		{68}, // Force error in timestamp.
		{72}, // Force error in difficulty bits.
		{76}, // Force error in header nonce.
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		w := newFixedWriter(test.max)
		err := genesisHeader.BtcEncode(w, media)
		if err == nil {
			t.Errorf("BtcEncode #%d: expected error", i)
			continue
		}

		var bh BlockHeader
		r := newFixedReader(test.max, genesisHeaderEncoded)
		err = bh.BtcDecode(r, media)
		if !IsTruncated(err) {
			t.Errorf("BtcDecode #%d: got %v want truncation", i, err)
		}
	}
}

func TestBlockHeaderSerialize(t *testing.T) {
	var buf bytes.Buffer
	err := genesisHeader.Serialize(&buf)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), genesisHeaderEncoded) {
		t.Fatalf("Serialize: got %x want %x", buf.Bytes(), genesisHeaderEncoded)
	}

	var bh BlockHeader
	err = bh.Deserialize(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if bh != genesisHeader {
		t.Fatalf("Deserialize: got %v want %v", bh, genesisHeader)
	}
}
