// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
)

// genesisMerkleRoot is the hash of the only transaction in the genesis block
// of every network. All networks share the same coinbase.
var genesisMerkleRoot = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

const (
	mainGenesisTime   = 1231006505 // 2009-01-03 18:15:05 UTC
	testGenesisTime   = 1296688602 // 2011-02-02 23:16:42 UTC
	simnetGenesisTime = 1401292357 // 2014-05-28 15:52:37 UTC

	mainGenesisBits    = 0x1d00ffff
	regtestGenesisBits = 0x207fffff
)

// genesisHeader returns the genesis block header with the given timestamp,
// difficulty bits and nonce.
func genesisHeader(timestamp, bits, nonce uint32) wire.BlockHeader {
	return wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: *newHashFromStr(genesisMerkleRoot),
		Timestamp:  timestamp,
		Bits:       bits,
		Nonce:      nonce,
	}
}

// mainGenesisHeader is the header of the first block of the main network.
func mainGenesisHeader() wire.BlockHeader {
	return genesisHeader(mainGenesisTime, mainGenesisBits, 0x7c2bac1d)
}

// testNet3GenesisHeader is the header of the first block of the test network
// (version 3). It only differs from the main network in its timestamp and
// nonce.
func testNet3GenesisHeader() wire.BlockHeader {
	return genesisHeader(testGenesisTime, mainGenesisBits, 0x18aea41a)
}

// regTestGenesisHeader is the header of the first block of the regression
// test network.
func regTestGenesisHeader() wire.BlockHeader {
	return genesisHeader(testGenesisTime, regtestGenesisBits, 2)
}

// simNetGenesisHeader is the header of the first block of the simulation
// test network.
func simNetGenesisHeader() wire.BlockHeader {
	return genesisHeader(simnetGenesisTime, regtestGenesisBits, 2)
}
