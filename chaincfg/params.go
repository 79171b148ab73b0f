// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// ErrUnknownNet describes an error where the network magic is not one of the
// networks this package knows about.
var ErrUnknownNet = errors.New("unknown bitcoin network")

// Params defines a bitcoin network by its parameters. Every network is built
// on demand, so callers may freely modify the returned value.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []string

	// ProtocolVersion is the protocol version messages for this network
	// are encoded with by default.
	ProtocolVersion uint32

	// GenesisHeader is the header of the first block of the chain.
	GenesisHeader wire.BlockHeader

	// GenesisHash is the hash of GenesisHeader.
	GenesisHash chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32
}

// powLimit returns 2^exponent - 1.
func powLimit(exponent uint) *big.Int {
	bigOne := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(bigOne, exponent), bigOne)
}

// NetworkMedia returns the media for talking to peers on this network.
func (p *Params) NetworkMedia() wire.Media {
	return wire.NetworkMedia(p.ProtocolVersion)
}

// MainNetParams returns the network parameters for the main bitcoin network.
func MainNetParams() *Params {
	return &Params{
		Name:        "mainnet",
		Net:         wire.MainNet,
		DefaultPort: "8333",
		DNSSeeds: []string{
			"seed.bitcoin.sipa.be",
			"dnsseed.bluematt.me",
			"dnsseed.bitcoin.dashjr.org",
			"seed.bitcoinstats.com",
			"seed.bitnodes.io",
			"seed.bitcoin.jonasschnelli.ch",
		},
		ProtocolVersion: wire.ProtocolVersion,
		GenesisHeader:   mainGenesisHeader(),
		GenesisHash:     *newHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"),
		PowLimit:        powLimit(224),
		PowLimitBits:    mainGenesisBits,
	}
}

// RegressionNetParams returns the network parameters for the regression test
// bitcoin network. Not to be confused with the test bitcoin network (version
// 3), this network is sometimes simply called "testnet".
func RegressionNetParams() *Params {
	return &Params{
		Name:            "regtest",
		Net:             wire.TestNet,
		DefaultPort:     "18444",
		DNSSeeds:        []string{},
		ProtocolVersion: wire.ProtocolVersion,
		GenesisHeader:   regTestGenesisHeader(),
		GenesisHash:     *newHashFromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206"),
		PowLimit:        powLimit(255),
		PowLimitBits:    regtestGenesisBits,
	}
}

// TestNet3Params returns the network parameters for the test bitcoin network
// (version 3). Not to be confused with the regression test network, this
// network is sometimes simply called "testnet".
func TestNet3Params() *Params {
	return &Params{
		Name:        "testnet3",
		Net:         wire.TestNet3,
		DefaultPort: "18333",
		DNSSeeds: []string{
			"testnet-seed.bitcoin.jonasschnelli.ch",
			"testnet-seed.bitcoin.schildbach.de",
			"seed.tbtc.petertodd.org",
		},
		ProtocolVersion: wire.ProtocolVersion,
		GenesisHeader:   testNet3GenesisHeader(),
		GenesisHash:     *newHashFromStr("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"),
		PowLimit:        powLimit(224),
		PowLimitBits:    mainGenesisBits,
	}
}

// SimNetParams returns the network parameters for the simulation test bitcoin
// network. This network is similar to the normal test network except it is
// intended for private use within a group of individuals doing simulation
// testing.
func SimNetParams() *Params {
	return &Params{
		Name:            "simnet",
		Net:             wire.SimNet,
		DefaultPort:     "18555",
		DNSSeeds:        []string{},
		ProtocolVersion: wire.ProtocolVersion,
		GenesisHeader:   simNetGenesisHeader(),
		GenesisHash:     *newHashFromStr("683e86bd5c6d110d91b94b97137ba6bfe02dbbdb8e3dff722a669b5d69d77af6"),
		PowLimit:        powLimit(255),
		PowLimitBits:    regtestGenesisBits,
	}
}

// ParamsForNet returns the parameters of the network identified by net.
func ParamsForNet(net wire.BitcoinNet) (*Params, error) {
	switch net {
	case wire.MainNet:
		return MainNetParams(), nil
	case wire.TestNet:
		return RegressionNetParams(), nil
	case wire.TestNet3:
		return TestNet3Params(), nil
	case wire.SimNet:
		return SimNetParams(), nil
	}
	return nil, errors.Wrapf(ErrUnknownNet, "magic %#08x", uint32(net))
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It only differs from the one available in chainhash in that
// it panics on an error since it will only be called with hard-coded, and
// therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
