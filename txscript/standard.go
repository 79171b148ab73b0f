// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// PayToPubKeyHashScript creates a new script to pay a transaction output to
// the 20-byte hash160 of a public key.
func PayToPubKeyHashScript(pubKeyHash []byte) (wire.Script, error) {
	if len(pubKeyHash) != chainhash.Hash160Size {
		return nil, errors.Errorf("pubkey hash is %d bytes, want %d",
			len(pubKeyHash), chainhash.Hash160Size)
	}
	return NewScriptBuilder().AddOp(OpDup).AddOp(OpHash160).
		AddData(pubKeyHash).AddOp(OpEqualVerify).AddOp(OpCheckSig).
		Script()
}

// PayToPubKeyScript creates a pay-to-pubkey-hash script for the serialized
// public key pubKey.
func PayToPubKeyScript(pubKey []byte) (wire.Script, error) {
	pubKeyHash := chainhash.Hash160(pubKey)
	return PayToPubKeyHashScript(pubKeyHash[:])
}
