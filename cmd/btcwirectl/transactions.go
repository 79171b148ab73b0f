package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/btcwire/txscript"
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

func decodeTx(cfg *configFlags, conf *decodeTxConfig, out io.Writer) error {
	tx, serialized, err := decodeTransaction(cfg, conf.Transaction, conf.TransactionFile)
	if err != nil {
		return err
	}
	if conf.Dump {
		_, err = fmt.Fprint(out, spew.Sdump(tx))
		return errors.WithStack(err)
	}
	return describeTransaction(out, tx, len(serialized))
}

func describeTransaction(out io.Writer, tx *wire.MsgTx, size int) error {
	txID, err := tx.TxHash()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "txid:     %s\n", txID)
	fmt.Fprintf(&buf, "version:  %d\n", tx.Version)
	fmt.Fprintf(&buf, "size:     %d\n", size)
	fmt.Fprintf(&buf, "coinbase: %t\n", tx.IsCoinBase())
	fmt.Fprintf(&buf, "inputs:   %d\n", len(tx.TxIn))
	for i, txIn := range tx.TxIn {
		fmt.Fprintf(&buf, "  [%d] prevout %s sequence %#08x\n", i, txIn.PreviousOutPoint, txIn.Sequence)
		fmt.Fprintf(&buf, "      sigscript: %s\n", disasmOrError(txIn.SignatureScript))
	}
	fmt.Fprintf(&buf, "outputs:  %d\n", len(tx.TxOut))
	for i, txOut := range tx.TxOut {
		fmt.Fprintf(&buf, "  [%d] value %d\n", i, txOut.Value)
		fmt.Fprintf(&buf, "      pkscript: %s\n", disasmOrError(txOut.PkScript))
	}
	fmt.Fprintf(&buf, "locktime: %s\n", tx.LockTime)

	_, err = out.Write(buf.Bytes())
	return errors.WithStack(err)
}

// disasmOrError disassembles script. A malformed script is shown up to the
// failing opcode followed by [error].
func disasmOrError(script []byte) string {
	disassembled, _ := txscript.DisasmString(script)
	return disassembled
}

func encodeTx(cfg *configFlags, conf *encodeTxConfig, out io.Writer) error {
	tx, serialized, err := decodeTransaction(cfg, conf.Transaction, conf.TransactionFile)
	if err != nil {
		return err
	}

	reencoded, err := wire.Encode(tx, cfg.media())
	if err != nil {
		return err
	}
	if !bytes.Equal(reencoded, serialized) {
		return errors.Errorf("transaction is not canonically encoded: got %x, re-encoded %x",
			serialized, reencoded)
	}

	if conf.Disk {
		reencoded, err = wire.Encode(tx, wire.DiskMedia())
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out, hex.EncodeToString(reencoded))
	return errors.WithStack(err)
}

func txID(cfg *configFlags, conf *txIDConfig, out io.Writer) error {
	tx, _, err := decodeTransaction(cfg, conf.Transaction, conf.TransactionFile)
	if err != nil {
		return err
	}
	id, err := wire.HashOf(tx, chainhash.NewDoubleHashWriter())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, id)
	return errors.WithStack(err)
}
