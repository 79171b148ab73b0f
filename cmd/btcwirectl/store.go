package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/infrastructure/db/blockstore"
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

func openStore(cfg *configFlags, dbDir string) (*blockstore.Store, error) {
	path := cfg.dbPath(dbDir)
	log.Debugf("Opening block store at %s", path)
	return blockstore.Open(path)
}

// withStore runs f against the store of the active network and closes the
// store afterwards.
func withStore(cfg *configFlags, dbDir string, f func(store *blockstore.Store) error) (err error) {
	store, err := openStore(cfg, dbDir)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := store.Close()
		if err == nil {
			err = closeErr
		}
	}()
	return f(store)
}

func storeTx(cfg *configFlags, conf *storeTxConfig, out io.Writer) error {
	tx, _, err := decodeTransaction(cfg, conf.Transaction, conf.TransactionFile)
	if err != nil {
		return err
	}
	return withStore(cfg, conf.DBDir, func(store *blockstore.Store) error {
		txID, err := store.PutTransaction(tx)
		if err != nil {
			return err
		}
		log.Infof("Stored transaction %s", txID)
		_, err = fmt.Fprintln(out, txID)
		return errors.WithStack(err)
	})
}

func fetchTx(cfg *configFlags, conf *fetchTxConfig, out io.Writer) error {
	txID, err := chainhash.NewHashFromStr(conf.TxID)
	if err != nil {
		return errors.Wrapf(err, "invalid transaction id %s", conf.TxID)
	}
	return withStore(cfg, conf.DBDir, func(store *blockstore.Store) error {
		tx, err := store.Transaction(txID)
		if err != nil {
			return err
		}
		serialized, err := wire.Encode(tx, cfg.media())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(serialized))
		return errors.WithStack(err)
	})
}

func storeBlock(cfg *configFlags, conf *storeBlockConfig, out io.Writer) error {
	serialized, err := readHexInput("block", conf.Block, conf.BlockFile)
	if err != nil {
		return err
	}
	block := &wire.MsgBlock{}
	err = decodeExact("block", serialized, cfg.media(), block)
	if err != nil {
		return err
	}

	return withStore(cfg, conf.DBDir, func(store *blockstore.Store) error {
		blockHash, err := store.PutBlock(block)
		if err != nil {
			return err
		}
		log.Infof("Stored block %s with %d transactions", blockHash, len(block.Transactions))
		_, err = fmt.Fprintln(out, blockHash)
		return errors.WithStack(err)
	})
}

func merkleProof(cfg *configFlags, conf *merkleProofConfig, out io.Writer) error {
	blockHash, err := chainhash.NewHashFromStr(conf.BlockHash)
	if err != nil {
		return errors.Wrapf(err, "invalid block hash %s", conf.BlockHash)
	}
	txIDs := make([]chainhash.Hash, len(conf.TxIDs))
	for i, txIDString := range conf.TxIDs {
		err := chainhash.Decode(&txIDs[i], txIDString)
		if err != nil {
			return errors.Wrapf(err, "invalid transaction id %s", txIDString)
		}
	}

	return withStore(cfg, conf.DBDir, func(store *blockstore.Store) error {
		msg, err := store.MerkleBlock(blockHash, txIDs)
		if err != nil {
			return err
		}
		serialized, err := wire.Encode(msg, cfg.media())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(serialized))
		return errors.WithStack(err)
	})
}
