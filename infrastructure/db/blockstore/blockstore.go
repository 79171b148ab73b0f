package blockstore

import (
	"bytes"
	"io"

	"github.com/kaspanet/btcwire/infrastructure/db/ldb"
	"github.com/kaspanet/btcwire/infrastructure/logger"
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/util/merkleblock"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a requested transaction or block is not
	// in the store.
	ErrNotFound = errors.New("not found")

	// ErrMerkleRootMismatch is returned when a block's transactions do not
	// hash to the merkle root committed to by its header.
	ErrMerkleRootMismatch = errors.New("merkle root mismatch")
)

// maxBlockTxIDs bounds the transaction id list of a stored block.
const maxBlockTxIDs = wire.MaxBlockPayload / chainhash.HashSize

// Store persists transactions and blocks using their disk encodings. A block
// is kept as its trimmed encoding together with the ids of its transactions,
// and every transaction is stored once under its own id.
type Store struct {
	db    *ldb.LevelDB
	media wire.Media
}

// Open opens the store at path, creating it if it does not exist.
func Open(path string) (*Store, error) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New returns a store over an open database.
func New(db *ldb.LevelDB) *Store {
	return &Store{
		db:    db,
		media: wire.DiskMedia(),
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutTransaction stores tx under its id and returns the id.
func (s *Store) PutTransaction(tx *wire.MsgTx) (chainhash.Hash, error) {
	txID, serialized, err := s.serializeTransaction(tx)
	if err != nil {
		return chainhash.Hash{}, err
	}
	err = s.db.Put(transactionKey(&txID), serialized)
	if err != nil {
		return chainhash.Hash{}, err
	}
	log.Debugf("Stored transaction %s (%d bytes)", txID, len(serialized))
	return txID, nil
}

func (s *Store) serializeTransaction(tx *wire.MsgTx) (chainhash.Hash, []byte, error) {
	txID, err := tx.TxHash()
	if err != nil {
		return chainhash.Hash{}, nil, err
	}
	serialized, err := wire.Encode(tx, s.media)
	if err != nil {
		return chainhash.Hash{}, nil, err
	}
	return txID, serialized, nil
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(txID *chainhash.Hash) (*wire.MsgTx, error) {
	serialized, err := s.db.Get(transactionKey(txID))
	if err != nil {
		return nil, err
	}
	if serialized == nil {
		return nil, errors.Wrapf(ErrNotFound, "transaction %s", txID)
	}

	tx := &wire.MsgTx{}
	err = decodeAll(serialized, s.media, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "stored transaction %s is corrupt", txID)
	}
	return tx, nil
}

// HasTransaction returns whether a transaction with the given id is stored.
func (s *Store) HasTransaction(txID *chainhash.Hash) (bool, error) {
	return s.db.Has(transactionKey(txID))
}

// TransactionIDs returns the ids of every stored transaction, ordered by
// their byte representation.
func (s *Store) TransactionIDs() ([]chainhash.Hash, error) {
	keys, err := s.db.Keys(transactionKeyPrefix)
	if err != nil {
		return nil, err
	}
	txIDs := make([]chainhash.Hash, 0, len(keys))
	for _, key := range keys {
		var txID chainhash.Hash
		err := txID.SetBytes(key[len(transactionKeyPrefix):])
		if err != nil {
			return nil, errors.Wrapf(err, "malformed transaction key %x", key)
		}
		txIDs = append(txIDs, txID)
	}
	return txIDs, nil
}

// PutBlock stores block along with each of its transactions and returns the
// block hash. The block is rejected when its transactions do not hash to
// the merkle root in its header. Nothing is written unless everything is.
func (s *Store) PutBlock(block *wire.MsgBlock) (chainhash.Hash, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "PutBlock")
	defer onEnd()

	txIDs, err := block.TxHashes()
	if err != nil {
		return chainhash.Hash{}, err
	}
	blockHash := block.BlockHash()
	if root := merkleblock.CalcMerkleRoot(txIDs); root != block.Header.MerkleRoot {
		return chainhash.Hash{}, errors.Wrapf(ErrMerkleRootMismatch,
			"block %s commits to %s but its transactions hash to %s",
			blockHash, block.Header.MerkleRoot, root)
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return chainhash.Hash{}, err
	}
	defer func() {
		rollbackErr := dbTx.RollbackUnlessClosed()
		if rollbackErr != nil {
			log.Errorf("Failed to roll back storing block %s: %+v", blockHash, rollbackErr)
		}
	}()

	trimmed, err := wire.Encode(block, s.media.WithMode(wire.ModeTrimmed))
	if err != nil {
		return chainhash.Hash{}, err
	}
	err = dbTx.Put(blockKey(&blockHash), trimmed)
	if err != nil {
		return chainhash.Hash{}, err
	}

	var txIDList bytes.Buffer
	err = wire.WriteSequence(&txIDList, txIDs, maxBlockTxIDs, "block transaction ids",
		func(w io.Writer, txID chainhash.Hash) error {
			return wire.WriteElement(w, &txID)
		})
	if err != nil {
		return chainhash.Hash{}, err
	}
	err = dbTx.Put(blockTxIDsKey(&blockHash), txIDList.Bytes())
	if err != nil {
		return chainhash.Hash{}, err
	}

	for _, tx := range block.Transactions {
		txID, serialized, err := s.serializeTransaction(tx)
		if err != nil {
			return chainhash.Hash{}, err
		}
		err = dbTx.Put(transactionKey(&txID), serialized)
		if err != nil {
			return chainhash.Hash{}, err
		}
	}

	err = dbTx.Commit()
	if err != nil {
		return chainhash.Hash{}, err
	}
	log.Debugf("Stored block %s with %d transactions", blockHash, len(txIDs))
	return blockHash, nil
}

// BlockHeader returns the header of the block with the given hash without
// loading its transactions.
func (s *Store) BlockHeader(blockHash *chainhash.Hash) (*wire.BlockHeader, error) {
	serialized, err := s.db.Get(blockKey(blockHash))
	if err != nil {
		return nil, err
	}
	if serialized == nil {
		return nil, errors.Wrapf(ErrNotFound, "block %s", blockHash)
	}

	block := &wire.MsgBlock{}
	err = decodeAll(serialized, s.media.WithMode(wire.ModeTrimmed), block)
	if err != nil {
		return nil, errors.Wrapf(err, "stored block %s is corrupt", blockHash)
	}
	return &block.Header, nil
}

// BlockTxIDs returns the ids of the transactions of the block with the given
// hash, in block order.
func (s *Store) BlockTxIDs(blockHash *chainhash.Hash) ([]chainhash.Hash, error) {
	serialized, err := s.db.Get(blockTxIDsKey(blockHash))
	if err != nil {
		return nil, err
	}
	if serialized == nil {
		return nil, errors.Wrapf(ErrNotFound, "block %s", blockHash)
	}

	r := bytes.NewReader(serialized)
	txIDs, err := wire.ReadSequence(r, maxBlockTxIDs, "block transaction ids",
		func(r io.Reader) (chainhash.Hash, error) {
			var txID chainhash.Hash
			return txID, wire.ReadElement(r, &txID)
		})
	if err != nil {
		return nil, errors.Wrapf(err, "stored transaction ids of block %s are corrupt", blockHash)
	}
	if r.Len() != 0 {
		return nil, errors.Errorf("stored transaction ids of block %s have "+
			"%d trailing bytes", blockHash, r.Len())
	}
	return txIDs, nil
}

// Block returns the block with the given hash along with all of its
// transactions.
func (s *Store) Block(blockHash *chainhash.Hash) (*wire.MsgBlock, error) {
	header, err := s.BlockHeader(blockHash)
	if err != nil {
		return nil, err
	}
	txIDs, err := s.BlockTxIDs(blockHash)
	if err != nil {
		return nil, err
	}

	block := wire.NewMsgBlock(header)
	for _, txID := range txIDs {
		tx, err := s.Transaction(&txID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load a transaction of block %s", blockHash)
		}
		block.AddTransaction(tx)
	}
	return block, nil
}

// MerkleBlock returns a merkleblock message for the stored block with the
// given hash that proves which of the given transactions it contains.
func (s *Store) MerkleBlock(blockHash *chainhash.Hash, txIDs []chainhash.Hash) (*wire.MsgMerkleBlock, error) {
	header, err := s.BlockHeader(blockHash)
	if err != nil {
		return nil, err
	}
	blockTxIDs, err := s.BlockTxIDs(blockHash)
	if err != nil {
		return nil, err
	}

	wanted := make(map[chainhash.Hash]struct{}, len(txIDs))
	for _, txID := range txIDs {
		wanted[txID] = struct{}{}
	}
	matches := make([]bool, len(blockTxIDs))
	for i, txID := range blockTxIDs {
		_, matches[i] = wanted[txID]
	}
	return merkleblock.NewMsgMerkleBlock(header, blockTxIDs, matches)
}

// decodeAll decodes v from serialized and requires that every byte is used.
func decodeAll(serialized []byte, media wire.Media, v wire.Decodable) error {
	consumed, err := wire.Decode(serialized, media, v)
	if err != nil {
		return err
	}
	if consumed != len(serialized) {
		return errors.Errorf("%d trailing bytes", len(serialized)-consumed)
	}
	return nil
}
