package blockstore

import (
	"testing"
	"time"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/util/merkleblock"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func testTransaction(index uint32) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	prevHash := chainhash.Hash{byte(index), 0xaa}
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, index), []byte{0x51}))
	tx.AddTxOut(wire.NewTxOut(int64(index)*1000, []byte{0x76, 0xa9, 0x88, 0xac}))
	tx.LockTime = wire.BlockLockTime(index + 1)
	return tx
}

func testBlock(t *testing.T, txCount uint32) *wire.MsgBlock {
	coinbase := wire.NewMsgTx(1)
	coinbase.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.NullOutPoint(),
		SignatureScript:  []byte{0x04, 0xff, 0xff, 0x00, 0x1d},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	coinbase.AddTxOut(wire.NewTxOut(5000000000, []byte{0x51}))

	transactions := []*wire.MsgTx{coinbase}
	for i := uint32(0); i < txCount; i++ {
		transactions = append(transactions, testTransaction(i))
	}

	header := wire.BlockHeader{
		Version:   1,
		Timestamp: uint32(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix()),
		Bits:      0x207fffff,
		Nonce:     7,
	}
	block := wire.NewMsgBlock(&header)
	for _, tx := range transactions {
		block.AddTransaction(tx)
	}
	txIDs, err := block.TxHashes()
	require.NoError(t, err)
	block.Header.MerkleRoot = merkleblock.CalcMerkleRoot(txIDs)
	return block
}

func requireSameEncoding(t *testing.T, want, got wire.Encodable) {
	wantBytes, err := wire.Encode(want, wire.DiskMedia())
	require.NoError(t, err)
	gotBytes, err := wire.Encode(got, wire.DiskMedia())
	require.NoError(t, err)
	require.Equal(t, wantBytes, gotBytes)
}

func TestTransactions(t *testing.T) {
	store := openTestStore(t)
	tx := testTransaction(3)
	wantID, err := tx.TxHash()
	require.NoError(t, err)

	exists, err := store.HasTransaction(&wantID)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.Transaction(&wantID)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	txID, err := store.PutTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, wantID, txID)

	exists, err = store.HasTransaction(&txID)
	require.NoError(t, err)
	require.True(t, exists)

	stored, err := store.Transaction(&txID)
	require.NoError(t, err)
	requireSameEncoding(t, tx, stored)

	// Storing the same transaction again is idempotent.
	_, err = store.PutTransaction(tx)
	require.NoError(t, err)
	txIDs, err := store.TransactionIDs()
	require.NoError(t, err)
	require.Equal(t, []chainhash.Hash{txID}, txIDs)
}

func TestPutTransactionOutOfRangeLockTime(t *testing.T) {
	store := openTestStore(t)
	tx := testTransaction(0)
	tx.LockTime = wire.TimeLockTime(time.Unix(1000, 0))

	_, err := store.PutTransaction(tx)
	require.True(t, errors.Is(err, wire.ErrDomainViolation), "got %v", err)

	txIDs, err := store.TransactionIDs()
	require.NoError(t, err)
	require.Empty(t, txIDs)
}

func TestBlocks(t *testing.T) {
	store := openTestStore(t)
	block := testBlock(t, 4)
	wantHash := block.BlockHash()

	_, err := store.Block(&wantHash)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	_, err = store.BlockHeader(&wantHash)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	blockHash, err := store.PutBlock(block)
	require.NoError(t, err)
	require.Equal(t, wantHash, blockHash)

	header, err := store.BlockHeader(&blockHash)
	require.NoError(t, err)
	require.Equal(t, block.Header, *header)

	stored, err := store.Block(&blockHash)
	require.NoError(t, err)
	requireSameEncoding(t, block, stored)

	// Every transaction of the block is reachable on its own.
	txIDs, err := block.TxHashes()
	require.NoError(t, err)
	for i := range txIDs {
		tx, err := store.Transaction(&txIDs[i])
		require.NoError(t, err)
		requireSameEncoding(t, block.Transactions[i], tx)
	}
	blockTxIDs, err := store.BlockTxIDs(&blockHash)
	require.NoError(t, err)
	require.Equal(t, txIDs, blockTxIDs)
}

func TestPutBlockMerkleRootMismatch(t *testing.T) {
	store := openTestStore(t)
	block := testBlock(t, 2)
	block.Header.MerkleRoot[0] ^= 0xff
	blockHash := block.BlockHash()

	_, err := store.PutBlock(block)
	require.True(t, errors.Is(err, ErrMerkleRootMismatch), "got %v", err)

	// Nothing of the rejected block is stored.
	_, err = store.BlockHeader(&blockHash)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	txIDs, err := store.TransactionIDs()
	require.NoError(t, err)
	require.Empty(t, txIDs)
}

func TestMerkleBlock(t *testing.T) {
	store := openTestStore(t)
	block := testBlock(t, 6)
	blockHash, err := store.PutBlock(block)
	require.NoError(t, err)

	txIDs, err := block.TxHashes()
	require.NoError(t, err)
	unknown := chainhash.Hash{0xde, 0xad}
	wanted := []chainhash.Hash{txIDs[5], txIDs[2], unknown}

	msg, err := store.MerkleBlock(&blockHash, wanted)
	require.NoError(t, err)
	require.Equal(t, block.Header, msg.Header)

	extraction, err := merkleblock.Extract(&msg.Tree)
	require.NoError(t, err)
	require.Equal(t, block.Header.MerkleRoot, extraction.Root)
	require.Equal(t, []chainhash.Hash{txIDs[2], txIDs[5]}, extraction.Matches)
	require.Equal(t, []uint32{2, 5}, extraction.Indices)

	_, err = store.MerkleBlock(&unknown, wanted)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}
