package blockstore

import "github.com/kaspanet/btcwire/util/chainhash"

var (
	transactionKeyPrefix = []byte("tx-")
	blockKeyPrefix       = []byte("block-")
	blockTxIDsKeyPrefix  = []byte("blocktxids-")
)

func hashKey(prefix []byte, hash *chainhash.Hash) []byte {
	key := make([]byte, 0, len(prefix)+chainhash.HashSize)
	key = append(key, prefix...)
	return append(key, hash[:]...)
}

func transactionKey(txID *chainhash.Hash) []byte {
	return hashKey(transactionKeyPrefix, txID)
}

func blockKey(blockHash *chainhash.Hash) []byte {
	return hashKey(blockKeyPrefix, blockHash)
}

func blockTxIDsKey(blockHash *chainhash.Hash) []byte {
	return hashKey(blockTxIDsKeyPrefix, blockHash)
}
