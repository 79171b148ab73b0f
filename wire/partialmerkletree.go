package wire

import (
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/util/chainhash"
)

// maxFlagsPerMerkleBlock is the maximum number of flag bytes that could
// possibly fit into a merkle block. Since each transaction is represented by
// a single bit, this is the max number of transactions per block divided by
// 8 bits per byte. Then an extra one to cover partials.
const maxFlagsPerMerkleBlock = maxTxPerBlock / 8

// PartialMerkleTree is the pruned merkle tree carried by a merkleblock
// message. It holds the number of transactions in the block, the hashes
// needed to rebuild the path to the root, and one flag bit per node visited
// in a depth-first traversal.
//
// On the wire the transaction count comes first, followed by the flag bytes
// and then the hashes.
type PartialMerkleTree struct {
	Transactions uint32
	Hashes       []chainhash.Hash
	Flags        BitVector
}

// AddHash appends a hash to the tree.
func (t *PartialMerkleTree) AddHash(hash *chainhash.Hash) error {
	if len(t.Hashes)+1 > maxTxPerBlock {
		str := fmt.Sprintf("too many tx hashes for message [max %v]",
			maxTxPerBlock)
		return messageError("PartialMerkleTree.AddHash", ErrLimitExceeded, str)
	}
	t.Hashes = append(t.Hashes, *hash)
	return nil
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (t *PartialMerkleTree) BtcEncode(w io.Writer, media Media) error {
	err := WriteElement(w, t.Transactions)
	if err != nil {
		return err
	}

	err = t.Flags.encode(w, maxFlagsPerMerkleBlock)
	if err != nil {
		return err
	}

	return WriteSequence(w, t.Hashes, maxTxPerBlock, "merkle hashes", writeHash)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (t *PartialMerkleTree) BtcDecode(r io.Reader, media Media) error {
	err := ReadElement(r, &t.Transactions)
	if err != nil {
		return err
	}

	err = t.Flags.decode(r, maxFlagsPerMerkleBlock, "merkle flags")
	if err != nil {
		return err
	}

	t.Hashes, err = ReadSequence(r, maxTxPerBlock, "merkle hashes", readHash)
	return err
}
