package merkleblock

import (
	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// Extraction is what a partial merkle tree proves: the merkle root it commits
// to and the matched transactions, in block order.
type Extraction struct {
	Root    chainhash.Hash
	Matches []chainhash.Hash
	Indices []uint32
}

// treeExtractor holds the state of walking a partial merkle tree.
type treeExtractor struct {
	tree       *wire.PartialMerkleTree
	bitsUsed   int
	hashesUsed int
	result     Extraction
}

// traverseAndExtract walks the tree depth first in the same order it was
// built, consuming one flag bit per node and one hash per pruned node or leaf.
func (e *treeExtractor) traverseAndExtract(height uint, pos uint32) (chainhash.Hash, error) {
	if e.bitsUsed >= e.tree.Flags.Len() {
		return chainhash.Hash{}, errors.Wrap(ErrMalformedTree, "ran out of flag bits")
	}
	isParent := e.tree.Flags.Bit(e.bitsUsed)
	e.bitsUsed++

	if height == 0 || !isParent {
		if e.hashesUsed >= len(e.tree.Hashes) {
			return chainhash.Hash{}, errors.Wrap(ErrMalformedTree, "ran out of hashes")
		}
		hash := e.tree.Hashes[e.hashesUsed]
		e.hashesUsed++
		if height == 0 && isParent {
			e.result.Matches = append(e.result.Matches, hash)
			e.result.Indices = append(e.result.Indices, pos)
		}
		return hash, nil
	}

	left, err := e.traverseAndExtract(height-1, pos*2)
	if err != nil {
		return chainhash.Hash{}, err
	}
	right := left
	if pos*2+1 < calcTreeWidth(e.tree.Transactions, height-1) {
		right, err = e.traverseAndExtract(height-1, pos*2+1)
		if err != nil {
			return chainhash.Hash{}, err
		}
		// Two identical children would allow a block with a duplicated
		// transaction to share the merkle root of the original
		// (CVE-2012-2459).
		if right == left {
			return chainhash.Hash{}, errors.Wrapf(ErrMalformedTree,
				"identical children at height %d position %d", height, pos)
		}
	}
	return HashMerkleBranches(&left, &right), nil
}

// Extract checks that tree is well formed and returns the merkle root it
// commits to along with its matched transactions. The caller still has to
// compare the root against a trusted block header.
func Extract(tree *wire.PartialMerkleTree) (*Extraction, error) {
	if tree.Transactions == 0 {
		return nil, errors.Wrap(ErrMalformedTree, "no transactions")
	}
	if tree.Transactions > MaxTxnCount {
		return nil, errors.Wrapf(ErrMalformedTree, "%d transactions is more "+
			"than any block can hold", tree.Transactions)
	}
	if uint64(len(tree.Hashes)) > uint64(tree.Transactions) {
		return nil, errors.Wrapf(ErrMalformedTree, "%d hashes for %d transactions",
			len(tree.Hashes), tree.Transactions)
	}
	if tree.Flags.Len() < len(tree.Hashes) {
		return nil, errors.Wrapf(ErrMalformedTree, "%d flag bits for %d hashes",
			tree.Flags.Len(), len(tree.Hashes))
	}

	e := treeExtractor{tree: tree}
	root, err := e.traverseAndExtract(treeHeight(tree.Transactions), 0)
	if err != nil {
		return nil, err
	}

	// Every hash must be consumed, and every flag bit except the padding
	// of the final byte.
	if (e.bitsUsed+7)/8 != (tree.Flags.Len()+7)/8 {
		return nil, errors.Wrapf(ErrMalformedTree, "used %d of %d flag bits",
			e.bitsUsed, tree.Flags.Len())
	}
	if e.hashesUsed != len(tree.Hashes) {
		return nil, errors.Wrapf(ErrMalformedTree, "used %d of %d hashes",
			e.hashesUsed, len(tree.Hashes))
	}

	e.result.Root = root
	return &e.result, nil
}
