// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkleblock

import (
	"math"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// minTxWeight is the weight of the smallest possible transaction.
const minTxWeight = 240

// MaxTxnCount is the largest transaction count a partial merkle tree may
// claim. No block can hold more transactions than this.
const MaxTxnCount = wire.MaxBlockPayload / minTxWeight

// ErrMalformedTree is returned when a partial merkle tree does not describe a
// valid traversal of any merkle tree.
var ErrMalformedTree = errors.New("malformed partial merkle tree")

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the double sha256 of their concatenation.
func HashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Hash writers never fail.
	_, _ = writer.Write(left[:])
	_, _ = writer.Write(right[:])
	return writer.Finalize()
}

// CalcMerkleRoot returns the merkle root of the given transaction ids. A level
// with an odd number of nodes pairs its last node with itself. The root of an
// empty list is the zero hash.
func CalcMerkleRoot(txids []chainhash.Hash) chainhash.Hash {
	if len(txids) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)
	for len(level) > 1 {
		next := level[:0]
		for i := 0; i < len(level); i += 2 {
			right := &level[i]
			if i+1 < len(level) {
				right = &level[i+1]
			}
			next = append(next, HashMerkleBranches(&level[i], right))
		}
		level = next
	}
	return level[0]
}

// calcTreeWidth calculates and returns the number of nodes (width) of a
// merkle tree with numTx leaves at the given depth-first height.
func calcTreeWidth(numTx uint32, height uint) uint32 {
	return uint32((uint64(numTx) + (1 << height) - 1) >> height)
}

// treeHeight returns the height of the root of a merkle tree with numTx
// leaves.
func treeHeight(numTx uint32) uint {
	height := uint(0)
	for calcTreeWidth(numTx, height) > 1 {
		height++
	}
	return height
}

// treeBuilder holds the state of building a partial merkle tree.
type treeBuilder struct {
	numTx       uint32
	allHashes   []chainhash.Hash
	matched     []bool
	finalHashes []chainhash.Hash
	bits        []bool
}

// calcHash returns the hash of the node at the given height and position.
func (b *treeBuilder) calcHash(height uint, pos uint32) chainhash.Hash {
	if height == 0 {
		return b.allHashes[pos]
	}

	left := b.calcHash(height-1, pos*2)
	right := left
	if pos*2+1 < calcTreeWidth(b.numTx, height-1) {
		right = b.calcHash(height-1, pos*2+1)
	}
	return HashMerkleBranches(&left, &right)
}

// traverseAndBuild builds the partial merkle tree by walking it depth first.
// A node gets a flag bit telling whether it is the parent of a match. Leaves,
// and nodes with no match below them, also contribute their hash.
func (b *treeBuilder) traverseAndBuild(height uint, pos uint32) {
	first := uint64(pos) << height
	last := min(uint64(pos+1)<<height, uint64(b.numTx))

	isParent := false
	for i := first; i < last; i++ {
		if b.matched[i] {
			isParent = true
			break
		}
	}
	b.bits = append(b.bits, isParent)

	if height == 0 || !isParent {
		b.finalHashes = append(b.finalHashes, b.calcHash(height, pos))
		return
	}

	b.traverseAndBuild(height-1, pos*2)
	if pos*2+1 < calcTreeWidth(b.numTx, height-1) {
		b.traverseAndBuild(height-1, pos*2+1)
	}
}

// New returns the partial merkle tree of a block with the given transaction
// ids that proves the transactions whose matches entry is set.
func New(txids []chainhash.Hash, matches []bool) (*wire.PartialMerkleTree, error) {
	if len(txids) != len(matches) {
		return nil, errors.Errorf("got %d transaction ids but %d match flags",
			len(txids), len(matches))
	}
	if len(txids) == 0 || len(txids) > math.MaxUint32 {
		return nil, errors.Errorf("a merkle tree cannot have %d leaves", len(txids))
	}

	b := treeBuilder{
		numTx:     uint32(len(txids)),
		allHashes: txids,
		matched:   matches,
	}
	b.traverseAndBuild(treeHeight(b.numTx), 0)

	return &wire.PartialMerkleTree{
		Transactions: b.numTx,
		Hashes:       b.finalHashes,
		Flags:        wire.NewBitVector(b.bits),
	}, nil
}

// NewMsgMerkleBlock returns a merkleblock message for the block with the given
// header and transaction ids, proving the matched transactions.
func NewMsgMerkleBlock(header *wire.BlockHeader, txids []chainhash.Hash,
	matches []bool) (*wire.MsgMerkleBlock, error) {

	tree, err := New(txids, matches)
	if err != nil {
		return nil, err
	}
	msg := wire.NewMsgMerkleBlock(header)
	msg.Tree = *tree
	return msg, nil
}
