package merkleblock

import (
	"slices"
	"testing"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

func mustHash(t testing.TB, s string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		t.Fatalf("NewHashFromStr(%s): %v", s, err)
	}
	return *hash
}

// block100000 holds the transaction ids of mainnet block 100000 and its
// merkle root.
func block100000(t testing.TB) ([]chainhash.Hash, chainhash.Hash) {
	txids := []chainhash.Hash{
		mustHash(t, "8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1d1ff16284aefa3d06d87"),
		mustHash(t, "fff2525b8931402dd09222c50775608f75787bd2b87e56995a7bdd30f79702c4"),
		mustHash(t, "6359f0868171b1d194cbee1af2f16ea598ae8fad666d9b012c8ed2b79a236ec4"),
		mustHash(t, "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"),
	}
	root := mustHash(t, "f3e94742aca4b5ef85488dc37c06c3282295ffec960994b2c0d5ac2a25a95766")
	return txids, root
}

func TestCalcMerkleRoot(t *testing.T) {
	genesisTx := mustHash(t, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	if root := CalcMerkleRoot([]chainhash.Hash{genesisTx}); root != genesisTx {
		t.Errorf("single transaction: got %s want %s", root, genesisTx)
	}

	txids, want := block100000(t)
	if root := CalcMerkleRoot(txids); root != want {
		t.Errorf("block 100000: got %s want %s", root, want)
	}

	// An odd level pairs its last node with itself.
	three := txids[:3]
	ab := HashMerkleBranches(&txids[0], &txids[1])
	cc := HashMerkleBranches(&txids[2], &txids[2])
	if root := CalcMerkleRoot(three); root != HashMerkleBranches(&ab, &cc) {
		t.Errorf("odd level: got %s", root)
	}

	if root := CalcMerkleRoot(nil); root != (chainhash.Hash{}) {
		t.Errorf("empty: got %s want zero hash", root)
	}

	// The input must be left untouched.
	before := append([]chainhash.Hash(nil), txids...)
	CalcMerkleRoot(txids)
	if !slices.Equal(before, txids) {
		t.Errorf("CalcMerkleRoot modified its input")
	}
}

func TestNewSingleMatch(t *testing.T) {
	txids, root := block100000(t)
	tree, err := New(txids, []bool{false, false, true, false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Root and left child are parents of the match. The left subtree is
	// pruned to a single hash, and under the right node only the matched
	// leaf and its sibling appear.
	wantBits := []bool{true, false, true, true, false, false, false, false}
	if got := tree.Flags.Bits(); !equalBits(got, wantBits) {
		t.Errorf("flags: got %v want %v", got, wantBits)
	}
	wantHashes := []chainhash.Hash{
		HashMerkleBranches(&txids[0], &txids[1]),
		txids[2],
		txids[3],
	}
	if !slices.Equal(tree.Hashes, wantHashes) {
		t.Errorf("hashes: got %v want %v", tree.Hashes, wantHashes)
	}

	extraction, err := Extract(tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extraction.Root != root {
		t.Errorf("root: got %s want %s", extraction.Root, root)
	}
	if len(extraction.Matches) != 1 || extraction.Matches[0] != txids[2] {
		t.Errorf("matches: got %v", extraction.Matches)
	}
	if len(extraction.Indices) != 1 || extraction.Indices[0] != 2 {
		t.Errorf("indices: got %v", extraction.Indices)
	}
}

func TestNewNoMatch(t *testing.T) {
	txids, root := block100000(t)
	tree, err := New(txids, make([]bool, len(txids)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(tree.Hashes) != 1 || tree.Hashes[0] != root {
		t.Errorf("hashes: got %v want [%s]", tree.Hashes, root)
	}

	extraction, err := Extract(tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extraction.Root != root || len(extraction.Matches) != 0 {
		t.Errorf("got root %s and %d matches", extraction.Root, len(extraction.Matches))
	}
}

func TestNewErrors(t *testing.T) {
	txids, _ := block100000(t)
	if _, err := New(txids, []bool{true}); err == nil {
		t.Errorf("mismatched lengths: expected an error")
	}
	if _, err := New(nil, nil); err == nil {
		t.Errorf("no transactions: expected an error")
	}
}

func TestNewMsgMerkleBlock(t *testing.T) {
	txids, root := block100000(t)
	header := wire.BlockHeader{Version: 1, MerkleRoot: root}
	msg, err := NewMsgMerkleBlock(&header, txids, []bool{true, false, false, true})
	if err != nil {
		t.Fatalf("NewMsgMerkleBlock: %v", err)
	}
	if msg.Header != header {
		t.Errorf("header: got %v want %v", msg.Header, header)
	}

	encoded, err := wire.Encode(msg, wire.NetworkMedia(wire.ProtocolVersion))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded wire.MsgMerkleBlock
	_, err = wire.Decode(encoded, wire.NetworkMedia(wire.ProtocolVersion), &decoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	extraction, err := Extract(&decoded.Tree)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extraction.Root != decoded.Header.MerkleRoot {
		t.Errorf("root: got %s want %s", extraction.Root, decoded.Header.MerkleRoot)
	}
	want := []chainhash.Hash{txids[0], txids[3]}
	if !slices.Equal(extraction.Matches, want) {
		t.Errorf("matches: got %v want %v", extraction.Matches, want)
	}
}

func TestExtractMalformed(t *testing.T) {
	txids, _ := block100000(t)
	valid := func() *wire.PartialMerkleTree {
		tree, err := New(txids, []bool{false, false, true, false})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return tree
	}

	duplicated := []chainhash.Hash{txids[0], txids[1], txids[2], txids[2]}
	duplicateTree, err := New(duplicated, []bool{false, false, true, true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree
	}{
		{
			name: "no transactions",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Transactions = 0
				return tree
			},
		},
		{
			name: "too many transactions",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Transactions = MaxTxnCount + 1
				return tree
			},
		},
		{
			name: "more hashes than transactions",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Transactions = 2
				return tree
			},
		},
		{
			name: "fewer flag bits than hashes",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Hashes = make([]chainhash.Hash, 4)
				tree.Flags = wire.NewBitVector(nil)
				return tree
			},
		},
		{
			name: "unused hash",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Hashes = append(tree.Hashes, txids[0])
				return tree
			},
		},
		{
			name: "missing hash",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Hashes = tree.Hashes[:2]
				return tree
			},
		},
		{
			name: "unused flag byte",
			mutate: func(tree *wire.PartialMerkleTree) *wire.PartialMerkleTree {
				tree.Flags = wire.NewBitVector(append(tree.Flags.Bits(), make([]bool, 8)...))
				return tree
			},
		},
		{
			name: "identical children",
			mutate: func(*wire.PartialMerkleTree) *wire.PartialMerkleTree {
				return duplicateTree
			},
		},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		_, err := Extract(test.mutate(valid()))
		if !errors.Is(err, ErrMalformedTree) {
			t.Errorf("%s: got %v want %v", test.name, err, ErrMalformedTree)
		}
	}
}

func equalBits(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestPartialMerkleTreeProperty checks that extracting a built tree always
// recovers the full merkle root and exactly the matched transactions.
func TestPartialMerkleTreeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 300).Draw(t, "count")
		txids := make([]chainhash.Hash, count)
		for i := range txids {
			copy(txids[i][:], rapid.SliceOfN(rapid.Byte(), chainhash.HashSize,
				chainhash.HashSize).Draw(t, "txid"))
			// Distinct ids keep identical siblings out of the tree.
			txids[i][0], txids[i][1] = byte(i), byte(i>>8)
		}
		matches := rapid.SliceOfN(rapid.Bool(), count, count).Draw(t, "matches")

		tree, err := New(txids, matches)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		extraction, err := Extract(tree)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if root := CalcMerkleRoot(txids); extraction.Root != root {
			t.Fatalf("root: got %s want %s", extraction.Root, root)
		}

		var wantIndices []uint32
		for i, match := range matches {
			if match {
				wantIndices = append(wantIndices, uint32(i))
			}
		}
		if len(extraction.Indices) != len(wantIndices) {
			t.Fatalf("indices: got %v want %v", extraction.Indices, wantIndices)
		}
		for i, index := range wantIndices {
			if extraction.Indices[i] != index || extraction.Matches[i] != txids[index] {
				t.Fatalf("match %d: got index %d want %d", i, extraction.Indices[i], index)
			}
		}
	})
}
