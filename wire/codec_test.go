package wire

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"
	"time"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/pkg/errors"
)

// TestSequenceLimit ensures a sequence longer than its limit fails on the
// count alone, before any item is read.
func TestSequenceLimit(t *testing.T) {
	itemsRead := 0
	readItem := func(r io.Reader) (uint32, error) {
		itemsRead++
		var v uint32
		return v, ReadElement(r, &v)
	}

	// Count of 4 with a limit of 3, followed by plenty of data.
	buf := append([]byte{0x04}, bytes.Repeat([]byte{0x01}, 16)...)
	_, err := ReadSequence(bytes.NewReader(buf), 3, "test items", readItem)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("ReadSequence: got %v want %v", err, ErrLimitExceeded)
	}
	if itemsRead != 0 {
		t.Fatalf("ReadSequence: read %d items before rejecting the count", itemsRead)
	}

	items, err := ReadSequence(bytes.NewReader(buf), 4, "test items", readItem)
	if err != nil {
		t.Fatalf("ReadSequence: %v", err)
	}
	if len(items) != 4 || items[3] != 0x01010101 {
		t.Fatalf("ReadSequence: got %v", items)
	}

	var w bytes.Buffer
	err = WriteSequence(&w, []uint32{1, 2, 3, 4}, 3, "test items",
		func(w io.Writer, v uint32) error { return WriteElement(w, v) })
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("WriteSequence: got %v want %v", err, ErrLimitExceeded)
	}
	if w.Len() != 0 {
		t.Fatalf("WriteSequence: wrote %d bytes on failure", w.Len())
	}
}

// TestDecodeConsumed ensures Decode reports how much of the buffer was used
// and leaves trailing bytes alone.
func TestDecodeConsumed(t *testing.T) {
	ping := NewMsgPing(0x0102030405060708)
	buf, err := Encode(ping, NetworkMedia(ProtocolVersion))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	buf = append(buf, 0xde, 0xad)

	var decoded MsgPing
	consumed, err := Decode(buf, NetworkMedia(ProtocolVersion), &decoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if consumed != 8 {
		t.Errorf("Decode: consumed %d want 8", consumed)
	}
	if decoded.Nonce != ping.Nonce {
		t.Errorf("Decode: nonce %x want %x", decoded.Nonce, ping.Nonce)
	}

	size, err := SerializeSize(ping, NetworkMedia(ProtocolVersion))
	if err != nil || size != 8 {
		t.Errorf("SerializeSize: got (%d, %v) want 8", size, err)
	}
}

func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrLimitExceeded, "ErrLimitExceeded"},
		{ErrMalformedDiscriminant, "ErrMalformedDiscriminant"},
		{ErrMalformedData, "ErrMalformedData"},
		{ErrDomainViolation, "ErrDomainViolation"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}

	err := errors.Wrap(messageError("f", ErrLimitExceeded, "too big"), "context")
	if !errors.Is(err, ErrLimitExceeded) || errors.Is(err, ErrDomainViolation) {
		t.Errorf("errors.Is does not match on the error code")
	}
	var msgErr *MessageError
	if !errors.As(err, &msgErr) || msgErr.Error() != "f: too big" {
		t.Errorf("errors.As: got %v", msgErr)
	}
}

// TestHashOf ensures HashOf digests the hashing encoding of a value, which
// leaves out everything the hash media drops.
func TestHashOf(t *testing.T) {
	hash, err := HashOf(&genesisHeader, chainhash.NewDoubleHashWriter())
	if err != nil {
		t.Fatalf("HashOf: %v", err)
	}
	if hash != mainNetGenesisHash {
		t.Errorf("HashOf genesis header: got %s want %s", hash, mainNetGenesisHash)
	}

	// A network address hashes without its timestamp.
	withoutTime := baseNetAddr
	withoutTime.Timestamp = time.Time{}
	first := sha256.Sum256(baseNetAddrNoTime)
	want := chainhash.Hash(sha256.Sum256(first[:]))
	for _, na := range []*NetAddress{&baseNetAddr, &withoutTime} {
		hash, err := HashOf(na, chainhash.NewDoubleHashWriter())
		if err != nil {
			t.Fatalf("HashOf: %v", err)
		}
		if hash != want {
			t.Errorf("HashOf address: got %s want %s", hash, want)
		}
	}

	// Values without an encoding have no hash.
	tx := NewMsgTx(1)
	tx.LockTime = TimeLockTime(time.Unix(1<<40, 0))
	_, err = HashOf(tx, chainhash.NewDoubleHashWriter())
	if err == nil {
		t.Errorf("HashOf: expected an error for an unencodable lock time")
	}
}
