package wire

import (
	"bytes"
	"io"

	"github.com/kaspanet/btcwire/util/chainhash"
	"github.com/pkg/errors"
)

// maxPreallocItems caps the capacity reserved up front for a counted
// sequence. Longer sequences grow as their items are decoded.
const maxPreallocItems = 512

// Encodable is implemented by every value with a wire representation.
type Encodable interface {
	BtcEncode(w io.Writer, media Media) error
}

// Decodable is implemented by pointers to every value with a wire
// representation. Decoding overwrites the receiver.
type Decodable interface {
	BtcDecode(r io.Reader, media Media) error
}

// Encode returns the serialization of v under media.
func Encode(v Encodable, media Media) ([]byte, error) {
	var buf bytes.Buffer
	err := v.BtcEncode(&buf, media)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes v from the start of buf under media and returns the number
// of bytes consumed. Trailing bytes are left for the caller.
func Decode(buf []byte, media Media, v Decodable) (int, error) {
	r := bytes.NewReader(buf)
	err := v.BtcDecode(r, media)
	if err != nil {
		return 0, err
	}
	return len(buf) - r.Len(), nil
}

// HashOf feeds the hashing encoding of v into d and returns the digest.
func HashOf(v Encodable, d chainhash.Digest) (chainhash.Hash, error) {
	err := v.BtcEncode(d, HashMedia())
	if err != nil {
		return chainhash.Hash{}, err
	}
	return d.Finalize(), nil
}

// countingWriter discards its input and remembers how much it saw.
type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// SerializeSize returns the number of bytes v encodes to under media.
func SerializeSize(v Encodable, media Media) (int, error) {
	var w countingWriter
	err := v.BtcEncode(&w, media)
	if err != nil {
		return 0, err
	}
	return w.n, nil
}

// WriteSequence writes len(items) as a compact size followed by every item
// in order. Nothing is written when the count exceeds maxAllowed.
func WriteSequence[T any](w io.Writer, items []T, maxAllowed uint64, fieldName string,
	writeItem func(w io.Writer, item T) error) error {

	err := writeCount(w, uint64(len(items)), maxAllowed, "WriteSequence", fieldName)
	if err != nil {
		return err
	}
	for _, item := range items {
		err := writeItem(w, item)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadSequence reads a compact size count and then that many items. The
// count is checked against maxAllowed before any item is read or any storage
// reserved, and the result never reserves more capacity up front than
// maxPreallocItems.
func ReadSequence[T any](r io.Reader, maxAllowed uint64, fieldName string,
	readItem func(r io.Reader) (T, error)) ([]T, error) {

	count, err := readCount(r, maxAllowed, "ReadSequence", fieldName)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, min(count, maxPreallocItems))
	for i := uint64(0); i < count; i++ {
		item, err := readItem(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s item %d", fieldName, i)
		}
		items = append(items, item)
	}
	return items, nil
}

// readHash reads a single 32-byte hash. It is shaped for use with
// ReadSequence.
func readHash(r io.Reader) (chainhash.Hash, error) {
	var hash chainhash.Hash
	err := ReadElement(r, &hash)
	return hash, err
}

// writeHash writes a single 32-byte hash. It is shaped for use with
// WriteSequence.
func writeHash(w io.Writer, hash chainhash.Hash) error {
	return WriteElement(w, &hash)
}
