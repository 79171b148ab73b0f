package wire

import (
	"io"
	"math/bits"
	"strings"
)

// BitVector is a packed sequence of bits. In memory bit i is the
// (0x80 >> (i % 8)) bit of byte i/8. On the wire every byte is mirrored, so
// bit i travels as the (1 << (i % 8)) bit.
type BitVector struct {
	bytes []byte
}

// NewBitVector packs flags into a BitVector. The length is rounded up to a
// whole number of bytes with false bits.
func NewBitVector(flags []bool) BitVector {
	packed := make([]byte, (len(flags)+7)/8)
	for i, bit := range flags {
		if bit {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return BitVector{bytes: packed}
}

// NewBitVectorFromBytes wraps an in-memory packing. The slice is copied.
func NewBitVectorFromBytes(packed []byte) BitVector {
	bytes := make([]byte, len(packed))
	copy(bytes, packed)
	return BitVector{bytes: bytes}
}

// Len returns the number of bits held, always a multiple of eight.
func (v BitVector) Len() int {
	return len(v.bytes) * 8
}

// Bit returns bit i. Bits past the end read as false.
func (v BitVector) Bit(i int) bool {
	if i < 0 || i >= v.Len() {
		return false
	}
	return v.bytes[i/8]&(0x80>>(i%8)) != 0
}

// Bits unpacks the vector.
func (v BitVector) Bits() []bool {
	out := make([]bool, v.Len())
	for i := range out {
		out[i] = v.Bit(i)
	}
	return out
}

// Bytes returns a copy of the in-memory packing.
func (v BitVector) Bytes() []byte {
	return NewBitVectorFromBytes(v.bytes).bytes
}

// String renders the bits as a string of zeros and ones, bit 0 first.
func (v BitVector) String() string {
	var sb strings.Builder
	for i := 0; i < v.Len(); i++ {
		if v.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// wireBytes returns the packing with every byte mirrored.
func (v BitVector) wireBytes() []byte {
	out := make([]byte, len(v.bytes))
	for i, b := range v.bytes {
		out[i] = bits.Reverse8(b)
	}
	return out
}

// encode writes the vector as length-prefixed mirrored bytes.
func (v BitVector) encode(w io.Writer, maxBytes uint64) error {
	return WriteVarBytes(w, maxBytes, v.wireBytes())
}

// decode reads length-prefixed mirrored bytes into the receiver.
func (v *BitVector) decode(r io.Reader, maxBytes uint64, fieldName string) error {
	raw, err := ReadVarBytes(r, maxBytes, fieldName)
	if err != nil {
		return err
	}
	for i, b := range raw {
		raw[i] = bits.Reverse8(b)
	}
	v.bytes = raw
	return nil
}
