// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/kaspanet/btcwire/wire"
)

const (
	// MaxScriptNumLen is the longest encoding a ScriptNum can have: eight
	// bytes of magnitude plus a separate sign byte.
	MaxScriptNumLen = 9

	// DefaultScriptNumLen is the length limit consensus applies to numeric
	// operands.
	DefaultScriptNumLen = 4
)

// ScriptNum represents a numeric value used in the scripting engine with
// special handling to deal with the subtle semantics required by consensus.
//
// All numbers are stored on the data and alternate stacks encoded as little
// endian with a sign bit. The most significant bit of the final byte carries
// the sign, and when the magnitude itself needs that bit an extra byte holding
// only the sign is appended. Zero encodes as an empty byte slice.
//
// Decoding with requireMinimal unset is lenient: negative zero and
// non-minimal encodings are accepted and yield the value they spell.
type ScriptNum int64

// Bytes returns the number serialized as a little endian with a sign bit.
//
// Example encodings:
//
//	   127 -> [0x7f]
//	  -127 -> [0xff]
//	   128 -> [0x80 0x00]
//	  -128 -> [0x80 0x80]
//	   129 -> [0x81 0x00]
//	  -129 -> [0x81 0x80]
//	   256 -> [0x00 0x01]
//	  -256 -> [0x00 0x81]
//	 32767 -> [0xff 0x7f]
//	-32767 -> [0xff 0xff]
//	 32768 -> [0x00 0x80 0x00]
//	-32768 -> [0x00 0x80 0x80]
func (n ScriptNum) Bytes() []byte {
	// Zero encodes as an empty byte slice.
	if n == 0 {
		return nil
	}

	// Take the absolute value and keep track of whether it was originally
	// negative. Working on the unsigned magnitude keeps the most negative
	// int64 representable.
	isNegative := n < 0
	magnitude := uint64(n)
	if isNegative {
		magnitude = -magnitude
	}

	// Encode to little endian. The maximum number of encoded bytes is 9
	// (8 bytes for max int64 plus a potential byte for sign extension).
	result := make([]byte, 0, MaxScriptNumLen)
	for magnitude > 0 {
		result = append(result, byte(magnitude&0xff))
		magnitude >>= 8
	}

	// When the most significant byte already has the high bit set, an
	// additional high byte is required to indicate whether the number is
	// negative or positive. The additional byte is removed when converting
	// back to an integral and its high bit is used to denote the sign.
	//
	// Otherwise, when the most significant byte does not already have the
	// high bit set, use it to indicate the value is negative, if needed.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 returns the script number clamped to a valid int32. That is to say
// when the script number is higher than the max allowed int32, the max int32
// value is returned and vice versa for the minimum value.
func (n ScriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}
	if n < minInt32 {
		return minInt32
	}
	return int32(n)
}

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)

// checkMinimalDataEncoding returns whether or not the passed byte array
// adheres to the minimal encoding requirements.
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}

	// Check that the number is encoded with the minimum possible
	// number of bytes.
	//
	// If the most-significant-byte - excluding the sign bit - is zero
	// then we're not minimal. Note how this test also rejects the
	// negative-zero encoding, [0x80].
	if v[len(v)-1]&0x7f == 0 {
		// One exception: if there's more than one byte and the most
		// significant bit of the second-most-significant-byte is set
		// it would conflict with the sign bit. An example of this case
		// is +-255, which encode to 0xff00 and 0xff80 respectively.
		// (big-endian).
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			str := fmt.Sprintf("numeric value encoded as %x is "+
				"not minimally encoded", v)
			return &wire.MessageError{Func: "checkMinimalDataEncoding",
				Code: wire.ErrMalformedData, Description: str}
		}
	}

	return nil
}

// MakeScriptNum interprets the passed serialized bytes as an encoded integer
// and returns the result as a ScriptNum. The whole slice is consumed.
//
// An encoding longer than scriptNumLen is rejected, as is one too long for
// any int64 or whose value does not fit in an int64. When requireMinimal is
// set, encodings that are not the shortest form of their value, negative
// zero included, are rejected as well.
func MakeScriptNum(v []byte, requireMinimal bool, scriptNumLen int) (ScriptNum, error) {
	maxLen := min(scriptNumLen, MaxScriptNumLen)
	if len(v) > maxLen {
		str := fmt.Sprintf("numeric value encoded as %x is %d bytes which "+
			"exceeds the max allowed of %d", v, len(v), maxLen)
		return 0, &wire.MessageError{Func: "MakeScriptNum",
			Code: wire.ErrLimitExceeded, Description: str}
	}

	if requireMinimal {
		err := checkMinimalDataEncoding(v)
		if err != nil {
			return 0, err
		}
	}

	// Zero is encoded as an empty byte slice.
	if len(v) == 0 {
		return 0, nil
	}

	// Decode from little endian.
	var magnitude uint64
	var overflow bool
	for i, val := range v {
		if i == len(v)-1 {
			val &= 0x7f
		}
		if i >= 8 {
			overflow = overflow || val != 0
			continue
		}
		magnitude |= uint64(val) << uint8(8*i)
	}

	// When the most significant byte of the input bytes has the sign bit
	// set, the result is negative.
	isNegative := v[len(v)-1]&0x80 != 0
	const limit = uint64(1) << 63
	if overflow || magnitude > limit || (magnitude == limit && !isNegative) {
		str := fmt.Sprintf("numeric value encoded as %x does not fit in "+
			"64 bits", v)
		return 0, &wire.MessageError{Func: "MakeScriptNum",
			Code: wire.ErrDomainViolation, Description: str}
	}

	if isNegative {
		return ScriptNum(-magnitude), nil
	}
	return ScriptNum(magnitude), nil
}
