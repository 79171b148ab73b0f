package wire

import (
	"encoding/hex"
	"io"
)

// maxScriptSize is the largest script accepted when decoding. Scripts carry
// no limit of their own on the wire, so they are bounded by the general
// message payload limit.
const maxScriptSize = MaxMessagePayload

// Script is compiled script bytecode. It encodes as a compact size length
// followed by the raw bytes.
type Script []byte

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (s Script) BtcEncode(w io.Writer, media Media) error {
	return WriteVarBytes(w, Unbounded, s)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (s *Script) BtcDecode(r io.Reader, media Media) error {
	b, err := ReadVarBytes(r, maxScriptSize, "script")
	if err != nil {
		return err
	}
	*s = b
	return nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// script.
func (s Script) SerializeSize() int {
	return VarIntSerializeSize(uint64(len(s))) + len(s)
}

// String returns the script bytecode as hex.
func (s Script) String() string {
	return hex.EncodeToString(s)
}
