package txscript

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaspanet/btcwire/util/binaryserializer"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// parsedOpcode is an opcode together with the data it pushes, if any.
type parsedOpcode struct {
	opcode *opcode
	data   []byte
}

// print returns a human-readable string representation of the opcode for use
// in script disassembly.
func (pop *parsedOpcode) print() string {
	// Small integers and OP_1NEGATE are shown as the numbers they push.
	switch {
	case isSmallInt(pop.opcode.value):
		return strconv.Itoa(asSmallInt(pop.opcode.value))
	case pop.opcode.value == Op1Negate:
		return "-1"
	case pop.opcode.length == 1:
		return pop.opcode.name
	}
	return "[" + hex.EncodeToString(pop.data) + "]"
}

// parseScript splits a script into its opcodes. It fails when a push claims
// more data than the script holds.
func parseScript(script []byte) ([]parsedOpcode, error) {
	var pops []parsedOpcode
	for i := 0; i < len(script); {
		op := &opcodeArray[script[i]]
		pop := parsedOpcode{opcode: op}

		switch {
		case op.length == 1:
			i++

		case op.length > 1:
			if len(script[i:]) < op.length {
				return pops, malformedPush(op, i, op.length-1, len(script[i+1:]))
			}
			pop.data = script[i+1 : i+op.length]
			i += op.length

		default:
			lenSize := -op.length
			off := i + 1
			if len(script[off:]) < lenSize {
				return pops, malformedPush(op, i, lenSize, len(script[off:]))
			}

			var dataLen uint64
			switch lenSize {
			case 1:
				dataLen = uint64(script[off])
			case 2:
				dataLen = uint64(binaryserializer.LittleEndian.Uint16(script[off:]))
			case 4:
				dataLen = uint64(binaryserializer.LittleEndian.Uint32(script[off:]))
			}
			off += lenSize

			if uint64(len(script[off:])) < dataLen {
				return pops, malformedPush(op, i, int(dataLen), len(script[off:]))
			}
			pop.data = script[off : off+int(dataLen)]
			i = off + int(dataLen)
		}

		pops = append(pops, pop)
	}
	return pops, nil
}

func malformedPush(op *opcode, offset, want, have int) error {
	str := fmt.Sprintf("opcode %s at offset %d requires %d bytes, but "+
		"script only has %d remaining", op.name, offset, want, have)
	return &wire.MessageError{Func: "parseScript", Code: wire.ErrMalformedData,
		Description: str}
}

// DisasmString formats a disassembled script for one line printing. Pushed
// data is shown as hex between brackets and small integers as decimal. When
// the script fails to parse, the returned string contains the disassembly up
// to the failure point with "[error]" appended, along with the error.
//
// The output is meant for people. Bytecode is never turned back into
// statements.
func DisasmString(script []byte) (string, error) {
	pops, err := parseScript(script)

	parts := make([]string, 0, len(pops)+1)
	for i := range pops {
		parts = append(parts, pops[i].print())
	}
	if err != nil {
		parts = append(parts, "[error]")
	}
	return strings.Join(parts, " "), err
}

// PushedData returns every data push in the script, small integer pushes
// excluded.
func PushedData(script []byte) ([][]byte, error) {
	pops, err := parseScript(script)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var data [][]byte
	for _, pop := range pops {
		if pop.data != nil {
			data = append(data, pop.data)
		}
	}
	return data, nil
}
