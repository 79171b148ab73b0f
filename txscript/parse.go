package txscript

import (
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	shortFormOps     map[string]byte
	shortFormOpsOnce sync.Once
)

// buildShortFormOps returns the opcode names accepted by ParseStatements. Every
// name is accepted with its OP_ prefix, and without it where that does not
// clash with a plain number.
func buildShortFormOps() map[string]byte {
	ops := make(map[string]byte, 2*len(OpcodeByName))
	for opcodeName, opcodeValue := range OpcodeByName {
		if strings.Contains(opcodeName, "OP_UNKNOWN") {
			continue
		}
		ops[opcodeName] = opcodeValue

		// The opcodes named OP_# can't have the OP_ prefix stripped or
		// they would conflict with the plain numbers. Also, since
		// OP_FALSE and OP_TRUE are aliases for the OP_0, and OP_1,
		// respectively, they have the same value, so detect those by
		// name and allow them.
		if (opcodeName == "OP_FALSE" || opcodeName == "OP_TRUE") ||
			(opcodeValue != Op0 && (opcodeValue < Op1 ||
				opcodeValue > Op16)) {

			ops[strings.TrimPrefix(opcodeName, "OP_")] = opcodeValue
		}
	}
	return ops
}

// ParseStatements parses a script written in the short form used by the
// reference script tests:
//   - Opcodes other than the push opcodes and unknown are present as
//     either OP_NAME or just NAME
//   - Plain numbers are made into value statements
//   - Numbers beginning with 0x are inserted into the bytecode as-is (so
//     0x14 is OP_DATA_20)
//   - Hex between brackets, like [76a9], is pushed as data
//   - Single quoted strings are pushed as data
//   - Anything else is an error
func ParseStatements(script string) ([]Statement, error) {
	shortFormOpsOnce.Do(func() {
		shortFormOps = buildShortFormOps()
	})

	var statements []Statement
	for _, tok := range strings.Fields(script) {
		if num, err := strconv.ParseInt(tok, 10, 64); err == nil {
			statements = append(statements, ValueStatement(num))
			continue
		}

		switch {
		case len(tok) > 2 && strings.HasPrefix(tok, "0x"):
			raw, err := hex.DecodeString(tok[2:])
			if err != nil {
				return nil, errors.Wrapf(err, "bad hex token %q", tok)
			}
			for _, b := range raw {
				statements = append(statements, OpStatement(b))
			}

		case len(tok) >= 2 && tok[0] == '[' && tok[len(tok)-1] == ']':
			data, err := hex.DecodeString(tok[1 : len(tok)-1])
			if err != nil {
				return nil, errors.Wrapf(err, "bad data token %q", tok)
			}
			statements = append(statements, DataStatement(data))

		case len(tok) >= 2 && tok[0] == '\'' && tok[len(tok)-1] == '\'':
			statements = append(statements, DataStatement([]byte(tok[1:len(tok)-1])))

		default:
			opcode, ok := shortFormOps[tok]
			if !ok {
				return nil, errors.Errorf("bad token %q", tok)
			}
			statements = append(statements, OpStatement(opcode))
		}
	}
	return statements, nil
}
