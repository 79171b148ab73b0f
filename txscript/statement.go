package txscript

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/kaspanet/btcwire/util/binaryserializer"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// StatementKind tells which kind of instruction a Statement holds.
type StatementKind uint8

const (
	// StatementValue pushes a signed integer.
	StatementValue StatementKind = iota

	// StatementData pushes a byte string.
	StatementData

	// StatementOp is a single opcode emitted verbatim.
	StatementOp
)

// Statement is one instruction of a script under construction. Statements
// only flow towards bytecode: Compile turns them into a wire.Script using the
// shortest push for every value and byte string, and nothing turns bytecode
// back into statements.
type Statement struct {
	kind  StatementKind
	value int64
	data  []byte
	op    byte
}

// ValueStatement returns a statement pushing val.
func ValueStatement(val int64) Statement {
	return Statement{kind: StatementValue, value: val}
}

// DataStatement returns a statement pushing data. The slice is not copied.
func DataStatement(data []byte) Statement {
	return Statement{kind: StatementData, data: data}
}

// OpStatement returns a statement emitting the single opcode op.
func OpStatement(op byte) Statement {
	return Statement{kind: StatementOp, op: op}
}

// Kind returns the kind of the statement.
func (s Statement) Kind() StatementKind {
	return s.kind
}

// String returns the statement in the text form understood by
// ParseStatements.
func (s Statement) String() string {
	switch s.kind {
	case StatementValue:
		return fmt.Sprintf("%d", s.value)
	case StatementData:
		return "[" + hex.EncodeToString(s.data) + "]"
	default:
		return OpcodeName(s.op)
	}
}

// appendTo appends the bytecode of the statement to script.
func (s Statement) appendTo(script []byte) ([]byte, error) {
	switch s.kind {
	case StatementOp:
		return append(script, s.op), nil

	case StatementValue:
		switch {
		case s.value == 0:
			return append(script, Op0), nil
		case s.value == -1:
			return append(script, Op1Negate), nil
		case s.value >= 1 && s.value <= 16:
			return append(script, byte((Op1-1)+s.value)), nil
		}
		// A ScriptNum is at most 9 bytes, so a direct push always fits.
		num := ScriptNum(s.value).Bytes()
		script = append(script, byte((OpData1-1)+len(num)))
		return append(script, num...), nil

	case StatementData:
		return appendPush(script, s.data)
	}

	str := fmt.Sprintf("unknown statement kind %d", s.kind)
	return nil, &wire.MessageError{Func: "Statement.appendTo",
		Code: wire.ErrMalformedDiscriminant, Description: str}
}

// appendPush appends the shortest push of data to script.
func appendPush(script []byte, data []byte) ([]byte, error) {
	if len(data) == 1 {
		switch b := data[0]; {
		case b == 0x00 || b == 0x80:
			return append(script, Op0), nil
		case b == 0x81:
			return append(script, Op1Negate), nil
		case b >= 1 && b <= 16:
			return append(script, (Op1-1)+b), nil
		}
	}

	prefix, err := pushPrefix(uint64(len(data)))
	if err != nil {
		return nil, err
	}
	script = append(script, prefix...)
	return append(script, data...), nil
}

// pushPrefix returns the opcode and length bytes introducing a push of
// dataLen bytes.
func pushPrefix(dataLen uint64) ([]byte, error) {
	switch {
	case dataLen == 0:
		return []byte{Op0}, nil

	case dataLen < OpPushData1:
		return []byte{byte((OpData1 - 1) + dataLen)}, nil

	case dataLen <= math.MaxUint8:
		return []byte{OpPushData1, byte(dataLen)}, nil

	case dataLen <= math.MaxUint16:
		prefix := []byte{OpPushData2, 0, 0}
		binaryserializer.LittleEndian.PutUint16(prefix[1:], uint16(dataLen))
		return prefix, nil

	case dataLen <= math.MaxUint32:
		prefix := []byte{OpPushData4, 0, 0, 0, 0}
		binaryserializer.LittleEndian.PutUint32(prefix[1:], uint32(dataLen))
		return prefix, nil
	}

	str := fmt.Sprintf("data is too long to push: %d bytes", dataLen)
	return nil, &wire.MessageError{Func: "pushPrefix",
		Code: wire.ErrDomainViolation, Description: str}
}

// defaultScriptAlloc is the default capacity of a script being compiled.
const defaultScriptAlloc = 500

// Compile encodes statements into bytecode.
func Compile(statements []Statement) (wire.Script, error) {
	script := make([]byte, 0, defaultScriptAlloc)
	for i, s := range statements {
		var err error
		script, err = s.appendTo(script)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile statement %d", i)
		}
	}
	return script, nil
}
