// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/kaspanet/btcwire/wire"
)

// defaultStatementAlloc is the default size used for the backing array of the
// statements collected by a ScriptBuilder.
const defaultStatementAlloc = 32

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints, and data and compiles them with the shortest
// pushes available. It does not check that the script will execute.
//
// For example, the following would build a pay-to-pubkey-hash script:
//
//	builder := txscript.NewScriptBuilder()
//	builder.AddOp(txscript.OpDup).AddOp(txscript.OpHash160)
//	builder.AddData(pubKeyHash)
//	builder.AddOp(txscript.OpEqualVerify).AddOp(txscript.OpCheckSig)
//	script, err := builder.Script()
//	if err != nil {
//		// Handle the error.
//		return
//	}
//	fmt.Printf("Final pay-to-pubkey-hash script: %x\n", script)
type ScriptBuilder struct {
	statements []Statement
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	b.statements = append(b.statements, OpStatement(opcode))
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	for _, opcode := range opcodes {
		b.AddOp(opcode)
	}
	return b
}

// AddData pushes the passed data to the end of the script. A zero length
// buffer will lead to a push of empty data onto the stack (Op0).
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	b.statements = append(b.statements, DataStatement(data))
	return b
}

// AddInt64 pushes the passed integer to the end of the script.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	b.statements = append(b.statements, ValueStatement(val))
	return b
}

// AddStatements appends already built statements to the end of the script.
func (b *ScriptBuilder) AddStatements(statements ...Statement) *ScriptBuilder {
	b.statements = append(b.statements, statements...)
	return b
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.statements = b.statements[0:0]
	return b
}

// Statements returns the statements added so far.
func (b *ScriptBuilder) Statements() []Statement {
	return b.statements
}

// Script compiles the statements added so far.
func (b *ScriptBuilder) Script() (wire.Script, error) {
	return Compile(b.statements)
}

// NewScriptBuilder returns a new instance of a script builder. See
// ScriptBuilder for details.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		statements: make([]Statement, 0, defaultStatementAlloc),
	}
}
