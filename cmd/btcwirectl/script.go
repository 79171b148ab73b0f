package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/txscript"
	"github.com/pkg/errors"
)

func compileScript(conf *compileScriptConfig, out io.Writer) error {
	statements, err := txscript.ParseStatements(conf.Script)
	if err != nil {
		return err
	}
	script, err := txscript.Compile(statements)
	if err != nil {
		return err
	}
	disassembled, err := txscript.DisasmString(script)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "hex:    %s\nasm:    %s\n", hex.EncodeToString(script), disassembled)
	return errors.WithStack(err)
}

func disasm(conf *disasmConfig, out io.Writer) error {
	script, err := decodeHex("script", conf.Script)
	if err != nil {
		return err
	}
	disassembled, err := txscript.DisasmString(script)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, disassembled)
	return errors.WithStack(err)
}
