package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

// readHexInput returns the bytes given either directly as hex or through a
// file holding hex. Exactly one of the two must be set.
func readHexInput(name, value, file string) ([]byte, error) {
	if value == "" && file == "" {
		return nil, errors.Errorf("Either --%s or --%s-file is required", name, name)
	}
	if value != "" && file != "" {
		return nil, errors.Errorf("Both --%s and --%s-file cannot be passed at the same time", name, name)
	}

	hexString := value
	if file != "" {
		hexBytes, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read hex from %s", file)
		}
		hexString = string(hexBytes)
	}
	return decodeHex(name, hexString)
}

func decodeHex(name, hexString string) ([]byte, error) {
	decoded, err := hex.DecodeString(strings.TrimSpace(hexString))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not valid hex", name)
	}
	return decoded, nil
}

// decodeExact decodes v from serialized and fails when bytes are left over.
func decodeExact(name string, serialized []byte, media wire.Media, v wire.Decodable) error {
	consumed, err := wire.Decode(serialized, media, v)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", name)
	}
	if consumed != len(serialized) {
		return errors.Errorf("%s has %d trailing bytes after %d decoded bytes",
			name, len(serialized)-consumed, consumed)
	}
	return nil
}

func decodeTransaction(cfg *configFlags, value, file string) (*wire.MsgTx, []byte, error) {
	serialized, err := readHexInput("transaction", value, file)
	if err != nil {
		return nil, nil, err
	}
	tx := &wire.MsgTx{}
	err = decodeExact("transaction", serialized, cfg.media(), tx)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("Decoded a %d byte transaction", len(serialized))
	return tx, serialized, nil
}
