package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/util/merkleblock"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

func decodeHeader(cfg *configFlags, conf *decodeHeaderConfig, out io.Writer) error {
	serialized, err := decodeHex("header", conf.Header)
	if err != nil {
		return err
	}
	var header wire.BlockHeader
	err = decodeExact("header", serialized, cfg.media(), &header)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	describeHeader(&buf, &header)
	_, err = out.Write(buf.Bytes())
	return errors.WithStack(err)
}

func describeHeader(buf *bytes.Buffer, header *wire.BlockHeader) {
	fmt.Fprintf(buf, "hash:       %s\n", header.BlockHash())
	fmt.Fprintf(buf, "version:    %d\n", header.Version)
	fmt.Fprintf(buf, "prevblock:  %s\n", header.PrevBlock)
	fmt.Fprintf(buf, "merkleroot: %s\n", header.MerkleRoot)
	fmt.Fprintf(buf, "time:       %s\n", header.Time().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(buf, "bits:       %08x\n", header.Bits)
	fmt.Fprintf(buf, "nonce:      %d\n", header.Nonce)
}

func decodeMerkleBlock(cfg *configFlags, conf *decodeMerkleBlockConfig, out io.Writer) error {
	serialized, err := decodeHex("merkleblock", conf.MerkleBlock)
	if err != nil {
		return err
	}
	var msg wire.MsgMerkleBlock
	err = decodeExact("merkleblock", serialized, cfg.media(), &msg)
	if err != nil {
		return err
	}

	return describeMerkleBlock(out, &msg)
}

func describeMerkleBlock(out io.Writer, msg *wire.MsgMerkleBlock) error {
	extraction, err := merkleblock.Extract(&msg.Tree)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	describeHeader(&buf, &msg.Header)
	fmt.Fprintf(&buf, "transactions: %d\n", msg.Tree.Transactions)
	fmt.Fprintf(&buf, "hashes:       %d\n", len(msg.Tree.Hashes))
	fmt.Fprintf(&buf, "flags:        %s\n", msg.Tree.Flags)
	fmt.Fprintf(&buf, "root:         %s\n", extraction.Root)
	fmt.Fprintf(&buf, "verified:     %t\n", extraction.Root == msg.Header.MerkleRoot)
	fmt.Fprintf(&buf, "matches:      %d\n", len(extraction.Matches))
	for i, match := range extraction.Matches {
		fmt.Fprintf(&buf, "  [%d] %s\n", extraction.Indices[i], match)
	}

	_, err = out.Write(buf.Bytes())
	return errors.WithStack(err)
}
