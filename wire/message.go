// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = 1024 * 1024 * 32 // 32MB

// Commands used in bitcoin message headers which describe the type of message.
const (
	CmdTx          = "tx"
	CmdBlock       = "block"
	CmdHeaders     = "headers"
	CmdGetBlocks   = "getblocks"
	CmdGetHeaders  = "getheaders"
	CmdInv         = "inv"
	CmdGetData     = "getdata"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdMerkleBlock = "merkleblock"
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdAddr        = "addr"
	CmdGetAddr     = "getaddr"
	CmdNotFound    = "notfound"
	CmdReject      = "reject"
	CmdMemPool     = "mempool"
	CmdSendHeaders = "sendheaders"
	CmdFilterLoad  = "filterload"
	CmdFilterAdd   = "filteradd"
	CmdFilterClear = "filterclear"
)

// Message is an interface that describes a bitcoin message body. A type
// that implements Message has complete control over the representation of
// its data and may therefore contain additional or fewer fields than those
// which are used directly in the protocol encoded message.
type Message interface {
	Encodable
	Decodable
	Command() string
	MaxPayloadLength(pver uint32) uint32
}

// MakeEmptyMessage creates a message of the appropriate concrete type based
// on the command.
func MakeEmptyMessage(command string) (Message, error) {
	var msg Message
	switch command {
	case CmdTx:
		msg = &MsgTx{}

	case CmdBlock:
		msg = &MsgBlock{}

	case CmdHeaders:
		msg = &MsgHeaders{}

	case CmdGetBlocks:
		msg = &MsgGetBlocks{}

	case CmdGetHeaders:
		msg = &MsgGetHeaders{}

	case CmdInv:
		msg = &MsgInv{}

	case CmdGetData:
		msg = &MsgGetData{}

	case CmdPing:
		msg = &MsgPing{}

	case CmdPong:
		msg = &MsgPong{}

	case CmdMerkleBlock:
		msg = &MsgMerkleBlock{}

	case CmdVersion:
		msg = &MsgVersion{}

	case CmdVerAck:
		msg = &MsgVerAck{}

	case CmdAddr:
		msg = &MsgAddr{}

	case CmdGetAddr:
		msg = &MsgGetAddr{}

	case CmdNotFound:
		msg = &MsgNotFound{}

	case CmdReject:
		msg = &MsgReject{}

	case CmdMemPool:
		msg = &MsgMemPool{}

	case CmdSendHeaders:
		msg = &MsgSendHeaders{}

	case CmdFilterLoad:
		msg = &MsgFilterLoad{}

	case CmdFilterAdd:
		msg = &MsgFilterAdd{}

	case CmdFilterClear:
		msg = &MsgFilterClear{}

	default:
		return nil, messageError("MakeEmptyMessage", ErrMalformedDiscriminant,
			fmt.Sprintf("unhandled command [%s]", command))
	}
	return msg, nil
}
