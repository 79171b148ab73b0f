// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestAddr(t *testing.T) {
	msg := NewMsgAddr()
	if cmd := msg.Command(); cmd != "addr" {
		t.Errorf("Command: got %q want %q", cmd, "addr")
	}

	tests := []struct {
		pver    uint32
		payload uint32
	}{
		// Num addresses (varInt) + max allowed addresses.
		{ProtocolVersion, 9 + MaxAddrPerMsg*30},
		{NetAddressTimeVersion, 9 + MaxAddrPerMsg*30},
		{NetAddressTimeVersion - 1, 9 + MaxAddrPerMsg*26},
	}
	for i, test := range tests {
		if maxPayload := msg.MaxPayloadLength(test.pver); maxPayload != test.payload {
			t.Errorf("MaxPayloadLength #%d: got %v want %v", i, maxPayload, test.payload)
		}
	}

	tcpAddr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8333}
	na := NewNetAddress(tcpAddr, SFNodeNetwork)
	err := msg.AddAddress(na)
	if err != nil {
		t.Errorf("AddAddress: %v", err)
	}
	if msg.AddrList[0] != na {
		t.Errorf("AddAddress: wrong address added - got %v, want %v",
			spew.Sprint(msg.AddrList[0]), spew.Sprint(na))
	}

	msg.ClearAddresses()
	if len(msg.AddrList) != 0 {
		t.Errorf("ClearAddresses: address list is not empty - got %v [%v], want %v",
			len(msg.AddrList), spew.Sprint(msg.AddrList[0]), 0)
	}

	for i := 0; i < MaxAddrPerMsg; i++ {
		err = msg.AddAddress(na)
		if err != nil {
			t.Fatalf("AddAddress #%d: %v", i, err)
		}
	}
	err = msg.AddAddresses(na)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("AddAddresses: got %v want %v", err, ErrLimitExceeded)
	}
}

// TestAddrWire tests the MsgAddr wire encode and decode on both sides of the
// address timestamp gate.
func TestAddrWire(t *testing.T) {
	na := &NetAddress{
		Timestamp: time.Unix(0x495fab29, 0),
		Services:  SFNodeNetwork,
		IP:        net.ParseIP("127.0.0.1"),
		Port:      8333,
	}
	noTime := *na
	noTime.Timestamp = time.Time{}

	noAddr := NewMsgAddr()
	oneAddr := NewMsgAddr()
	oneAddr.AddAddress(na)
	oneAddrNoTime := NewMsgAddr()
	oneAddrNoTime.AddAddress(&noTime)

	addrBytes := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // SFNodeNetwork
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xff, 0xff, 0x7f, 0x00, 0x00, 0x01, // IP 127.0.0.1
		0x20, 0x8d, // Port 8333 in big-endian
	}
	oneAddrEncoded := append([]byte{
		0x01,                   // Varint for number of addresses
		0x29, 0xab, 0x5f, 0x49, // Timestamp
	}, addrBytes...)
	oneAddrNoTimeEncoded := append([]byte{0x01}, addrBytes...)

	tests := []struct {
		name string
		pver uint32
		in   *MsgAddr
		out  *MsgAddr
		buf  []byte
	}{
		{"no addresses", ProtocolVersion, noAddr, noAddr, []byte{0x00}},
		{"latest", ProtocolVersion, oneAddr, oneAddr, oneAddrEncoded},
		{"time version", NetAddressTimeVersion, oneAddr, oneAddr, oneAddrEncoded},
		{"before time version", NetAddressTimeVersion - 1, oneAddr, oneAddrNoTime, oneAddrNoTimeEncoded},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		media := NetworkMedia(test.pver)

		var buf bytes.Buffer
		err := test.in.BtcEncode(&buf, media)
		if err != nil {
			t.Errorf("BtcEncode %s: %v", test.name, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("BtcEncode %s\n got: %s want: %s", test.name,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.buf))
			continue
		}

		var msg MsgAddr
		consumed, err := Decode(test.buf, media, &msg)
		if err != nil {
			t.Errorf("BtcDecode %s: %v", test.name, err)
			continue
		}
		if consumed != len(test.buf) {
			t.Errorf("BtcDecode %s: consumed %d of %d bytes", test.name,
				consumed, len(test.buf))
		}
		if !reflect.DeepEqual(msg.AddrList, test.out.AddrList) {
			t.Errorf("BtcDecode %s\n got: %s want: %s", test.name,
				spew.Sdump(msg.AddrList), spew.Sdump(test.out.AddrList))
		}
	}
}

// TestAddrWireErrors performs negative tests against wire encode and decode
// of MsgAddr to confirm error paths work correctly.
func TestAddrWireErrors(t *testing.T) {
	media := NetworkMedia(ProtocolVersion)

	tooMany := &MsgAddr{AddrList: make([]*NetAddress, MaxAddrPerMsg+1)}
	_, err := Encode(tooMany, media)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("Encode too many addresses: got %v want %v", err, ErrLimitExceeded)
	}

	// Varint for 1001 addresses and nothing else.
	var msg MsgAddr
	_, err = Decode([]byte{0xfd, 0xe9, 0x03}, media, &msg)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("Decode too many addresses: got %v want %v", err, ErrLimitExceeded)
	}

	_, err = Decode([]byte{0x01, 0x29, 0xab}, media, &msg)
	if !IsTruncated(err) {
		t.Errorf("Decode truncated address: got %v want a truncation", err)
	}
}
