// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"math"
	"net"
	"strings"
	"time"

	"github.com/kaspanet/btcwire/util/binaryserializer"
)

// ServiceFlag identifies services supported by a bitcoin peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork is a flag used to indicate a peer is a full node.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO is a flag used to indicate a peer supports the
	// getutxos and utxos commands (BIP0064).
	SFNodeGetUTXO

	// SFNodeBloom is a flag used to indicate a peer supports bloom
	// filtering.
	SFNodeBloom

	// SFNodeWitness is a flag used to indicate a peer supports blocks
	// and transactions including witness data (BIP0144).
	SFNodeWitness
)

// Map of service flags back to their constant names for pretty printing.
var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
	SFNodeWitness: "SFNodeWitness",
}

// orderedSFStrings is an ordered list of service flags from highest to
// lowest.
var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
	SFNodeWitness,
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	// No flags are set.
	if f == 0 {
		return "0x0"
	}

	// Add individual bit flags.
	var flags []string
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			flags = append(flags, sfStrings[flag])
			f -= flag
		}
	}

	// Add any remaining flags which aren't accounted for as hex.
	if f != 0 {
		flags = append(flags, fmt.Sprintf("0x%x", uint64(f)))
	}
	return strings.Join(flags, "|")
}

// maxNetAddressPayload returns the max payload size for a bitcoin NetAddress
// based on the protocol version.
func maxNetAddressPayload(pver uint32) uint32 {
	// Services 8 bytes + ip 16 bytes + port 2 bytes.
	plen := uint32(26)

	// NetAddressTimeVersion added a timestamp field.
	if pver >= NetAddressTimeVersion {
		// Timestamp 4 bytes.
		plen += 4
	}

	return plen
}

// NetAddress defines information about a peer on the network including the time
// it was last seen, the services it supports, its IP address, and port.
type NetAddress struct {
	// Last time the address was seen. This is encoded as a uint32 on the
	// wire and therefore has second precision. The zero time travels as 0.
	Timestamp time.Time

	// Bitfield which identifies the services supported by the address.
	Services ServiceFlag

	// IP address of the peer.
	IP net.IP

	// Port the peer is using. This is encoded in big endian on the wire
	// which differs from most everything else.
	Port uint16
}

// HasService returns whether the specified service is supported by the address.
func (na *NetAddress) HasService(service ServiceFlag) bool {
	return na.Services&service == service
}

// AddService adds service as a supported service by the peer generating the
// message.
func (na *NetAddress) AddService(service ServiceFlag) {
	na.Services |= service
}

// TCPAddress converts the NetAddress to *net.TCPAddr
func (na *NetAddress) TCPAddress() *net.TCPAddr {
	return &net.TCPAddr{
		IP:   na.IP,
		Port: int(na.Port),
	}
}

// String returns the address with the time it was last seen.
func (na *NetAddress) String() string {
	return fmt.Sprintf("addr=%s, time=%d", na.TCPAddress(), na.Timestamp.Unix())
}

// NewNetAddressIPPort returns a new NetAddress using the provided IP, port, and
// supported services with defaults for the remaining fields.
func NewNetAddressIPPort(ip net.IP, port uint16, services ServiceFlag) *NetAddress {
	return NewNetAddressTimestamp(time.Now(), services, ip, port)
}

// NewNetAddressTimestamp returns a new NetAddress using the provided
// timestamp, IP, port, and supported services. The timestamp is rounded to
// single second precision.
func NewNetAddressTimestamp(
	timestamp time.Time, services ServiceFlag, ip net.IP, port uint16) *NetAddress {
	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &NetAddress{
		Timestamp: time.Unix(timestamp.Unix(), 0),
		Services:  services,
		IP:        ip,
		Port:      port,
	}
}

// NewNetAddress returns a new NetAddress using the provided TCP address and
// supported services with defaults for the remaining fields.
func NewNetAddress(addr *net.TCPAddr, services ServiceFlag) *NetAddress {
	return NewNetAddressIPPort(addr.IP, uint16(addr.Port), services)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// The timestamp is expected wherever the media carries one.
func (na *NetAddress) BtcDecode(r io.Reader, media Media) error {
	return readNetAddress(r, media, na, true)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// The timestamp is written wherever the media carries one.
func (na *NetAddress) BtcEncode(w io.Writer, media Media) error {
	return writeNetAddress(w, media, na, true)
}

// netAddressHasTime reports whether an address encodes its timestamp under
// media. Disk always stores it. Elsewhere it is present only when the
// surrounding message carries one, the peer is new enough and the encoding is
// not for hashing.
func netAddressHasTime(media Media, ts bool) bool {
	if media.IsDisk() {
		return true
	}
	return ts && !media.IsHash() && media.ProtocolVersion() >= NetAddressTimeVersion
}

// readNetAddress reads an encoded NetAddress from r depending on the media
// and whether or not the timestamp is included per ts. Some messages like
// version do not include the timestamp.
func readNetAddress(r io.Reader, media Media, na *NetAddress, ts bool) error {
	// Disk records the protocol version the address was written with.
	if media.IsDisk() {
		var version int32
		err := ReadElement(r, &version)
		if err != nil {
			return err
		}
	}

	var timestamp time.Time
	if netAddressHasTime(media, ts) {
		var seconds uint32
		err := ReadElement(r, &seconds)
		if err != nil {
			return err
		}
		if seconds != 0 {
			timestamp = time.Unix(int64(seconds), 0)
		}
	}

	var services uint64
	var ip [16]byte
	err := readElements(r, &services, &ip)
	if err != nil {
		return err
	}
	port, err := binaryserializer.Uint16(r, bigEndian)
	if err != nil {
		return err
	}

	*na = NetAddress{
		Timestamp: timestamp,
		Services:  ServiceFlag(services),
		IP:        net.IP(ip[:]),
		Port:      port,
	}
	return nil
}

// writeNetAddress serializes a NetAddress to w depending on the media and
// whether or not the timestamp is included per ts. Some messages like
// version do not include the timestamp.
func writeNetAddress(w io.Writer, media Media, na *NetAddress, ts bool) error {
	if media.IsDisk() {
		err := WriteElement(w, int32(media.ProtocolVersion()))
		if err != nil {
			return err
		}
	}

	if netAddressHasTime(media, ts) {
		var seconds int64
		if !na.Timestamp.IsZero() {
			seconds = na.Timestamp.Unix()
		}
		if seconds < 0 || seconds > math.MaxUint32 {
			str := fmt.Sprintf("address timestamp %d does not fit the "+
				"uint32 wire field", seconds)
			return messageError("writeNetAddress", ErrDomainViolation, str)
		}
		err := WriteElement(w, uint32(seconds))
		if err != nil {
			return err
		}
	}

	// Ensure to always write 16 bytes even if the ip is nil.
	var ip [16]byte
	if na.IP != nil {
		copy(ip[:], na.IP.To16())
	}
	err := writeElements(w, uint64(na.Services), ip)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint16(w, bigEndian, na.Port)
}
