package wire

import (
	"fmt"
	"strings"
)

// Mode is a bit set selecting the serialization variant of a Media.
type Mode uint8

const (
	// ModeNetwork is the encoding used between peers.
	ModeNetwork Mode = 1 << iota

	// ModeDisk is the encoding used when persisting objects.
	ModeDisk

	// ModeHash is the encoding fed to a digest to compute an identifier.
	ModeHash

	// ModeTrimmed omits block bodies, leaving only headers.
	ModeTrimmed
)

var modeStrings = []struct {
	mode Mode
	name string
}{
	{ModeNetwork, "network"},
	{ModeDisk, "disk"},
	{ModeHash, "hash"},
	{ModeTrimmed, "trimmed"},
}

// Media carries everything an encoder or decoder may branch on: the
// negotiated protocol version and the active serialization modes.
//
// Media is an immutable value. Derive a new one with WithVersion, WithMode
// or WithoutMode.
type Media struct {
	protocolVersion uint32
	modes           Mode
}

// NewMedia returns a Media for the given protocol version with the given
// modes set.
func NewMedia(pver uint32, modes ...Mode) Media {
	m := Media{protocolVersion: pver}
	for _, mode := range modes {
		m.modes |= mode
	}
	return m
}

// NetworkMedia returns the media used for peer-to-peer traffic at the given
// protocol version.
func NetworkMedia(pver uint32) Media {
	return NewMedia(pver, ModeNetwork)
}

// DiskMedia returns the media used for persisting objects.
func DiskMedia() Media {
	return NewMedia(ProtocolVersion, ModeDisk)
}

// HashMedia returns the media used for computing object identifiers.
func HashMedia() Media {
	return NewMedia(ProtocolVersion, ModeHash)
}

// ProtocolVersion returns the protocol version carried by the media.
func (m Media) ProtocolVersion() uint32 {
	return m.protocolVersion
}

// Modes returns the full mode bit set.
func (m Media) Modes() Mode {
	return m.modes
}

// Has returns whether every bit of mode is set.
func (m Media) Has(mode Mode) bool {
	return m.modes&mode == mode
}

// IsNetwork returns whether the network mode is set.
func (m Media) IsNetwork() bool { return m.Has(ModeNetwork) }

// IsDisk returns whether the disk mode is set.
func (m Media) IsDisk() bool { return m.Has(ModeDisk) }

// IsHash returns whether the hash mode is set.
func (m Media) IsHash() bool { return m.Has(ModeHash) }

// IsTrimmed returns whether block bodies are omitted.
func (m Media) IsTrimmed() bool { return m.Has(ModeTrimmed) }

// WithVersion returns a copy of m carrying pver.
func (m Media) WithVersion(pver uint32) Media {
	m.protocolVersion = pver
	return m
}

// WithMode returns a copy of m with mode added.
func (m Media) WithMode(mode Mode) Media {
	m.modes |= mode
	return m
}

// WithoutMode returns a copy of m with mode cleared.
func (m Media) WithoutMode(mode Mode) Media {
	m.modes &^= mode
	return m
}

// String returns a human readable form such as "pver 70012 [network trimmed]".
func (m Media) String() string {
	var names []string
	for _, ms := range modeStrings {
		if m.Has(ms.mode) {
			names = append(names, ms.name)
		}
	}
	return fmt.Sprintf("pver %d [%s]", m.protocolVersion, strings.Join(names, " "))
}
