package wire

import (
	"fmt"
	"io"

	"github.com/kaspanet/btcwire/util/chainhash"
)

// MaxBlockLocatorsPerMsg is the maximum number of block locator hashes allowed
// per message.
const MaxBlockLocatorsPerMsg = 500

// BlockLocator is a list of block hashes, newest first, that lets a peer find
// the most recent block both sides know about.
//
// The locator is prefixed with the protocol version except under a hash
// media, where the version is left out so that the hash of a locator does not
// depend on who produced it. The decoded version is not retained; encoding
// always writes the version of the media in use.
type BlockLocator struct {
	Hashes []chainhash.Hash
}

// AddBlockHash adds a new block hash to the locator.
func (l *BlockLocator) AddBlockHash(hash *chainhash.Hash) error {
	if len(l.Hashes)+1 > MaxBlockLocatorsPerMsg {
		str := fmt.Sprintf("too many block locator hashes for message [max %v]",
			MaxBlockLocatorsPerMsg)
		return messageError("BlockLocator.AddBlockHash", ErrLimitExceeded, str)
	}

	l.Hashes = append(l.Hashes, *hash)
	return nil
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (l *BlockLocator) BtcDecode(r io.Reader, media Media) error {
	if !media.IsHash() {
		var pver uint32
		err := ReadElement(r, &pver)
		if err != nil {
			return err
		}
	}

	var err error
	l.Hashes, err = ReadSequence(r, MaxBlockLocatorsPerMsg, "block locator hashes", readHash)
	return err
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (l *BlockLocator) BtcEncode(w io.Writer, media Media) error {
	if !media.IsHash() {
		err := WriteElement(w, media.ProtocolVersion())
		if err != nil {
			return err
		}
	}

	return WriteSequence(w, l.Hashes, MaxBlockLocatorsPerMsg, "block locator hashes", writeHash)
}
