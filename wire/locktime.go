package wire

import (
	"fmt"
	"io"
	"math"
	"time"
)

// LockTimeThreshold is the number below which a lock time is interpreted to
// be a block height. Values at or above it are unix timestamps.
const LockTimeThreshold = 500000000 // Tue Nov 5 00:53:20 1985 UTC

// LockTimeKind tells how a LockTime constrains its transaction.
type LockTimeKind uint8

const (
	// LockTimeNone means the transaction is final immediately.
	LockTimeNone LockTimeKind = iota

	// LockTimeBlock means the transaction is final at a block height.
	LockTimeBlock

	// LockTimeTime means the transaction is final at a unix time.
	LockTimeTime
)

var lockTimeKindStrings = map[LockTimeKind]string{
	LockTimeNone:  "none",
	LockTimeBlock: "block",
	LockTimeTime:  "time",
}

// String returns the LockTimeKind in human-readable form.
func (k LockTimeKind) String() string {
	if s, ok := lockTimeKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown LockTimeKind (%d)", uint8(k))
}

// LockTime is the earliest point, as a block height or a time, at which a
// transaction may be included in a block. It encodes as a single uint32 and
// the value's range decides which kind is meant.
type LockTime struct {
	kind  LockTimeKind
	value int64
}

// NoLockTime returns a lock time that does not constrain its transaction.
func NoLockTime() LockTime {
	return LockTime{kind: LockTimeNone}
}

// BlockLockTime returns a lock time at the given block height. A height of
// zero encodes identically to no lock time and is returned as such.
func BlockLockTime(height uint32) LockTime {
	if height == 0 {
		return NoLockTime()
	}
	return LockTime{kind: LockTimeBlock, value: int64(height)}
}

// TimeLockTime returns a lock time at t, truncated to whole seconds.
func TimeLockTime(t time.Time) LockTime {
	return LockTime{kind: LockTimeTime, value: t.Unix()}
}

// LockTimeFromUint32 classifies an encoded lock time value.
func LockTimeFromUint32(v uint32) LockTime {
	switch {
	case v == 0:
		return NoLockTime()
	case v < LockTimeThreshold:
		return LockTime{kind: LockTimeBlock, value: int64(v)}
	default:
		return LockTime{kind: LockTimeTime, value: int64(v)}
	}
}

// Kind returns what the lock time constrains.
func (lt LockTime) Kind() LockTimeKind {
	return lt.kind
}

// Height returns the block height of a block lock time, or 0 for other
// kinds.
func (lt LockTime) Height() uint32 {
	if lt.kind != LockTimeBlock {
		return 0
	}
	return uint32(lt.value)
}

// Time returns the time of a time lock time, or the zero time for other
// kinds.
func (lt LockTime) Time() time.Time {
	if lt.kind != LockTimeTime {
		return time.Time{}
	}
	return time.Unix(lt.value, 0).UTC()
}

// Uint32 returns the encoded form of the lock time. It fails for a height
// that would be read back as a time, and for a time that would be read back
// as a height or does not fit in 32 bits.
func (lt LockTime) Uint32() (uint32, error) {
	switch lt.kind {
	case LockTimeNone:
		return 0, nil

	case LockTimeBlock:
		if lt.value >= LockTimeThreshold {
			str := fmt.Sprintf("block height %d is not below the lock "+
				"time threshold %d", lt.value, LockTimeThreshold)
			return 0, messageError("LockTime.Uint32", ErrDomainViolation, str)
		}
		return uint32(lt.value), nil

	case LockTimeTime:
		if lt.value < LockTimeThreshold || lt.value > math.MaxUint32 {
			str := fmt.Sprintf("lock time %d is outside the encodable "+
				"time range [%d, %d]", lt.value, LockTimeThreshold,
				uint32(math.MaxUint32))
			return 0, messageError("LockTime.Uint32", ErrDomainViolation, str)
		}
		return uint32(lt.value), nil
	}

	str := fmt.Sprintf("unknown lock time kind %d", lt.kind)
	return 0, messageError("LockTime.Uint32", ErrDomainViolation, str)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
func (lt LockTime) BtcEncode(w io.Writer, media Media) error {
	v, err := lt.Uint32()
	if err != nil {
		return err
	}
	return WriteElement(w, v)
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
func (lt *LockTime) BtcDecode(r io.Reader, media Media) error {
	var v uint32
	err := ReadElement(r, &v)
	if err != nil {
		return err
	}
	*lt = LockTimeFromUint32(v)
	return nil
}

// String returns the lock time in human-readable form.
func (lt LockTime) String() string {
	switch lt.kind {
	case LockTimeNone:
		return "none"
	case LockTimeBlock:
		return fmt.Sprintf("block %d", lt.value)
	case LockTimeTime:
		return fmt.Sprintf("time %s", lt.Time().Format(time.RFC3339))
	}
	return lt.kind.String()
}
