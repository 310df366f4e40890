// Package bitstream provides bit-granularity access to a byte-oriented file,
// following the MSB pattern, where most-significant bits are written/read
// first.
//
// A Stream is opened either for reading or for writing, never both. It keeps
// a single partially filled (write) or partially consumed (read) byte in its
// accumulator; there is no other buffering. The file content is the plain
// concatenation of emitted bytes, with no header.
//
// A Stream is not safe for concurrent use.
package bitstream

import "fmt"

// MaxWidth is the widest field PutBits and GetBits accept.
const MaxWidth = 64

// Mode is the direction a Stream was opened for.
type Mode uint8

const (
	ModeRead Mode = iota + 1
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// resetCount is the accumulator count right after open or seek.
func (m Mode) resetCount() uint8 {
	if m == ModeWrite {
		return 8
	}
	return 0
}

// parseMode selects the direction by the leading character of a
// fopen-style mode string.
func parseMode(mode string) (Mode, error) {
	if mode == "" {
		return 0, fmt.Errorf("empty mode")
	}
	switch mode[0] {
	case 'r':
		return ModeRead, nil
	case 'w':
		return ModeWrite, nil
	default:
		return 0, fmt.Errorf("unsupported mode %q", mode)
	}
}

// lowBits returns the n least-significant bits of v, n in [0, 64].
func lowBits(v uint64, n uint) uint64 {
	if n >= 64 {
		return v
	}
	return v & (1<<n - 1)
}
