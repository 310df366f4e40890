package persistence

import (
	"fmt"
	"os"

	"github.com/aikiriao/BitStream/shared"
)

// OpenFile opens the named file with a fopen-style mode: "r", "w" or "a",
// optionally followed by '+' (read and write), 'x' (fail if the file exists)
// and 'b' or 't', which are accepted and ignored.
func OpenFile(name, mode string) (*os.File, error) {
	flag, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(name, flag, shared.OwnerReadWrite)
}

// ParseMode translates a fopen-style mode string into os.OpenFile flags.
func ParseMode(mode string) (int, error) {
	if mode == "" {
		return 0, fmt.Errorf("%w: empty mode", ErrInvalidMode)
	}

	var access, flag int
	switch mode[0] {
	case 'r':
		access = os.O_RDONLY
	case 'w':
		access = os.O_WRONLY
		flag = os.O_CREATE | os.O_TRUNC
	case 'a':
		access = os.O_WRONLY
		flag = os.O_CREATE | os.O_APPEND
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	for _, c := range mode[1:] {
		switch c {
		case '+':
			access = os.O_RDWR
		case 'x':
			if mode[0] == 'r' {
				return 0, fmt.Errorf("%w: %q: 'x' requires 'w' or 'a'", ErrInvalidMode, mode)
			}
			flag |= os.O_EXCL
		case 'b', 't':
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		}
	}

	return access | flag, nil
}
