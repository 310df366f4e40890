package persistence

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for mode, flag := range map[string]int{
		"r":   os.O_RDONLY,
		"rb":  os.O_RDONLY,
		"r+":  os.O_RDWR,
		"w":   os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
		"wb":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
		"w+b": os.O_RDWR | os.O_CREATE | os.O_TRUNC,
		"wx":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_EXCL,
		"a":   os.O_WRONLY | os.O_CREATE | os.O_APPEND,
		"at":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	} {
		got, err := ParseMode(mode)
		require.NoError(t, err, mode)
		require.Equal(t, flag, got, mode)
	}

	for _, mode := range []string{"", "x", "rx", "rq", "b"} {
		_, err := ParseMode(mode)
		require.ErrorIs(t, err, ErrInvalidMode, mode)
	}
}

func TestOpenFile(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "file.bin")

	_, err := OpenFile(name, "rb")
	req.ErrorIs(err, fs.ErrNotExist)

	w, err := OpenFile(name, "wb")
	req.NoError(err)
	_, err = w.Write([]byte{0x55, 0xAA})
	req.NoError(err)
	req.NoError(w.Close())

	info, err := os.Stat(name)
	req.NoError(err)
	req.Equal(int64(2), info.Size())
	req.Equal(os.FileMode(0o600), info.Mode().Perm())

	r, err := OpenFile(name, "rb")
	req.NoError(err)
	data, err := io.ReadAll(r)
	req.NoError(err)
	req.Equal([]byte{0x55, 0xAA}, data)
	req.NoError(r.Close())

	_, err = OpenFile(name, "wx")
	req.ErrorIs(err, fs.ErrExist)
}
