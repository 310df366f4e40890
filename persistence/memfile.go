package persistence

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// MemFS is an in-memory set of named files. Its Open method matches the
// signature of OpenFile and can stand in for it in tests.
type MemFS struct {
	mu    sync.Mutex
	files map[string]*memNode
}

type memNode struct {
	data []byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memNode)}
}

// Open opens name with a fopen-style mode, see ParseMode.
func (m *MemFS) Open(name, mode string) (*MemFile, error) {
	flag, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.files[name]
	switch {
	case ok && flag&os.O_EXCL != 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	case !ok && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !ok:
		node = &memNode{}
		m.files[name] = node
	}
	if flag&os.O_TRUNC != 0 {
		node.data = node.data[:0]
	}

	f := &MemFile{node: node, flag: flag}
	if flag&os.O_APPEND != 0 {
		f.off = int64(len(node.data))
	}
	return f, nil
}

// WriteFile stores a copy of data under name.
func (m *MemFS) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &memNode{data: append([]byte(nil), data...)}
}

// ReadFile returns a copy of the content stored under name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), node.data...), nil
}

// MemFile is a handle to a MemFS file. Like an *os.File it has its own
// offset; writing past the end zero-fills the gap.
type MemFile struct {
	node   *memNode
	flag   int
	off    int64
	closed bool
}

// NewMemFile returns a read-write handle to a standalone file holding a copy
// of data.
func NewMemFile(data []byte) *MemFile {
	return &MemFile{
		node: &memNode{data: append([]byte(nil), data...)},
		flag: os.O_RDWR,
	}
}

func (f *MemFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.flag&(os.O_WRONLY|os.O_RDWR) == os.O_WRONLY {
		return 0, fmt.Errorf("read: %w", fs.ErrPermission)
	}
	if f.off >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.node.data[f.off:])
	f.off += int64(n)
	return n, nil
}

func (f *MemFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.flag&(os.O_WRONLY|os.O_RDWR) == os.O_RDONLY {
		return 0, fmt.Errorf("write: %w", fs.ErrPermission)
	}
	if f.flag&os.O_APPEND != 0 {
		f.off = int64(len(f.node.data))
	}
	end := f.off + int64(len(p))
	if end > int64(len(f.node.data)) {
		f.node.data = append(f.node.data, make([]byte, end-int64(len(f.node.data)))...)
	}
	copy(f.node.data[f.off:], p)
	f.off = end
	return len(p), nil
}

func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.off
	case io.SeekEnd:
		base = int64(len(f.node.data))
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if base+offset < 0 {
		return 0, ErrNegativeOffset
	}
	f.off = base + offset
	return f.off, nil
}

func (f *MemFile) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true
	return nil
}

// Bytes returns a copy of the file content.
func (f *MemFile) Bytes() []byte {
	return append([]byte(nil), f.node.data...)
}

// Closed reports whether Close was called.
func (f *MemFile) Closed() bool {
	return f.closed
}
