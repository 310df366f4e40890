package bitstream

import (
	"go.uber.org/zap"

	"github.com/aikiriao/BitStream/persistence"
)

// File is the byte-oriented file a Stream owns for its lifetime.
type File interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// Opener opens the named file with a fopen-style mode string, which is
// passed through unmodified.
type Opener func(path, mode string) (File, error)

func defaultOpener(path, mode string) (File, error) {
	f, err := persistence.OpenFile(path, mode)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type options struct {
	workspace []byte
	allocator Allocator
	opener    Opener
	logger    *zap.Logger
}

type OptionFunc func(*options)

// WithWorkspace places the stream state in caller memory instead of
// allocating. ws must be at least WorkspaceSize() bytes and must not be
// reused until the stream is closed. A nil ws is the same as supplying none.
func WithWorkspace(ws []byte) OptionFunc {
	return func(opts *options) {
		opts.workspace = ws
	}
}

// WithAllocator sets the allocator used when no workspace is supplied.
func WithAllocator(a Allocator) OptionFunc {
	return func(opts *options) {
		opts.allocator = a
	}
}

// WithOpener replaces the file backend.
func WithOpener(o Opener) OptionFunc {
	return func(opts *options) {
		opts.opener = o
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(opts *options) {
		opts.logger = logger
	}
}
