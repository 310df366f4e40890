package bitstream

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Stream reads or writes individual bits and bit fields of a file.
type Stream struct {
	file File
	path string
	mode Mode

	// st lives inside ws, at the first aligned address.
	st    *state
	ws    []byte
	own   ownership
	alloc Allocator

	// eof is set once a fetch hit the end of the file; seeking clears it.
	eof bool
	// pending is the one-byte window handed to the file's Read and Write.
	pending [1]byte

	logger *zap.Logger
}

// Open opens the named file for bit-granular access. The leading character
// of mode selects the direction ('r' or 'w'); the whole mode string is handed
// to the Opener unmodified.
func Open(path, mode string, opts ...OptionFunc) (*Stream, error) {
	options := options{
		allocator: heapAllocator{},
		opener:    defaultOpener,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	logger := options.logger

	m, err := parseMode(mode)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Kind: ErrInvalidArgument, Err: err}
	}
	if options.opener == nil {
		return nil, &Error{Op: "open", Path: path, Kind: ErrInvalidArgument, Err: errors.New("nil opener")}
	}

	ws, own := options.workspace, borrowed
	if ws == nil {
		if options.allocator == nil {
			return nil, &Error{Op: "open", Path: path, Kind: ErrInvalidArgument, Err: errors.New("nil allocator")}
		}
		ws, err = options.allocator.Alloc(WorkspaceSize())
		if err != nil {
			return nil, &Error{Op: "open", Path: path, Kind: ErrAllocationFailed, Err: err}
		}
		if len(ws) < WorkspaceSize() {
			options.allocator.Free(ws)
			return nil, &Error{Op: "open", Path: path, Kind: ErrAllocationFailed,
				Err: fmt.Errorf("allocator returned %d bytes, need %d", len(ws), WorkspaceSize())}
		}
		own = owned
	}

	st, err := placeState(ws)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Kind: ErrInsufficientWorkspace, Err: err}
	}

	f, err := options.opener(path, mode)
	if err != nil {
		if own == owned {
			options.allocator.Free(ws)
		}
		return nil, &Error{Op: "open", Path: path, Kind: ErrFileOpenFailed, Err: err}
	}

	st.bits = 0
	st.count = m.resetCount()

	logger.Debug("bitstream opened",
		zap.String("path", path),
		zap.Stringer("mode", m),
		zap.Stringer("memory", own),
	)

	return &Stream{
		file:   f,
		path:   path,
		mode:   m,
		st:     st,
		ws:     ws,
		own:    own,
		alloc:  options.allocator,
		logger: logger,
	}, nil
}

// Mode returns the direction the stream was opened for.
func (s *Stream) Mode() Mode {
	return s.mode
}

// Close flushes a partially written byte, zero-padded in its low bits,
// closes the file and releases the workspace if it was allocated by Open.
// All teardown steps run even if an earlier one fails; failures are logged
// and returned. Closing a nil or already closed stream is a no-op.
func (s *Stream) Close() error {
	if s == nil || s.file == nil {
		return nil
	}

	var errs []error
	if s.mode == ModeWrite {
		// At most 7 zero bits: emits a byte only if one is partially filled.
		if err := s.PutBits(7, 0); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.file.Close(); err != nil {
		errs = append(errs, s.fail("close", ErrIO, err))
	}
	s.file = nil

	if s.own == owned {
		s.alloc.Free(s.ws)
	}
	s.ws = nil
	s.st = nil

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Warn("bitstream teardown failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.logger.Debug("bitstream closed", zap.String("path", s.path))
	return nil
}

// Seek repositions the file. Any buffered bits are discarded: a partially
// written byte is lost and a partially consumed byte is dropped.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if err := s.check("seek", 0); err != nil {
		return 0, err
	}
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, s.fail("seek", ErrInvalidArgument, fmt.Errorf("invalid whence %d", whence))
	}

	if s.st.count != s.mode.resetCount() {
		s.logger.Debug("seek discards buffered bits",
			zap.String("path", s.path),
			zap.Uint8("count", s.st.count),
		)
	}
	s.reset()

	pos, err := s.file.Seek(offset, whence)
	if err != nil {
		return 0, s.fail("seek", ErrIO, err)
	}
	return pos, nil
}

// Tell returns the file's byte offset. It does not account for buffered
// bits.
func (s *Stream) Tell() (int64, error) {
	if err := s.check("tell", 0); err != nil {
		return 0, err
	}
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, s.fail("tell", ErrIO, err)
	}
	return pos, nil
}

func (s *Stream) reset() {
	s.st.bits = 0
	s.st.count = s.mode.resetCount()
	s.eof = false
}

// check validates that s is open and, unless want is zero, in mode want.
func (s *Stream) check(op string, want Mode) error {
	if s == nil {
		return &Error{Op: op, Kind: ErrInvalidArgument, Err: errors.New("nil stream")}
	}
	if s.file == nil {
		return s.fail(op, ErrClosed, nil)
	}
	if want != 0 && s.mode != want {
		return s.fail(op, ErrWrongMode, fmt.Errorf("stream opened for %v", s.mode))
	}
	return nil
}
