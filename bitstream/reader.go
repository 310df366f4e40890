package bitstream

import (
	"errors"
	"io"
)

// GetBit reads the next single bit, MSB first. At the end of the file it
// fails with ErrEndOfStream.
func (s *Stream) GetBit() (uint8, error) {
	if err := s.check("get bit", ModeRead); err != nil {
		return 0, err
	}

	if s.st.count == 0 {
		if err := s.fetch("get bit"); err != nil {
			return 0, err
		}
	}
	s.st.count--

	return (s.st.bits >> s.st.count) & 1, nil
}

// GetBits reads the next width bits and returns them right-justified, the
// earliest read bit being the most significant.
//
// If the file ends in the middle of the field, the bits read so far are
// returned in their positions with the missing low bits set to zero, and no
// error. The next read fails with ErrEndOfStream. A read that finds no bits
// at all fails with ErrEndOfStream.
func (s *Stream) GetBits(width int) (uint64, error) {
	if err := s.check("get bits", ModeRead); err != nil {
		return 0, err
	}
	if width < 0 || width > MaxWidth {
		return 0, s.fail("get bits", ErrInvalidArgument, invalidWidth(width))
	}
	if s.eof && s.st.count == 0 {
		return 0, s.fail("get bits", ErrEndOfStream, io.EOF)
	}

	var val uint64
	n := uint(width)
	for n > uint(s.st.count) {
		c := uint(s.st.count)
		n -= c
		val |= lowBits(uint64(s.st.bits), c) << n
		s.st.bits, s.st.count = 0, 0

		if err := s.fetch("get bits"); err != nil {
			if !errors.Is(err, ErrEndOfStream) || n == uint(width) {
				return 0, err
			}
			return val, nil
		}
	}

	s.st.count -= uint8(n)
	val |= lowBits(uint64(s.st.bits>>s.st.count), n)

	return val, nil
}

// fetch loads the next file byte into the accumulator.
func (s *Stream) fetch(op string) error {
	_, err := io.ReadFull(s.file, s.pending[:])
	switch {
	case err == nil:
		s.st.bits, s.st.count = s.pending[0], 8
		return nil
	case errors.Is(err, io.EOF):
		s.eof = true
		return s.fail(op, ErrEndOfStream, io.EOF)
	default:
		return s.fail(op, ErrIO, err)
	}
}
