package bitstream

import "io"

// PutBit writes a single bit, MSB first. Any nonzero bit is written as 1.
func (s *Stream) PutBit(bit uint8) error {
	if err := s.check("put bit", ModeWrite); err != nil {
		return err
	}

	bits, count := s.st.bits, s.st.count-1
	if bit != 0 {
		bits |= 1 << count
	}
	if count == 0 {
		if err := s.emit("put bit", bits); err != nil {
			return err
		}
		bits, count = 0, 8
	}
	s.st.bits, s.st.count = bits, count

	return nil
}

// PutBits writes the width least-significant bits of value, most-significant
// first. Writing bits b0..bN-1 through PutBit produces the same output as a
// single PutBits of the same bits packed MSB first. If the file write fails,
// bytes completed before the failure remain written.
func (s *Stream) PutBits(width int, value uint64) error {
	if err := s.check("put bits", ModeWrite); err != nil {
		return err
	}
	if width < 0 || width > MaxWidth {
		return s.fail("put bits", ErrInvalidArgument, invalidWidth(width))
	}

	// Complete the pending byte, then whole bytes, from the top of the field.
	n := uint(width)
	for n >= uint(s.st.count) {
		n -= uint(s.st.count)
		b := s.st.bits | uint8(lowBits(value>>n, uint(s.st.count)))
		if err := s.emit("put bits", b); err != nil {
			return err
		}
		s.st.bits, s.st.count = 0, 8
	}

	// The remaining n < count bits stay pending in the high part of the byte.
	s.st.count -= uint8(n)
	s.st.bits |= uint8(lowBits(value, n)) << s.st.count

	return nil
}

// emit writes one completed byte to the file.
func (s *Stream) emit(op string, b byte) error {
	s.pending[0] = b
	n, err := s.file.Write(s.pending[:])
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	if err != nil {
		return s.fail(op, ErrIO, err)
	}
	return nil
}
