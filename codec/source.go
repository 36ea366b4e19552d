package codec

import "io"

// lookaheadSource adds one byte of peek on top of any io.Reader, without
// requiring the whole document to be buffered in memory: the decoder needs
// to check for the end-of-container sentinel before deciding whether to
// consume the next value.
type lookaheadSource struct {
	r    io.Reader
	buf  [1]byte
	full bool
}

func newLookaheadSource(r io.Reader) *lookaheadSource {
	return &lookaheadSource{r: r}
}

// ReadByte reads and consumes the next byte.
func (s *lookaheadSource) ReadByte() (byte, error) {
	if s.full {
		s.full = false
		return s.buf[0], nil
	}

	n, err := s.r.Read(s.buf[:])
	if n == 1 {
		return s.buf[0], nil
	}

	if err == nil {
		err = io.ErrUnexpectedEOF
	}

	return 0, err
}

// Read fills p from the buffered lookahead byte (if any) followed by the
// underlying reader, following normal io.Reader partial-read semantics.
func (s *lookaheadSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	if s.full {
		p[0] = s.buf[0]
		s.full = false
		n = 1

		if len(p) == 1 {
			return n, nil
		}
	}

	m, err := s.r.Read(p[n:])

	return n + m, err
}

// PeekByte returns the next byte without consuming it.
func (s *lookaheadSource) PeekByte() (byte, error) {
	if !s.full {
		n, err := s.r.Read(s.buf[:])
		if n != 1 {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}

			return 0, err
		}

		s.full = true
	}

	return s.buf[0], nil
}
