package dataset

// streaming.go wraps raw artifact readers so the CSV parser sees clean text:
//
//   - bomSkippingReader drops a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - utf8Sanitizer replaces invalid UTF-8 bytes with '?'
//
// Use cleanReader to apply both in the right order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizeChunkSize is how many bytes utf8Sanitizer pulls per fill.
const sanitizeChunkSize = 4096

// bomSkippingReader discards the UTF-8 BOM on first read.
type bomSkippingReader struct {
	br      *bufio.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{br: bufio.NewReader(r)}
}

func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		head, err := r.br.Peek(len(utf8BOM))
		if err != nil && err != io.EOF {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := r.br.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return r.br.Read(p)
}

// utf8Sanitizer replaces invalid UTF-8 sequences with '?' without buffering
// the whole input. An incomplete multi-byte sequence at the end of a chunk is
// held back until the next chunk completes it.
type utf8Sanitizer struct {
	r     io.Reader
	chunk []byte
	held  []byte // raw bytes not yet decoded
	out   []byte // sanitized bytes ready to hand out
	err   error
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, chunk: make([]byte, sanitizeChunkSize)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill()
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

func (s *utf8Sanitizer) fill() {
	n, err := s.r.Read(s.chunk)
	s.held = append(s.held, s.chunk[:n]...)
	s.err = err
	atEOF := err != nil

	out := make([]byte, 0, len(s.held))
	i := 0
	for i < len(s.held) {
		c := s.held[i]
		if c < utf8.RuneSelf {
			out = append(out, c)
			i++
			continue
		}
		if !atEOF && !utf8.FullRune(s.held[i:]) {
			break
		}
		r, size := utf8.DecodeRune(s.held[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, '?')
			i++
			continue
		}
		out = append(out, s.held[i:i+size]...)
		i += size
	}
	s.held = append(s.held[:0], s.held[i:]...)
	s.out = out
}

// cleanReader strips the BOM first, then sanitizes the remaining bytes.
func cleanReader(r io.Reader) io.Reader {
	return newUTF8Sanitizer(newBOMSkippingReader(r))
}
