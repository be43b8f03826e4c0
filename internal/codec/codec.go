// Package codec reads and writes the little-endian primitives the snapshot
// format is built from: u32, i64 and u32-length-prefixed strings.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrTooLong = errors.New("length exceeds limit")
)

// Writer encodes primitives to an underlying writer. The first write error
// is kept and all later writes are skipped; check it once with Err.
type Writer struct {
	w   io.Writer
	buf [8]byte
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) Int64(v int64) {
	binary.LittleEndian.PutUint64(w.buf[:8], uint64(v))
	w.write(w.buf[:8])
}

// String writes len(s) as u32 followed by the raw bytes of s.
func (w *Writer) String(s string) {
	if w.err != nil {
		return
	}
	if uint64(len(s)) > math.MaxUint32 {
		w.err = fmt.Errorf("%w: string of %d bytes", ErrTooLong, len(s))
		return
	}
	w.Uint32(uint32(len(s)))
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *Writer) Err() error { return w.err }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

// Reader decodes primitives from an underlying reader. Short reads surface
// as io.EOF (nothing read) or io.ErrUnexpectedEOF (partial read).
type Reader struct {
	r   io.Reader
	buf [8]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (r *Reader) Uint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *Reader) Int64() (int64, error) {
	if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(r.buf[:8])), nil
}

// String reads a u32 length prefix and that many bytes. Lengths above limit
// fail with ErrTooLong before any payload is read.
func (r *Reader) String(limit uint32) (string, error) {
	n, err := r.Uint32()
	if err != nil {
		return "", err
	}
	if n > limit {
		return "", fmt.Errorf("%w: %d > %d", ErrTooLong, n, limit)
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		if errors.Is(err, io.EOF) {
			// the length prefix was read, so this is a partial record
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return string(b), nil
}
