package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codewandler/chronostore-go/internal/codec"
)

const (
	Magic   uint32 = 0x43534442 // "CSDB"
	Version uint32 = 1

	// MaxStringLen bounds key and value lengths accepted on load.
	MaxStringLen = 1 << 20

	// NoExpiry marks a record without a TTL.
	NoExpiry int64 = -1
)

// Record is one key/value pair with its remaining TTL in milliseconds, or
// NoExpiry.
type Record struct {
	Key       string
	Value     string
	TTLMillis int64
}

// Encode writes the header followed by all records.
func Encode(w io.Writer, records []Record) error {
	cw := codec.NewWriter(w)
	cw.Uint32(Magic)
	cw.Uint32(Version)
	cw.Int64(int64(len(records)))
	for _, r := range records {
		cw.String(r.Key)
		cw.String(r.Value)
		cw.Int64(r.TTLMillis)
	}
	if err := cw.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Decode reads a complete snapshot. Bytes after the last record are ignored.
func Decode(r io.Reader) ([]Record, error) {
	cr := codec.NewReader(r)

	magic, err := cr.Uint32()
	if err != nil {
		return nil, readErr(err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}
	version, err := cr.Uint32()
	if err != nil {
		return nil, readErr(err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	count, err := cr.Int64()
	if err != nil {
		return nil, readErr(err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	// count is untrusted; grow as records actually arrive
	records := make([]Record, 0, min(count, 1024))
	for i := int64(0); i < count; i++ {
		var rec Record
		if rec.Key, err = cr.String(MaxStringLen); err != nil {
			return nil, readErr(err)
		}
		if rec.Value, err = cr.String(MaxStringLen); err != nil {
			return nil, readErr(err)
		}
		if rec.TTLMillis, err = cr.Int64(); err != nil {
			return nil, readErr(err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save truncates path and writes records to it.
func Save(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, records); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Load reads and decodes the snapshot at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

func readErr(err error) error {
	switch {
	case errors.Is(err, codec.ErrTooLong):
		return fmt.Errorf("%w: %w", ErrStringTooLong, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrTruncated
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}
