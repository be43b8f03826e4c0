package snapshot

import (
	"errors"
	"fmt"
)

var (
	ErrIO      = errors.New("snapshot i/o error")
	ErrCorrupt = errors.New("corrupt snapshot")

	ErrBadMagic           = fmt.Errorf("%w: bad magic", ErrCorrupt)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrCorrupt)
	ErrNegativeCount      = fmt.Errorf("%w: negative record count", ErrCorrupt)
	ErrStringTooLong      = fmt.Errorf("%w: implausible string length", ErrCorrupt)
	ErrTruncated          = fmt.Errorf("%w: truncated data", ErrCorrupt)
)
