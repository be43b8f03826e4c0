package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrClosed          = errors.New("engine is closed")

	ErrNoSnapshotPath = fmt.Errorf("%w: no snapshot path", ErrInvalidArgument)
)
