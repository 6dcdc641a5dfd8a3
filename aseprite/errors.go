package aseprite

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLayout = errors.New("unsupported frame layout, export with \"Array\" frames")
	ErrMalformedInput    = errors.New("malformed input")
	ErrEmptyRange        = errors.New("empty tag range")
	ErrOutOfBounds       = errors.New("tag range out of bounds")
	ErrInvalidDuration   = errors.New("invalid frame duration")
)

func fieldError(sentinel error, path, format string, args ...any) error {
	return fmt.Errorf("aseprite: %s: %w: %s", path, sentinel, fmt.Sprintf(format, args...))
}
