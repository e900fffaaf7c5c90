package docs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid run settings. It is reported before any
	// document is read.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrUnsupportedFormat marks a discovered file that is neither .md nor .txt.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
