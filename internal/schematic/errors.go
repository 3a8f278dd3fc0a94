package schematic

import "errors"

var (
	ErrRoutesFileNotFound = errors.New("routes file not found")
	ErrNilTree            = errors.New("project tree cannot be nil")
)
