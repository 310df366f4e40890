package persistence

import "errors"

var (
	ErrInvalidMode    = errors.New("invalid file mode")
	ErrNegativeOffset = errors.New("negative offset")
)
