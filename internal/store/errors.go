package store

import "errors"

var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidPreset            = errors.New("invalid preset")
	ErrUnsupportedSchemaVersion = errors.New("unsupported preset schema version")
)
