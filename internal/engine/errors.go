package engine

import "errors"

var (
	// ErrUnknownKind is returned for an activity kind with no calculator.
	ErrUnknownKind = errors.New("unknown activity kind")

	// ErrInvalidSheet is returned for an activity sheet that cannot be decoded.
	ErrInvalidSheet = errors.New("invalid activity sheet")

	// ErrUnsupportedFormat is returned by Render for an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
