package dataset

import "errors"

// Sentinel error kinds for this package. Load results wrap exactly one of them.
var (
	ErrOpen              = errors.New("dataset open failed")
	ErrParse             = errors.New("dataset parse failed")
	ErrMissingColumn     = errors.New("dataset column missing")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrSchedule          = errors.New("invalid reload schedule")
)
