package repository

import "errors"

// ErrNilTable is returned when a nil table is offered for publication.
var ErrNilTable = errors.New("snapshot table is nil")
