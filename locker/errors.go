package locker

import "errors"

var (
	// ErrPersisterRequired means a locker was constructed without storage.
	ErrPersisterRequired = errors.New("a persister is required")
	// ErrFragranceRequired means a nil fragrance was passed to Add.
	ErrFragranceRequired = errors.New("a fragrance is required")
)
