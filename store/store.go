package store

import "errors"

var (
	ErrNotFound = errors.New("store: not found")
	ErrExists   = errors.New("store: already exists")
)

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
