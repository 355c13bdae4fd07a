package service

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps to status codes. Ownership misses are
// reported as ErrNotFound so foreign owners' data never leaks as a
// different answer than a missing row.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// orNotFound translates a storage miss into ErrNotFound, leaving other
// storage errors untouched.
func orNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
