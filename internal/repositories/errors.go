package repositories

import "errors"

// ErrNotFound is returned when a record does not exist or is owned by a
// different user. The two causes are deliberately indistinguishable so that
// callers cannot probe for other users' data.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned by user creation when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")
