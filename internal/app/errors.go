package app

import "errors"

// ErrEmptyItem and related errors describe validation failures.
var (
	ErrEmptyItem   = errors.New("item text is empty")
	ErrUnknownList = errors.New("unknown list")
)
