package campaign

import "errors"

var (
	ErrNotFound     = errors.New("campaign not found")
	ErrNoActive     = errors.New("no active campaign")
	ErrInvalidInput = errors.New("invalid campaign input")
)
