package catalog

import "errors"

var (
	ErrNotFound     = errors.New("cookie not found")
	ErrInvalidInput = errors.New("invalid cookie input")
)
