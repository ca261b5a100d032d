package packages

import "errors"

var (
	ErrPackNotFound = errors.New("pack not found")
	ErrInvalidInput = errors.New("invalid pack input")
)
