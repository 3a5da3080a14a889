package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. Handlers map them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// StateInvalidator drops cached per-fisherman state after a write
type StateInvalidator interface {
	Invalidate(fishermanID int64)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(int64) {}

// Pagination bounds shared by list operations
const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
