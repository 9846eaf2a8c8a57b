package core

import (
	"errors"
	"sort"
	"strings"
)

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)

// Categories errors
var (
	ErrCategoryNotFound = errors.New("category not found")
)

var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError lists field-level problems with a TaskInput.
// It matches ErrTaskInvalidArgs under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrTaskInvalidArgs.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrTaskInvalidArgs }

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
