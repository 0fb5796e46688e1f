// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced card, folder, image or tag doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrNotPermitted means the operation is not allowed on the target,
	// e.g. renaming or deleting a system folder.
	ErrNotPermitted = errors.New("not permitted")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Validation codes reported in ValidationError.Code.
const (
	CodeRequired      = "required"
	CodeTooLong       = "too_long"
	CodeUnknownFolder = "unknown_folder"
	CodeUnknownType   = "unknown_type"
	CodeUnknownKind   = "unknown_kind"
	CodeCycle         = "cycle"
	CodeMalformed     = "malformed"
	CodeDuplicate     = "duplicate"
)

// ValidationError rejects an input field with a machine-readable reason.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Code)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}

// PersistError reports that a mutation was applied in memory but could
// not be written to disk. Results returned alongside it are valid.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err is (or wraps) a *PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
