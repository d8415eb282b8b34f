// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so the CLI can tell configuration mistakes (which abort
// a run) apart from per-seed execution failures (which are recorded and skipped).
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// DependencyCycle indicates that seed descriptors depend on each other in a loop.
	DependencyCycle Kind = "dependency_cycle"
	// DuplicateSeed indicates two descriptors share the same name.
	DuplicateSeed Kind = "duplicate_seed"
	// SeedFailed indicates a seed body returned an error or panicked.
	SeedFailed Kind = "seed_failed"
	// CleanupFailed indicates a cleanup body returned an error or panicked.
	CleanupFailed Kind = "cleanup_failed"
	// ConfigInvalid indicates configuration failed validation.
	ConfigInvalid Kind = "config_invalid"
	// DSNUnavailable indicates no database connection string could be resolved.
	DSNUnavailable Kind = "dsn_unavailable"
	// MigrationFailed indicates a schema migration could not be applied.
	MigrationFailed Kind = "migration_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// IsKind reports whether any error in err's chain is an *E of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *E
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
