// Package errors provides error handling for oasamples.
//
// This package re-exports github.com/cockroachdb/errors so that every error
// carries a stack trace and optional user hints:
//
//	if err := load(path); err != nil {
//	    return errors.Wrapf(err, "load %s", path)
//	}
//
//	return errors.WithHint(err, "output files must use the .json extension")
//
// Fatal conditions are classified with the sentinels below so the CLI can
// report them uniformly.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	FlattenDetail = crdb.FlattenDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinels classifying fatal conditions. Mark an error with one of these
// (errors.Mark) to keep its message while making errors.Is match.
var (
	// ErrConfig indicates bad arguments, an unknown target or a wrong output type.
	ErrConfig = New("configuration error")

	// ErrStructure indicates a document that cannot be enriched.
	ErrStructure = New("structural document error")

	// ErrIO indicates an unreadable source or unwritable destination.
	ErrIO = New("i/o error")
)

// Config marks err as a configuration error.
func Config(err error) error {
	if err == nil {
		return nil
	}
	return Mark(err, ErrConfig)
}

// IO marks err as an I/O error.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return Mark(err, ErrIO)
}

// IsConfig reports whether err is or wraps a configuration error.
func IsConfig(err error) bool {
	return err != nil && Is(err, ErrConfig)
}

// IsStructure reports whether err is or wraps a structural document error.
func IsStructure(err error) bool {
	return err != nil && Is(err, ErrStructure)
}

// IsIO reports whether err is or wraps an I/O error.
func IsIO(err error) bool {
	return err != nil && Is(err, ErrIO)
}

// Kind returns a short label for the class of err, used in diagnostics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfig(err):
		return "config"
	case IsStructure(err):
		return "structure"
	case IsIO(err):
		return "io"
	default:
		return "internal"
	}
}

// ExitCode maps an error to a process exit code. Every fatal condition
// terminates with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
