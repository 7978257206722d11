// Package wdqserr is the unified error taxonomy every subsystem wraps
// its failures in, so a caller can branch on Kind without parsing error
// strings: a ParseError is a skip-and-continue signal during ingest, a
// SchemaError is a bug that should abort, and so on.
package wdqserr

import "fmt"

// Kind classifies why an operation failed.
type Kind string

const (
	// Parse marks a malformed input line. Non-fatal; the ingest
	// coordinator's best-effort mode logs and continues.
	Parse Kind = "parse"
	// Schema marks a width mismatch between an operation cache's
	// template and an incoming row — a bug, not a data problem.
	Schema Kind = "schema"
	// Storage marks a driver failure: connect, execute, or decode.
	Storage Kind = "storage"
	// Config marks a missing or invalid configuration value.
	Config Kind = "config"
	// IO marks a source file open/read failure.
	IO Kind = "io"
)

// Error wraps a Kind and its underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a wdqserr.Error with the same Kind,
// enabling errors.Is(err, wdqserr.Parse)-style checks via a sentinel
// built from New(kind, "", nil).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.Err == nil && other.Op == "" {
		return e.Kind == other.Kind
	}
	return e.Kind == other.Kind && e.Op == other.Op
}

// New builds an Error for op, wrapping err.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Parsef builds a ParseError-kind Error with a formatted message.
func Parsef(format string, args ...any) *Error {
	return New(Parse, "", fmt.Errorf(format, args...))
}

// Schemaf builds a SchemaError-kind Error with a formatted message.
func Schemaf(format string, args ...any) *Error {
	return New(Schema, "", fmt.Errorf(format, args...))
}

// Storagef builds a StorageError-kind Error with a formatted message.
func Storagef(format string, args ...any) *Error {
	return New(Storage, "", fmt.Errorf(format, args...))
}

// Configf builds a ConfigError-kind Error with a formatted message.
func Configf(format string, args ...any) *Error {
	return New(Config, "", fmt.Errorf(format, args...))
}

// IOf builds an IoError-kind Error with a formatted message.
func IOf(format string, args ...any) *Error {
	return New(IO, "", fmt.Errorf(format, args...))
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error, and
// reports ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	for err != nil {
		if k, ok := err.(*Error); ok {
			e = k
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return "", false
	}
	return e.Kind, true
}
