package spec

import (
	"fmt"
	"strings"
)

type (
	// MissingFieldError is returned when a required field is absent.
	MissingFieldError struct {
		Field string
	}

	// TypeMismatchError is returned when a field is present but holds a value
	// of the wrong variant.
	TypeMismatchError struct {
		Field    string
		Expected string
		Actual   string
	}

	// ExtraFieldsError is returned when a document still holds fields after
	// every consumer has taken what it needs. Fields are in document order.
	ExtraFieldsError struct {
		Fields []string
	}

	// UnknownNameError is returned when a node names a type that no registry
	// of its category knows.
	UnknownNameError struct {
		Category string
		Name     string
	}

	// BadValueError is returned for well-typed but malformed literals, e.g. a
	// note name or a time.
	BadValueError struct {
		Field  string
		Value  string
		Reason string
	}

	// ExecutionError is returned when an external program producing the
	// specification fails.
	ExecutionError struct {
		Command string
		Err     error
		Stdout  string
		Stderr  string
	}
)

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

func (e *ExtraFieldsError) Error() string {
	return fmt.Sprintf("unused fields: %s", strings.Join(e.Fields, ", "))
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Category, e.Name)
}

func (e *BadValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad value %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("field %q: bad value %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("running %s failed: %v\nstdout:\n%s\nstderr:\n%s", e.Command, e.Err, e.Stdout, e.Stderr)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
