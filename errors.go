// FILE: lixenwraith/options/errors.go
package options

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRcFileNotFound is returned when a referenced rc file does not exist.
// It is not fatal; callers may proceed with the remaining sources.
var ErrRcFileNotFound = errors.New("rc file not found")

// SchemaError reports malformed option metadata: a defect in the embedding
// application's own declarations, not in user input. It aborts registry
// construction and is also raised when an expansion or implicit-requirement
// cycle is detected at parse time.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid options schema: " + e.Reason
}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownOptionError reports a flag-shaped token that matched no registered
// option name or abbreviation. It fails the batch that contained the token;
// options merged earlier in the same batch remain applied.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unrecognized option: --%s", e.Name)
}

// ConversionError reports a raw value that cannot be coerced to its option's
// declared type. It aborts the remainder of the batch that contained it.
type ConversionError struct {
	Flag   string
	Raw    string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid value %q for option --%s: %s", e.Raw, e.Flag, e.Reason)
}

// ParamsFileReadError reports a failure to read or split an @file params file.
type ParamsFileReadError struct {
	Path string
	Err  error
}

func (e *ParamsFileReadError) Error() string {
	return fmt.Sprintf("failed to read params file %q: %v", e.Path, e.Err)
}

func (e *ParamsFileReadError) Unwrap() error { return e.Err }

// UnrecognizedArgumentsError is returned by Parse when residue is disallowed
// and the residue log is non-empty. The residue remains recorded and may still
// be inspected through Parser.Residue.
type UnrecognizedArgumentsError struct {
	Residue []string
}

func (e *UnrecognizedArgumentsError) Error() string {
	return "unrecognized arguments: " + strings.Join(e.Residue, " ")
}
