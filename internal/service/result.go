package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ResultKind tags the outcome of a ledger operation
type ResultKind int

const (
	Success ResultKind = iota
	MalformedInput
	ValidationFailed
	StorageFailed
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case MalformedInput:
		return "malformed_input"
	case ValidationFailed:
		return "validation_failed"
	case StorageFailed:
		return "storage_failed"
	default:
		return "unknown"
	}
}

// Result is what every writer and schema operation returns: a tag for
// programmatic callers and a human-readable message
type Result struct {
	Kind    ResultKind
	Message string
}

// OK reports whether the operation succeeded
func (r Result) OK() bool {
	return r.Kind == Success
}

// MalformedInputError reports input that is not a JSON object at all
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ValidationError reports required fields that were absent or empty
type ValidationError struct {
	Required []string
	Missing  []string
}

func (e *ValidationError) Error() string {
	required := quoteAll(e.Required)
	var msg string
	if len(required) == 1 {
		msg = fmt.Sprintf("Field %s is required.", required[0])
	} else {
		fields := strings.Join(required[:len(required)-1], ", ") + " and " + required[len(required)-1]
		msg = fmt.Sprintf("Fields %s are required.", fields)
	}
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf(" Missing: %s.", strings.Join(quoteAll(e.Missing), ", "))
	}
	return msg
}

func quoteAll(fields []string) []string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return quoted
}

// StorageError wraps a failure reported by the database
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// resultFromError converts a writer error into its tagged result
func resultFromError(entity string, err error) Result {
	var malformedErr *MalformedInputError
	var validationErr *ValidationError
	var storageErr *StorageError
	switch {
	case errors.As(err, &malformedErr):
		return Result{Kind: MalformedInput, Message: fmt.Sprintf("Failed to parse %s data. Error: %v", entity, malformedErr.Err)}
	case errors.As(err, &validationErr):
		return Result{Kind: ValidationFailed, Message: fmt.Sprintf("Failed to create %s. %s", entity, validationErr.Error())}
	case errors.As(err, &storageErr):
		return Result{Kind: StorageFailed, Message: fmt.Sprintf("Failed to create %s. Error: %s", entity, storageDetail(storageErr.Err))}
	default:
		return Result{Kind: StorageFailed, Message: fmt.Sprintf("Failed to create %s. Error: %v", entity, err)}
	}
}

// storageDetail extracts the database message from err, preferring the
// server-reported message and detail of a lib/pq error
func storageDetail(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Detail != "" {
			return pqErr.Message + " (" + pqErr.Detail + ")"
		}
		return pqErr.Message
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
