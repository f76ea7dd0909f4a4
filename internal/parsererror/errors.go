// Package parsererror defines the error taxonomy of the extraction pipeline.
//
// Callers should not rely on string matching: KindOf maps any error returned by
// the pipeline onto a closed set of kinds that can be switched over.
package parsererror

import (
	"errors"
	"fmt"
)

// Kind identifies which class of failure an error belongs to.
type Kind int

const (
	// KindNone is returned for a nil error.
	KindNone Kind = iota
	// KindMalformedInput covers empty, non well-formed, or wrongly rooted documents.
	KindMalformedInput
	// KindFieldExtraction covers documents whose tree does not have the bureau shape.
	KindFieldExtraction
	// KindValidation covers rejected requests (wrong file type, bad parameters).
	KindValidation
	// KindInputTooLarge covers documents over the configured size limit.
	KindInputTooLarge
	// KindOther is anything outside the taxonomy (I/O, persistence, ...).
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedInput:
		return "malformed_input"
	case KindFieldExtraction:
		return "field_extraction"
	case KindValidation:
		return "validation"
	case KindInputTooLarge:
		return "input_too_large"
	default:
		return "other"
	}
}

// KindOf classifies err, looking through wrapped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var malformed *MalformedInputError
	if errors.As(err, &malformed) {
		return KindMalformedInput
	}
	var extraction *FieldExtractionError
	if errors.As(err, &extraction) {
		return KindFieldExtraction
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var tooLarge *InputTooLargeError
	if errors.As(err, &tooLarge) {
		return KindInputTooLarge
	}
	return KindOther
}

// MalformedInputError is returned when the raw document cannot be turned into
// a bureau tree: empty text, XML that is not well-formed, or a missing root.
type MalformedInputError struct {
	Msg string
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// FieldExtractionError is returned when a section of an otherwise well-formed
// document has an unexpected shape.
type FieldExtractionError struct {
	Section string
	Msg     string
	Err     error
}

func (e *FieldExtractionError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("failed to extract %s: %s", e.Section, msg)
}

func (e *FieldExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError represents a rejected input before extraction starts.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InputTooLargeError is returned when a document exceeds Limit bytes.
type InputTooLargeError struct {
	Limit int64
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input exceeds the %d byte limit", e.Limit)
}
