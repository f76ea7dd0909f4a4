package parser

import (
	"io"

	"fjacquet/credit-report/internal/models"
)

// DefaultMaxBytes bounds how much of a document a parser reads.
const DefaultMaxBytes int64 = 10 << 20

// Parser turns one bureau document into an ExtractedReport.
type Parser interface {
	// Parse reads the whole document from r. Implementations return
	// parsererror types (MalformedInputError, FieldExtractionError,
	// InputTooLargeError) so callers can classify failures with KindOf.
	Parse(r io.Reader) (*models.ExtractedReport, error)
}

// Validator cheaply checks whether r looks like a supported document.
type Validator interface {
	ValidateFormat(r io.Reader) (bool, error)
}

// FullParser is a Parser that can also validate its input.
type FullParser interface {
	Parser
	Validator
}
