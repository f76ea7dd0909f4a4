// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fmt"
	"io"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parsererror"
)

// BaseParser provides the logger and input limit shared by parser
// implementations. Parsers embed it:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger   logging.Logger
	maxBytes int64
}

// NewBaseParser creates a BaseParser. A nil logger falls back to an info-level
// text logger on stderr.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger:   logger,
		maxBytes: DefaultMaxBytes,
	}
}

// SetLogger replaces the logger; nil is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// SetMaxBytes changes the input limit. Non-positive values restore the default.
func (b *BaseParser) SetMaxBytes(n int64) {
	if n <= 0 {
		n = DefaultMaxBytes
	}
	b.maxBytes = n
}

// MaxBytes returns the input limit.
func (b *BaseParser) MaxBytes() int64 {
	if b.maxBytes <= 0 {
		return DefaultMaxBytes
	}
	return b.maxBytes
}

// ReadInput reads all of r, failing with InputTooLargeError once more than
// MaxBytes have been seen.
func (b *BaseParser) ReadInput(r io.Reader) ([]byte, error) {
	limit := b.MaxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &parsererror.InputTooLargeError{Limit: limit}
	}
	return data, nil
}
