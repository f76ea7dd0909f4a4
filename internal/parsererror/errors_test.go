package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedInputError(t *testing.T) {
	tests := []struct {
		name     string
		err      *MalformedInputError
		expected string
	}{
		{
			name:     "message only",
			err:      &MalformedInputError{Msg: "XML content is empty"},
			expected: "XML content is empty",
		},
		{
			name:     "with cause",
			err:      &MalformedInputError{Msg: "XML parsing failed", Err: errors.New("unexpected EOF")},
			expected: "XML parsing failed: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFieldExtractionError(t *testing.T) {
	tests := []struct {
		name     string
		err      *FieldExtractionError
		expected string
	}{
		{
			name:     "explicit message",
			err:      &FieldExtractionError{Section: "report summary", Msg: "CAIS_Summary is not a mapping"},
			expected: "failed to extract report summary: CAIS_Summary is not a mapping",
		},
		{
			name:     "message taken from cause",
			err:      &FieldExtractionError{Section: "basic details", Err: errors.New("boom")},
			expected: "failed to extract basic details: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("original")

	assert.True(t, errors.Is(&MalformedInputError{Msg: "x", Err: cause}, cause))
	assert.True(t, errors.Is(&FieldExtractionError{Section: "s", Err: cause}, cause))
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "validation failed for a.txt: Only XML files are allowed",
		(&ValidationError{FilePath: "a.txt", Reason: "Only XML files are allowed"}).Error())
	assert.Equal(t, "validation failed: limit must be positive",
		(&ValidationError{Reason: "limit must be positive"}).Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"malformed", &MalformedInputError{Msg: "x"}, KindMalformedInput},
		{"wrapped malformed", fmt.Errorf("upload: %w", &MalformedInputError{Msg: "x"}), KindMalformedInput},
		{"extraction", &FieldExtractionError{Section: "s"}, KindFieldExtraction},
		{"validation", &ValidationError{Reason: "r"}, KindValidation},
		{"too large", fmt.Errorf("read: %w", &InputTooLargeError{Limit: 10}), KindInputTooLarge},
		{"other", errors.New("disk"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "malformed_input", KindMalformedInput.String())
	assert.Equal(t, "field_extraction", KindFieldExtraction.String())
	assert.Equal(t, "input_too_large", KindInputTooLarge.String())
	assert.Equal(t, "other", Kind(42).String())
}

func TestInputTooLargeError(t *testing.T) {
	assert.Equal(t, "input exceeds the 10485760 byte limit", (&InputTooLargeError{Limit: 10485760}).Error())
}
