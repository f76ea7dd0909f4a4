package parser

import (
	"errors"
	"strings"
	"testing"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		bp := NewBaseParser(mockLog)
		assert.Equal(t, mockLog, bp.GetLogger())
		assert.Equal(t, DefaultMaxBytes, bp.MaxBytes())
	})

	t.Run("with nil logger", func(t *testing.T) {
		bp := NewBaseParser(nil)
		assert.NotNil(t, bp.GetLogger())
	})
}

func TestBaseParser_SetLogger(t *testing.T) {
	first := logging.NewMockLogger()
	second := logging.NewMockLogger()
	bp := NewBaseParser(first)

	bp.SetLogger(second)
	assert.Equal(t, second, bp.GetLogger())

	bp.SetLogger(nil)
	assert.Equal(t, second, bp.GetLogger(), "nil must not replace the logger")
}

func TestBaseParser_SetMaxBytes(t *testing.T) {
	bp := NewBaseParser(logging.NewMockLogger())

	bp.SetMaxBytes(128)
	assert.Equal(t, int64(128), bp.MaxBytes())

	bp.SetMaxBytes(0)
	assert.Equal(t, DefaultMaxBytes, bp.MaxBytes())

	var zero BaseParser
	assert.Equal(t, DefaultMaxBytes, zero.MaxBytes())
}

func TestBaseParser_ReadInput(t *testing.T) {
	bp := NewBaseParser(logging.NewMockLogger())
	bp.SetMaxBytes(5)

	t.Run("at the limit", func(t *testing.T) {
		data, err := bp.ReadInput(strings.NewReader("12345"))
		require.NoError(t, err)
		assert.Equal(t, "12345", string(data))
	})

	t.Run("over the limit", func(t *testing.T) {
		_, err := bp.ReadInput(strings.NewReader("123456"))
		require.Error(t, err)
		assert.Equal(t, parsererror.KindInputTooLarge, parsererror.KindOf(err))
	})

	t.Run("reader failure", func(t *testing.T) {
		_, err := bp.ReadInput(failingReader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
		assert.Equal(t, parsererror.KindOther, parsererror.KindOf(err))
	})
}
