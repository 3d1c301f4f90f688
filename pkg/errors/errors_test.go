package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "archive format",
			code:    errors.ErrArchiveFormat,
			message: "bad magic number for file header",
			wantStr: "[ARCHIVE_FORMAT] bad magic number for file header",
		},
		{
			name:    "area match",
			code:    errors.ErrAreaMatch,
			message: "no candidate line",
			wantStr: "[AREA_MATCH] no candidate line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("unexpected EOF")

	t.Run("wraps non-nil error", func(t *testing.T) {
		err := errors.Wrapf(base, errors.ErrArchiveFormat, "read %s", "Data/Tables.pak")
		require.NotNil(t, err)
		assert.Equal(t, "[ARCHIVE_FORMAT] read Data/Tables.pak: unexpected EOF", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
	})
}

func TestCodeHelpers(t *testing.T) {
	err := errors.New(errors.ErrAreaMatch, "no candidate").
		WithDetail("mod", "better_loot.pak").
		WithDetail("path", "libs/tables/item.xml")

	assert.True(t, errors.IsErrorCode(err, errors.ErrAreaMatch))
	assert.False(t, errors.IsErrorCode(err, errors.ErrLoadOrder))
	assert.Equal(t, errors.ErrAreaMatch, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, "better_loot.pak", errors.GetErrorDetails(err)["mod"])

	// Is compares codes only
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrAreaMatch, "other")))
}

func TestAs(t *testing.T) {
	inner := errors.New(errors.ErrAreaMatch, "no candidate line")

	tests := []struct {
		name   string
		err    error
		want   *errors.OmnipakError
		wantOK bool
	}{
		{"direct", inner, inner, true},
		{"wrapped by fmt", fmt.Errorf("apply: %w", inner), inner, true},
		{"plain error", stderrors.New("plain"), nil, false},
		{"nil", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := errors.As(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tt.want, got)
		})
	}
}
