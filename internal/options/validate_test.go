package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	assert.NoError(t, ValidateSingleInputSource("spec", false, true, false))

	for _, sources := range [][]bool{{}, {false, false}, {true, true}, {true, false, true}} {
		err := ValidateSingleInputSource("spec", sources...)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrUsage))
		assert.Contains(t, err.Error(), "spec")
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name string
		want document.SourceFormat
	}{
		{"", document.SourceFormatJSON},
		{"json", document.SourceFormatJSON},
		{"yaml", document.SourceFormatYAML},
		{"yml", document.SourceFormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.name, document.SourceFormatJSON)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := ParseOutputFormat("xml", document.SourceFormatJSON)
	var usageErr *oaserrors.UsageError
	require.True(t, errors.As(err, &usageErr))
	assert.Equal(t, "xml", usageErr.Value)
}
