package severity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"error level", SeverityError, "error"},
		{"warning level", SeverityWarning, "warning"},
		{"info level", SeverityInfo, "info"},
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeveritySymbol(t *testing.T) {
	assert.Equal(t, "✗", SeverityError.Symbol())
	assert.Equal(t, "⚠", SeverityWarning.Symbol())
	assert.Equal(t, "ℹ", SeverityInfo.Symbol())
	assert.Equal(t, "?", Severity(42).Symbol())
}

func TestSeverityTextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"level": SeverityWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warning"}`, string(data))

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("info")))
	assert.Equal(t, SeverityInfo, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
