package monarch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())

	_, err = ParseDate("01/15/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-45")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"date only", `"2024-01-15"`, "2024-01-15"},
		{"rfc3339", `"2024-01-15T08:30:00Z"`, "2024-01-15"},
		{"no zone", `"2024-01-15T08:30:00"`, "2024-01-15"},
		{"null", `null`, ""},
		{"empty", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
