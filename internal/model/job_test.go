package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradYearUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		value int
		valid bool
	}{
		{"number", `{"passout": 2026}`, 2026, true},
		{"numeric string", `{"passout": "2025"}`, 2025, true},
		{"padded numeric string", `{"passout": " 2024 "}`, 2024, true},
		{"null", `{"passout": null}`, 0, false},
		{"empty string", `{"passout": ""}`, 0, false},
		{"non-numeric string", `{"passout": "soon"}`, 0, false},
		{"float", `{"passout": 2026.5}`, 0, false},
		{"absent", `{}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Passout GradYear `json:"passout"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.json), &payload))
			assert.Equal(t, tt.valid, payload.Passout.Valid)
			if tt.valid {
				assert.Equal(t, tt.value, payload.Passout.Value)
			}
		})
	}
}

func TestGradYearPtr(t *testing.T) {
	assert.Nil(t, GradYear{}.Ptr())

	p := GradYear{Value: 2026, Valid: true}.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 2026, *p)
}

func TestNormalizeKind(t *testing.T) {
	k, ok := NormalizeKind("job")
	require.True(t, ok)
	assert.Equal(t, JobKindJob, *k)

	k, ok = NormalizeKind("Internship")
	require.True(t, ok)
	assert.Equal(t, JobKindInternship, *k)

	k, ok = NormalizeKind("freelance")
	assert.False(t, ok)
	assert.Nil(t, k)

	k, ok = NormalizeKind("")
	assert.False(t, ok)
	assert.Nil(t, k)
}
