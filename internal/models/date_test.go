package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	want := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "serialized form", in: "2024-12-15T00:00:00.000Z"},
		{name: "bare date", in: "2024-12-15"},
		{name: "no fraction", in: "2024-12-15T00:00:00Z"},
		{name: "late with offset", in: "2024-12-15T23:30:00-05:00"},
		{name: "early with offset", in: "2024-12-15T01:00:00+09:00"},
		{name: "padded", in: " 2024-12-15 "},
		{name: "garbage", in: "next week", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "bad bare date", in: "2024-13-45", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFormatDueDateRoundTrip(t *testing.T) {
	in := time.Date(2024, 2, 29, 18, 5, 0, 0, time.FixedZone("PST", -8*3600))

	s := FormatDueDate(in)
	assert.Equal(t, "2024-02-29T00:00:00.000Z", s)

	out, err := ParseDueDate(s)
	require.NoError(t, err)
	assert.True(t, SameDay(in, out))
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 12, 15, 23, 59, 59, 999, time.FixedZone("X", 3*3600))
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), Midnight(in))
	assert.True(t, SameDay(in, time.Date(2024, 12, 15, 1, 0, 0, 0, time.UTC)))
	assert.False(t, SameDay(in, time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)))
}
