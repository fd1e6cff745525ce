package zaim

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "standard date", input: "2025-07-08", want: NewDate(2025, 7, 8)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, 2, 29)},
		{name: "impossible day", input: "2025-02-30", wantErr: true},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong order", input: "08-07-2025", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want string
	}{
		{
			name: "standard date",
			date: NewDate(2024, 1, 15),
			want: `"2024-01-15"`,
		},
		{
			name: "local time is normalised to UTC",
			date: Date(time.Date(2024, 6, 1, 23, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))),
			want: `"2024-06-01"`,
		},
		{
			name: "zero value",
			date: Date{},
			want: `"0001-01-01"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "standard date",
			input: `"2024-01-15"`,
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "null is a no-op",
			input: `null`,
			want:  time.Time{},
		},
		{
			name:    "invalid format",
			input:   `"15-01-2024"`,
			wantErr: true,
		},
		{
			name:    "not a string",
			input:   `20240115`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Time())
		})
	}
}

func TestDateDecode(t *testing.T) {
	var d Date
	require.NoError(t, d.Decode("2011-11-07"))
	assert.Equal(t, NewDate(2011, 11, 7), d)
	assert.Error(t, d.Set("2011-13-01"))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "wall clock is Japan time",
			input: "2011-11-07 01:10:50",
			want:  time.Date(2011, 11, 6, 16, 10, 50, 0, time.UTC),
		},
		{
			name:  "offset is kept",
			input: "2025-07-08T03:04:05.123Z",
			want:  time.Date(2025, 7, 8, 3, 4, 5, 123000000, time.UTC),
		},
		{
			name:  "bare date",
			input: "2013-01-01",
			want:  time.Date(2012, 12, 31, 15, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseOptionalTimestamp(t *testing.T) {
	got, err := parseOptionalTimestamp(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTimestamp(Ptr(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTimestamp(Ptr("2013-01-01 00:00:00"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2013, got.In(Location).Year())
}
