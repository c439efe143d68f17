// ABOUTME: Tests for the RFC3339-like and RFC822-like date parsing
// ABOUTME: Covers fractional second normalization, offsets and malformed input

package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRFC3339Like(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "plain UTC timestamp",
			input: "2021-05-01T12:30:00",
			want:  time.Date(2021, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "lowercase t is accepted",
			input: "2021-05-01t12:30:00",
			want:  time.Date(2021, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "positive offset shifts back to UTC",
			input: "2021-05-01T12:30:00+02:00",
			want:  time.Date(2021, 5, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "negative offset shifts forward to UTC",
			input: "2021-05-01T12:30:00-05:30",
			want:  time.Date(2021, 5, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "one fractional digit means tenths",
			input: "2021-05-01T12:30:00.5+02:00",
			want:  time.Date(2021, 5, 1, 10, 30, 0, 500000000, time.UTC),
		},
		{
			name:  "two fractional digits mean hundredths",
			input: "2021-05-01T12:30:00.25Z",
			want:  time.Date(2021, 5, 1, 12, 30, 0, 250000000, time.UTC),
		},
		{
			name:  "three fractional digits are milliseconds",
			input: "2021-05-01T12:30:00.125Z",
			want:  time.Date(2021, 5, 1, 12, 30, 0, 125000000, time.UTC),
		},
		{
			name:  "extra fractional digits are truncated to milliseconds",
			input: "2021-05-01T12:30:00.123456Z",
			want:  time.Date(2021, 5, 1, 12, 30, 0, 123000000, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRFC3339Like(tt.input)
			assert.WithinDuration(t, tt.want, got, 0)
		})
	}
}

func TestParseRFC3339LikeRejectsShortOrBrokenInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "date only", input: "2021-05-01"},
		{name: "one character short", input: "2021-05-01T12:30:0"},
		{name: "garbage of sufficient length", input: "this is not a date!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseRFC3339Like(tt.input).IsZero())
		})
	}
}

func TestParseRFC822Like(t *testing.T) {
	got := ParseRFC822Like("Tue, 10 Jun 2003 04:00:00 GMT")
	want := time.Date(2003, 6, 10, 4, 0, 0, 0, time.UTC)
	assert.WithinDuration(t, want, got, 0)
}

func TestParseRFC822LikeToleratesMissingWeekday(t *testing.T) {
	got := ParseRFC822Like("10 Jun 2003 04:00:00 GMT")
	want := time.Date(2003, 6, 10, 4, 0, 0, 0, time.UTC)
	assert.WithinDuration(t, want, got, 0)
}

func TestParseRFC822LikeReturnsZeroOnGarbage(t *testing.T) {
	assert.True(t, ParseRFC822Like("").IsZero())
	assert.True(t, ParseRFC822Like("not a date").IsZero())
}
