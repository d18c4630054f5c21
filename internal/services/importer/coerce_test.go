package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		input         string
		want          time.Time
		wantDefaulted bool
	}{
		{"2025-05-19", date(2025, time.May, 19), false},
		{"19/05/2025", date(2025, time.May, 19), false}, // 19 can only be a day
		{"13/01/2025", date(2025, time.January, 13), false},
		{"03/04/2025", date(2025, time.March, 4), false}, // ambiguous, month-first
		{"1/2/24", date(2024, time.January, 2), false},   // two-digit year
		{"11 Jan 2025", date(2025, time.January, 11), false},
		{"11 January 2025", date(2025, time.January, 11), false},
		{"  2025-05-19  ", date(2025, time.May, 19), false},
		{"31/02/2025", today(), true}, // overflow day rejected
		{"not a date", today(), true},
		{"", today(), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, defaulted := CoerceDate(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("CoerceDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if defaulted != tt.wantDefaulted {
				t.Errorf("CoerceDate(%q) defaulted = %v, want %v", tt.input, defaulted, tt.wantDefaulted)
			}
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		input         string
		want          string
		wantDefaulted bool
	}{
		{"45.00", "45", false},
		{"$1,234.56", "1234.56", false},
		{"£0", "0", false},
		{"-£5.00", "-5", false},
		{"  12.5  ", "12.5", false},
		{"EUR 99", "99", false},
		{"", "0", true},
		{"-", "0", true},
		{"free", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, defaulted := CoerceAmount(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("CoerceAmount(%q) = %s, want %s", tt.input, got, want)
			}
			if defaulted != tt.wantDefaulted {
				t.Errorf("CoerceAmount(%q) defaulted = %v, want %v", tt.input, defaulted, tt.wantDefaulted)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"true", true},
		{"True", true},
		{"1", true},
		{" yes ", true},
		{"no", false},
		{"false", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := CoerceBool(tt.input); got != tt.want {
			t.Errorf("CoerceBool(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCoerceText(t *testing.T) {
	tests := []struct {
		input  string
		quoted bool
		want   string
	}{
		{"  hello  ", false, "hello"},
		{`"hello"`, true, "hello"},
		{`"hello"`, false, `"hello"`},
		{`""`, true, ""},
		{`"`, true, `"`},
	}

	for _, tt := range tests {
		if got := CoerceText(tt.input, tt.quoted); got != tt.want {
			t.Errorf("CoerceText(%q, %v) = %q, want %q", tt.input, tt.quoted, got, tt.want)
		}
	}
}
