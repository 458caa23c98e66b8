package excel

import (
	"testing"
	"time"
)

func TestExtractETAFromText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  time.Time
		found bool
	}{
		{
			"Carrier annotation with boat name",
			"ETA Rotterdam: 1/10/26; Boat Name:CMA CGM PALAIS",
			time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Four digit year",
			"ETA Los Angeles: 12/28/2025",
			time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"First match wins over a later one",
			"ETA Hamburg: 2/1/26 then ETA Antwerp: 3/1/26",
			time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
			true,
		},
		{"No ETA token", "Boat Name:CMA CGM PALAIS", time.Time{}, false},
		{"ETA without date", "ETA Rotterdam: pending", time.Time{}, false},
		{"Empty text", "", time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractETAFromText(tc.text)
			if found != tc.found {
				t.Fatalf("ExtractETAFromText(%q): found = %v, want %v", tc.text, found, tc.found)
			}
			if found && !got.Equal(tc.want) {
				t.Errorf("ExtractETAFromText(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestETAFromDate(t *testing.T) {
	eta := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	got := ETAFromDate(eta)
	want := time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ETAFromDate(%v) = %v, want %v", eta, got, want)
	}

	// Offset crosses a month boundary by calendar days, not 24h blocks.
	eta = time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC)
	if got := ETAFromDate(eta); got.Month() != time.March || got.Day() != 5 {
		t.Errorf("ETAFromDate(%v) = %v, want March 5", eta, got)
	}
}

func TestFormatShortDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), "1/22/25"},
		{time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), "1/4/26"},
		{time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC), "12/31/30"},
		{time.Date(2009, 6, 7, 0, 0, 0, 0, time.UTC), "6/7/09"},
	}
	for _, tc := range tests {
		if got := FormatShortDate(tc.date); got != tc.want {
			t.Errorf("FormatShortDate(%v) = %q, want %q", tc.date, got, tc.want)
		}
	}
}
