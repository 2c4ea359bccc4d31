package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("UTC") {
		t.Error("UTC should be valid")
	}
	if !ValidateTimezone("") {
		t.Error("empty timezone should be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("unknown timezone should be invalid")
	}
}

func TestTodayIn(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 20:00 UTC on March 10 is already March 11 in Tokyo.
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	if got := TodayIn(now, time.UTC); got != NewDay(2024, time.March, 10) {
		t.Errorf("TodayIn(UTC) = %s, want 2024-03-10", got)
	}
	if got := TodayIn(now, tokyo); got != NewDay(2024, time.March, 11) {
		t.Errorf("TodayIn(Tokyo) = %s, want 2024-03-11", got)
	}
}

func TestParseDayOrToday(t *testing.T) {
	now := time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)

	got, err := ParseDayOrToday("", now, time.UTC)
	if err != nil {
		t.Fatalf("ParseDayOrToday(\"\") failed: %v", err)
	}
	if got != NewDay(2024, time.June, 17) {
		t.Errorf("ParseDayOrToday(\"\") = %s, want 2024-06-17", got)
	}

	got, err = ParseDayOrToday("2000-01-01", now, time.UTC)
	if err != nil {
		t.Fatalf("ParseDayOrToday() failed: %v", err)
	}
	if got != NewDay(2000, time.January, 1) {
		t.Errorf("ParseDayOrToday() = %s, want 2000-01-01", got)
	}

	if _, err := ParseDayOrToday("01/02/2000", now, time.UTC); err == nil {
		t.Error("ParseDayOrToday() should reject non-ISO dates")
	}
}
