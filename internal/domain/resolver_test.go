package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDayOfWeekResolver_NextOccurrence(t *testing.T) {
	// Thursday
	now := time.Date(2025, 4, 17, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days WeekdayFlags
		want string
	}{
		{name: "next tuesday", days: FlagTuesday, want: "2025-04-22"},
		{name: "today resolves to next week", days: FlagThursday, want: "2025-04-24"},
		{name: "tomorrow", days: FlagFriday, want: "2025-04-18"},
		{name: "earliest of several", days: FlagMonday | FlagSaturday | FlagThursday, want: "2025-04-19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(DayOfWeekResolver(tt.days), now)
			if err != nil {
				t.Fatalf("ResolveDate error: %v", err)
			}
			if got.ISOString() != tt.want {
				t.Fatalf("date = %s, want %s", got.ISOString(), tt.want)
			}
		})
	}
}

func TestDayOfWeekResolver_SingleDayProperties(t *testing.T) {
	base := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC) // Sunday

	for offset := 0; offset < 7; offset++ {
		for _, hour := range []int{0, 9, 23} {
			now := base.AddDate(0, 0, offset).Add(time.Duration(hour) * time.Hour)
			today := DateOf(now)

			for d := time.Sunday; d <= time.Saturday; d++ {
				got, err := ResolveDate(DayOfWeekResolver(FlagOf(d)), now)
				if err != nil {
					t.Fatalf("ResolveDate error: %v", err)
				}
				if got.Weekday() != d {
					t.Fatalf("now=%v day=%v: weekday = %v", now, d, got.Weekday())
				}
				ahead := int(got.Time().Sub(today.Time()).Hours() / 24)
				if d == now.Weekday() && ahead != 7 {
					t.Fatalf("now=%v day=%v: %d days ahead, want 7", now, d, ahead)
				}
				if d != now.Weekday() && (ahead < 1 || ahead > 6) {
					t.Fatalf("now=%v day=%v: %d days ahead, want 1..6", now, d, ahead)
				}
			}
		}
	}
}

func TestDayOfWeekResolver_Errors(t *testing.T) {
	now := time.Date(2025, 4, 17, 13, 0, 0, 0, time.UTC)

	if _, err := ResolveDate(SerializedDateResolver{Type: ResolverSpecificDayOfWeek}, now); err == nil {
		t.Fatalf("expected error for missing args")
	}
	if _, err := ResolveDate(SerializedDateResolver{Type: ResolverSpecificDayOfWeek, Args: &DateResolverArgs{}}, now); err == nil {
		t.Fatalf("expected error for nil dayOfWeek")
	}
	if _, err := ResolveDate(DayOfWeekResolver(NoWeekdays), now); err == nil {
		t.Fatalf("expected error for empty mask")
	}
}

func TestResolveDate_CurrentDateAndUnknown(t *testing.T) {
	now := time.Date(2025, 4, 17, 23, 30, 0, 0, time.UTC)

	got, err := ResolveDate(CurrentDateResolver(), now)
	if err != nil {
		t.Fatalf("ResolveDate error: %v", err)
	}
	if got.ISOString() != "2025-04-17" {
		t.Fatalf("date = %s, want 2025-04-17", got.ISOString())
	}

	_, err = ResolveDate(SerializedDateResolver{Type: "NEXT_FULL_MOON"}, now)
	if !errors.Is(err, ErrUnknownDateResolver) {
		t.Fatalf("err = %v, want ErrUnknownDateResolver", err)
	}
}

func TestDayOfWeekResolver_UsesUTCToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	// 01:00 Thursday in Tokyo is still Wednesday in UTC.
	now := time.Date(2025, 4, 17, 1, 0, 0, 0, tokyo)

	got, err := ResolveDate(DayOfWeekResolver(FlagThursday), now)
	if err != nil {
		t.Fatalf("ResolveDate error: %v", err)
	}
	if got.ISOString() != "2025-04-17" || got.Location() != tokyo {
		t.Fatalf("date = %s in %v, want 2025-04-17 in Asia/Tokyo", got.ISOString(), got.Location())
	}
}
