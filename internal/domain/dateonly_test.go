package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnly_StripsTimeAndFormats(t *testing.T) {
	d := DateOf(time.Date(2023, 2, 21, 13, 44, 5, 0, time.UTC))

	if got := d.ISOString(); got != "2023-02-21" {
		t.Fatalf("ISOString = %q, want %q", got, "2023-02-21")
	}
	if d.Time().Hour() != 0 || d.Time().Minute() != 0 || d.Time().Second() != 0 {
		t.Fatalf("time not normalized to midnight: %v", d.Time())
	}
	if d.Weekday() != time.Tuesday {
		t.Fatalf("Weekday = %v, want Tuesday", d.Weekday())
	}
	if got := NewDateOnly(2023, time.January, 1, time.UTC).String(); got != "Sun Jan 01 2023" {
		t.Fatalf("String = %q, want %q", got, "Sun Jan 01 2023")
	}
	if got := NewDateOnly(987, time.March, 4, time.UTC).ISOString(); got != "0987-03-04" {
		t.Fatalf("ISOString = %q, want zero padded year", got)
	}
}

func TestDateOnly_UnixMilliIgnoresZoneOffset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	d, err := ParseDateOnly("2023-01-01", loc)
	if err != nil {
		t.Fatalf("ParseDateOnly error: %v", err)
	}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if d.UnixMilli() != want {
		t.Fatalf("UnixMilli = %d, want %d", d.UnixMilli(), want)
	}
	if !d.Time().Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("Time = %v, want local midnight", d.Time())
	}
}

func TestDateOnly_ComparesByCalendarDate(t *testing.T) {
	a := DateOf(time.Date(2023, 1, 1, 23, 59, 0, 0, time.UTC))
	b := NewDateOnly(2023, time.January, 1, time.UTC)
	c := NewDateOnly(2023, time.January, 2, time.UTC)

	if !a.Equal(b) {
		t.Fatalf("expected %s == %s", a, b)
	}
	if !a.Before(c) || !c.After(a) {
		t.Fatalf("expected %s < %s", a, c)
	}
}

func TestDateOnly_AddDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	d := NewDateOnly(2025, time.March, 29, loc).AddDays(1)
	if d.ISOString() != "2025-03-30" {
		t.Fatalf("ISOString = %q, want 2025-03-30", d.ISOString())
	}
	if h := d.Time().Hour(); h != 0 {
		t.Fatalf("hour after DST change = %d, want 0", h)
	}
}

func TestDateOnly_WithTime(t *testing.T) {
	d := NewDateOnly(2023, time.January, 1, time.UTC)
	got := d.WithTime(NewTimeOnly(18, 41, 7, 250))

	want := time.Date(2023, 1, 1, 18, 41, 7, 250*int(time.Millisecond), time.UTC)
	if !got.Equal(want) {
		t.Fatalf("WithTime = %v, want %v", got, want)
	}
}

func TestDateOnly_JSON(t *testing.T) {
	d := NewDateOnly(2023, time.January, 1, time.Local)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(b) != `"2023-01-01"` {
		t.Fatalf("json = %s, want \"2023-01-01\"", b)
	}

	var back DateOnly
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}
	if err := json.Unmarshal([]byte(`20230101`), &back); err == nil {
		t.Fatalf("expected error for non-string JSON")
	}
}

func TestTimeOnly(t *testing.T) {
	tod := TimeOf(time.Date(2024, 5, 6, 9, 5, 30, 123_456_789, time.UTC))
	if tod.Hour() != 9 || tod.Minute() != 5 || tod.Second() != 30 || tod.Millisecond() != 123 {
		t.Fatalf("TimeOf = %s", tod)
	}
	if tod.Format() != "09:05" {
		t.Fatalf("Format = %q, want 09:05", tod.Format())
	}

	if !NewTimeOnly(6, 0, 0, 0).Before(NewTimeOnly(22, 0, 0, 0)) {
		t.Fatalf("06:00 should be before 22:00")
	}
	if got := NewTimeOnly(23, 70, 0, 0); got.Hour() != 0 || got.Minute() != 10 {
		t.Fatalf("overflow not normalized: %s", got)
	}

	parsed, err := ParseTimeOnly("14:45")
	if err != nil {
		t.Fatalf("ParseTimeOnly error: %v", err)
	}
	if !parsed.Equal(NewTimeOnly(14, 45, 0, 0)) {
		t.Fatalf("ParseTimeOnly = %s", parsed)
	}
	for _, bad := range []string{"", "24:00", "12:60", "noon", "1:2:3:4"} {
		if _, err := ParseTimeOnly(bad); err == nil {
			t.Fatalf("ParseTimeOnly(%q) expected error", bad)
		}
	}
}
