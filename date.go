package zaim

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format of calendar dates: YYYY-MM-DD.
const DateFormat = "2006-01-02"

// timestampFormat is the wire format of modification and creation times.
const timestampFormat = "2006-01-02 15:04:05"

// Location is the zone used for wire timestamps that carry no offset. The API
// reports wall-clock times in Japan Standard Time.
var Location = time.FixedZone("JST", 9*60*60)

// Date is a calendar date without a time of day, stored as midnight UTC.
type Date time.Time

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string. Impossible dates such as 2025-02-30
// are rejected.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date(t), nil
}

// Decode implements envconfig.Decoder.
func (d *Date) Decode(value string) error {
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Set implements flag.Value.
func (d *Date) Set(value string) error { return d.Decode(value) }

func (d Date) String() string {
	return time.Time(d).UTC().Format(DateFormat)
}

func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// parseTimestamp reads the timestamp formats the API is known to return:
// "2006-01-02 15:04:05" in Location, RFC 3339 with an offset, or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timestampFormat, time.RFC3339Nano, DateFormat} {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// parseOptionalTimestamp treats a missing or empty value as absent.
func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
