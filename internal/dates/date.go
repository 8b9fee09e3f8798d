// Package dates provides a calendar date type with no time of day and no zone.
//
// Habits are scheduled on local calendar dates. Converting through an instant
// can move a date across midnight, so everything in the habit domain that
// talks about "a day" uses Date instead of time.Time.
package dates

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the only accepted wire format.
const Layout = "2006-01-02"

// ErrInvalidDate is returned for strings that are not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date is a calendar date. The zero value is not a valid date.
type Date struct {
	d civil.Date
}

// New returns the date for the given year, month and day. Out of range values
// are normalised the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{d: civil.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))}
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Of returns the calendar date of t as observed in t's own location.
func Of(t time.Time) Date {
	return Date{d: civil.DateOf(t)}
}

// Today returns the current calendar date in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Of(time.Now().In(loc))
}

// IsValid reports whether d is a real calendar date.
func (d Date) IsValid() bool { return d.d.IsValid() }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d.d == civil.Date{} }

// String formats d as YYYY-MM-DD.
func (d Date) String() string { return d.d.String() }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return Date{d: d.d.AddDays(n)} }

// DaysSince returns the number of days from s to d (negative when d is earlier).
func (d Date) DaysSince(s Date) int { return d.d.DaysSince(s.d) }

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.d.Before(o.d) }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.d.After(o.d) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.d == o.d }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.d.In(time.UTC).Weekday()
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return d.d.In(loc)
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// MarshalJSON encodes d as "YYYY-MM-DD", or null for the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD". null leaves d unchanged.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(data))
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells gorm to use a DATE column.
func (Date) GormDataType() string { return "date" }

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner. Drivers hand dates back either as a time.Time
// (postgres, sqlite DATE columns) or as text. Text that does not parse leaves
// d as the zero value so one corrupt row cannot fail a whole query; callers
// skip invalid dates.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = Of(v)
	case string:
		*d = parseStored(v)
	case []byte:
		*d = parseStored(string(v))
	default:
		return fmt.Errorf("dates: cannot scan %T into Date", src)
	}
	return nil
}

func parseStored(s string) Date {
	if len(s) > len(Layout) {
		// Some drivers store DATE values as timestamps.
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return Of(t)
		}
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return Date{}
	}
	return parsed
}
