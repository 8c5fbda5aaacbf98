package domain

import "time"

const dateLayout = "2006-01-02"

// StayRange is a half-open range of nights [CheckIn, CheckOut).
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Overlaps reports whether two stays claim at least one common night.
// A check-out on the same day as another check-in is not a conflict.
func (r StayRange) Overlaps(o StayRange) bool {
	return r.CheckIn.Before(o.CheckOut) && r.CheckOut.After(o.CheckIn)
}

func (r StayRange) Valid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Nights is the number of whole days between check-in and check-out.
func (r StayRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// ConflictsWith returns true when any of the given stays overlaps r.
func (r StayRange) ConflictsWith(stays []StayRange) bool {
	for _, s := range stays {
		if r.Overlaps(s) {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
