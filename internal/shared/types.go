package shared

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) String() string {
	return string(r)
}

// DateOnly is the wire format for metric dates.
const DateOnly = "2006-01-02"

// Day truncates t to local midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDay parses a YYYY-MM-DD string into a UTC midnight timestamp.
// Full RFC 3339 timestamps are accepted too and truncated to their day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
