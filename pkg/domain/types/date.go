package types

import (
	"fmt"
	"time"
)

// Date is a calendar day formatted "YYYY-MM-DD" in local time
type Date string

const dateLayout = "2006-01-02"

// Today returns the current local date
func Today() Date {
	return DateWithOffset(0)
}

// DateWithOffset returns the local date offsetDays from today
func DateWithOffset(offsetDays int) Date {
	return Date(time.Now().AddDate(0, 0, offsetDays).Format(dateLayout))
}

// IsValid checks if the date is a well-formed calendar day
func (d Date) IsValid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// String returns the string representation of the date
func (d Date) String() string {
	return string(d)
}

// ParseDate parses a string into a Date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date: %s", s)
	}
	return Date(s), nil
}
