package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeSlot is a fixed hourly interval of the day against which attendance
// and dispatch are tracked, formatted "HH:MM-HH:MM".
type TimeSlot string

var timeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// CanonicalTimeSlots returns the full hourly slots tracked by the system,
// 05:00 through 22:00.
func CanonicalTimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, 17)
	for h := 5; h < 22; h++ {
		slots = append(slots, TimeSlot(fmt.Sprintf("%02d:00-%02d:00", h, h+1)))
	}
	return slots
}

// IsValid checks the "HH:MM-HH:MM" shape. Non-canonical intervals are
// accepted for forward compatibility with records written by other clients.
func (s TimeSlot) IsValid() bool {
	return timeSlotPattern.MatchString(string(s))
}

// String returns the string representation of the time slot
func (s TimeSlot) String() string {
	return string(s)
}

// ID returns the colon-stripped form used in derived report identifiers,
// e.g. "08:00-09:00" -> "0800-0900".
func (s TimeSlot) ID() string {
	return strings.ReplaceAll(string(s), ":", "")
}

// StartHour returns the hour at which the slot begins
func (s TimeSlot) StartHour() (int, error) {
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid time slot: %s", s)
	}
	return strconv.Atoi(string(s)[:2])
}

// SlotForHour returns the canonical slot containing the given hour of day,
// or false if the hour falls outside the tracked window.
func SlotForHour(hour int) (TimeSlot, bool) {
	if hour < 5 || hour >= 22 {
		return "", false
	}
	return TimeSlot(fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)), true
}

// ParseTimeSlot parses a string into a TimeSlot
func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(s)
	if !slot.IsValid() {
		return "", fmt.Errorf("invalid time slot: %s", s)
	}
	return slot, nil
}
