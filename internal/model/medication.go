package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidProvenance = errors.New("model: invalid medication provenance")
	ErrInvalidWeekday    = errors.New("model: invalid weekday")
)

type Provenance string

const (
	ProvenanceRemote     Provenance = "remote"
	ProvenanceLocalCache Provenance = "local-cache"
)

func (p Provenance) IsValid() bool {
	switch p {
	case ProvenanceRemote, ProvenanceLocalCache:
		return true
	default:
		return false
	}
}

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func AllWeekdays() []string {
	return []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
}

func IsWeekdayName(name string) bool {
	return weekdayNames[strings.ToLower(strings.TrimSpace(name))]
}

// WeekdayName returns the lowercase schedule name for a wall-clock weekday.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

type Medication struct {
	ID         string
	Name       string
	Dosage     string
	Times      []string
	Days       []string
	Timezone   string
	IsActive   bool
	LastTaken  *time.Time
	Provenance Provenance
	CreatedAt  time.Time
}

func (m Medication) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: medication id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model: medication name is required")
	}
	if m.IsActive && len(m.Times) == 0 {
		return errors.New("model: active medication requires at least one scheduled time")
	}
	for _, raw := range m.Times {
		if _, err := MinutesOfDay(raw); err != nil {
			return err
		}
	}
	for _, day := range m.Days {
		if !IsWeekdayName(day) {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
		}
	}
	if !m.Provenance.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidProvenance, m.Provenance)
	}
	if m.CreatedAt.IsZero() {
		return errors.New("model: medication created_at is required")
	}
	return nil
}

// ScheduledOn reports whether the medication is scheduled for the named
// weekday. An empty Days set means every day, matching records created
// before days were configurable.
func (m Medication) ScheduledOn(day string) bool {
	if len(m.Days) == 0 {
		return true
	}
	day = strings.ToLower(strings.TrimSpace(day))
	for _, d := range m.Days {
		if strings.ToLower(d) == day {
			return true
		}
	}
	return false
}
