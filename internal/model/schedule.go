package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrScheduleFormat = errors.New("model: malformed schedule time")

const DefaultToleranceMinutes = 2

// MinutesOfDay parses an HH:MM clock string into minutes since midnight.
func MinutesOfDay(raw string) (int, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrScheduleFormat, raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrScheduleFormat, raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrScheduleFormat, raw)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrScheduleFormat, raw)
	}
	return h*60 + m, nil
}

// TimesMatch reports whether two HH:MM clock strings fall within tolerance
// minutes of each other, measured as absolute minutes-of-day difference.
// There is no wraparound across midnight: 23:59 and 00:01 are 1438 minutes
// apart, not 2. That boundary is a known limitation of the schedule model.
func TimesMatch(scheduled, current string, toleranceMinutes int) (bool, error) {
	sm, err := MinutesOfDay(scheduled)
	if err != nil {
		return false, err
	}
	cm, err := MinutesOfDay(current)
	if err != nil {
		return false, err
	}
	diff := sm - cm
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceMinutes, nil
}

// DueTimes returns the medication's scheduled times that match now within
// tolerance, in ascending time-of-day order. Inactive medications and days
// outside the schedule yield nothing. A malformed time string fails the
// whole medication with ErrScheduleFormat; callers evaluating a batch skip
// the medication and continue.
func DueTimes(med Medication, now time.Time, toleranceMinutes int) ([]string, error) {
	if !med.IsActive {
		return nil, nil
	}
	if !med.ScheduledOn(WeekdayName(now.Weekday())) {
		return nil, nil
	}
	current := now.Format("15:04")

	matched := make([]string, 0, 1)
	for _, scheduled := range med.Times {
		ok, err := TimesMatch(scheduled, current, toleranceMinutes)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, scheduled)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		mi, _ := MinutesOfDay(matched[i])
		mj, _ := MinutesOfDay(matched[j])
		return mi < mj
	})
	return matched, nil
}
