package scheduler

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

// DueEntry is one (medication, matched time) pair produced by an evaluation.
// A medication with two scheduled times inside the tolerance window in the
// same pass yields two entries.
type DueEntry struct {
	Medication model.Medication
	TimeOfDay  string
}

func (e DueEntry) Occurrence(now time.Time) model.Occurrence {
	return model.NewOccurrence(e.Medication.ID, e.TimeOfDay, now)
}

// EvaluateDueSet applies the schedule predicate across all medications.
// Result order is input medication order, then ascending time-of-day within
// one medication. A medication with a malformed time string is skipped and
// reported in the returned error slice; it never aborts the batch.
func EvaluateDueSet(meds []model.Medication, now time.Time, toleranceMinutes int) ([]DueEntry, []error) {
	entries := make([]DueEntry, 0)
	var errs []error
	for _, med := range meds {
		matched, err := model.DueTimes(med, now, toleranceMinutes)
		if err != nil {
			errs = append(errs, fmt.Errorf("medication %s: %w", med.ID, err))
			continue
		}
		for _, timeOfDay := range matched {
			entries = append(entries, DueEntry{Medication: med, TimeOfDay: timeOfDay})
		}
	}
	return entries, errs
}
