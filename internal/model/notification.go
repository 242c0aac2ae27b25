package model

import (
	"fmt"
	"time"
)

const occurrenceDateLayout = "2006-01-02"

// Occurrence is the unit of "has this alert already fired": one medication,
// one scheduled clock time, one calendar date.
type Occurrence struct {
	MedicationID string
	TimeOfDay    string
	Date         string
}

func NewOccurrence(medicationID, timeOfDay string, day time.Time) Occurrence {
	return Occurrence{
		MedicationID: medicationID,
		TimeOfDay:    timeOfDay,
		Date:         day.Format(occurrenceDateLayout),
	}
}

func (o Occurrence) Key() string {
	return o.MedicationID + "|" + o.TimeOfDay + "|" + o.Date
}

// DedupeTag is passed to the desktop notification sink so it can suppress
// duplicates even if the engine's own deduplicator is bypassed.
func (o Occurrence) DedupeTag() string {
	return fmt.Sprintf("med-reminder-%s-%s-%s", o.MedicationID, o.TimeOfDay, o.Date)
}

func DateOf(t time.Time) string {
	return t.Format(occurrenceDateLayout)
}

type Notification struct {
	ID           string
	MedicationID string
	Message      string
	TimeOfDay    string
	CreatedAt    time.Time
}

func ReminderMessage(med Medication) string {
	if med.Dosage != "" {
		return fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage)
	}
	return fmt.Sprintf("Time to take %s", med.Name)
}
