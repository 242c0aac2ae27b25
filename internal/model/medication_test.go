package model

import (
	"errors"
	"testing"
	"time"
)

func TestMedicationValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	med := Medication{
		ID:         "med-1",
		Name:       "Lisinopril",
		Dosage:     "10mg",
		Times:      []string{"08:00", "20:00"},
		Days:       []string{"monday", "thursday"},
		Timezone:   "Australia/Sydney",
		IsActive:   true,
		Provenance: ProvenanceRemote,
		CreatedAt:  now,
	}
	if err := med.Validate(); err != nil {
		t.Fatalf("expected valid medication, got error: %v", err)
	}
}

func TestMedicationValidateActiveRequiresTimes(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	med := Medication{
		ID:         "med-1",
		Name:       "Lisinopril",
		IsActive:   true,
		Provenance: ProvenanceRemote,
		CreatedAt:  now,
	}
	if err := med.Validate(); err == nil {
		t.Fatal("expected error for active medication without times")
	}

	med.IsActive = false
	if err := med.Validate(); err != nil {
		t.Fatalf("inactive medication without times should validate, got: %v", err)
	}
}

func TestMedicationValidateRejectsBadTimeAndDay(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	med := Medication{
		ID:         "med-1",
		Name:       "Lisinopril",
		Times:      []string{"25:00"},
		IsActive:   true,
		Provenance: ProvenanceRemote,
		CreatedAt:  now,
	}
	if err := med.Validate(); !errors.Is(err, ErrScheduleFormat) {
		t.Fatalf("expected ErrScheduleFormat, got %v", err)
	}

	med.Times = []string{"08:00"}
	med.Days = []string{"funday"}
	if err := med.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}

	med.Days = []string{"monday"}
	med.Provenance = Provenance("unknown")
	if err := med.Validate(); !errors.Is(err, ErrInvalidProvenance) {
		t.Fatalf("expected ErrInvalidProvenance, got %v", err)
	}
}

func TestMedicationScheduledOn(t *testing.T) {
	med := Medication{Days: []string{"monday", "Wednesday"}}
	if !med.ScheduledOn("monday") {
		t.Fatal("expected monday to be scheduled")
	}
	if !med.ScheduledOn("wednesday") {
		t.Fatal("weekday comparison should be case-insensitive")
	}
	if med.ScheduledOn("friday") {
		t.Fatal("friday is not in the schedule")
	}

	everyDay := Medication{}
	if !everyDay.ScheduledOn("sunday") {
		t.Fatal("empty days set means every day")
	}
}

func TestOccurrenceKeyAndTag(t *testing.T) {
	day := time.Date(2026, 2, 9, 8, 1, 0, 0, time.UTC)
	occ := NewOccurrence("med-1", "08:00", day)
	if occ.Key() != "med-1|08:00|2026-02-09" {
		t.Fatalf("unexpected key: %s", occ.Key())
	}
	if occ.DedupeTag() != "med-reminder-med-1-08:00-2026-02-09" {
		t.Fatalf("unexpected dedupe tag: %s", occ.DedupeTag())
	}
}

func TestDoseLogValidate(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 1, 0, 0, time.UTC)
	log := DoseLog{
		ID:                 "log-1",
		MedicationName:     "Lisinopril",
		Status:             DoseStatusTaken,
		ConfirmationMethod: "tui",
		Timestamp:          now,
	}
	if err := log.Validate(); err != nil {
		t.Fatalf("expected valid dose log, got: %v", err)
	}

	log.Status = DoseStatus("refused")
	if err := log.Validate(); !errors.Is(err, ErrInvalidDoseStatus) {
		t.Fatalf("expected ErrInvalidDoseStatus, got %v", err)
	}
}
