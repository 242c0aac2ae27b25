package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

func testMedication(id, name string, times []string) model.Medication {
	return model.Medication{
		ID:         id,
		Name:       name,
		Times:      times,
		Days:       model.AllWeekdays(),
		IsActive:   true,
		Provenance: model.ProvenanceRemote,
		CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEvaluateDueSetOrdering(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	meds := []model.Medication{
		testMedication("med-2", "Metformin", []string{"08:01", "07:59"}),
		testMedication("med-1", "Lisinopril", []string{"08:00"}),
	}

	entries, errs := EvaluateDueSet(meds, now, model.DefaultToleranceMinutes)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Input medication order first, then ascending time-of-day.
	if entries[0].Medication.ID != "med-2" || entries[0].TimeOfDay != "07:59" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Medication.ID != "med-2" || entries[1].TimeOfDay != "08:01" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if entries[2].Medication.ID != "med-1" || entries[2].TimeOfDay != "08:00" {
		t.Fatalf("unexpected third entry: %+v", entries[2])
	}
}

func TestEvaluateDueSetSkipsMalformedAndContinues(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	broken := testMedication("med-bad", "Broken", []string{"8 o'clock"})
	good := testMedication("med-1", "Lisinopril", []string{"08:00"})

	entries, errs := EvaluateDueSet([]model.Medication{broken, good}, now, model.DefaultToleranceMinutes)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if !errors.Is(errs[0], model.ErrScheduleFormat) {
		t.Fatalf("expected ErrScheduleFormat, got %v", errs[0])
	}
	if len(entries) != 1 || entries[0].Medication.ID != "med-1" {
		t.Fatalf("the healthy medication must still be evaluated, got %+v", entries)
	}
}

func TestEvaluateDueSetIgnoresInactive(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	paused := testMedication("med-1", "Paused", []string{"08:00"})
	paused.IsActive = false

	entries, errs := EvaluateDueSet([]model.Medication{paused}, now, model.DefaultToleranceMinutes)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 0 {
		t.Fatalf("inactive medications never contribute to the due set, got %+v", entries)
	}
}
