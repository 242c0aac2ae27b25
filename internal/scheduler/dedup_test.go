package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

func TestDeduplicatorAdmitsOncePerDate(t *testing.T) {
	d := NewDeduplicator()
	day := time.Date(2026, 2, 9, 8, 1, 0, 0, time.UTC)
	occ := model.NewOccurrence("med-1", "08:00", day)

	if !d.Admit(occ) {
		t.Fatal("first admit should return true")
	}
	if d.Admit(occ) {
		t.Fatal("second admit for the same occurrence must return false")
	}
	if d.Admit(occ) {
		t.Fatal("admit must stay false on every later call within the date")
	}

	// Same medication and time on the next day is a fresh occurrence.
	nextDay := model.NewOccurrence("med-1", "08:00", day.AddDate(0, 0, 1))
	if !d.Admit(nextDay) {
		t.Fatal("date rollover should admit the occurrence again")
	}
}

func TestDeduplicatorMarkTakenEvicts(t *testing.T) {
	d := NewDeduplicator()
	day := time.Date(2026, 2, 9, 8, 1, 0, 0, time.UTC)
	morning := model.NewOccurrence("med-1", "08:00", day)
	evening := model.NewOccurrence("med-1", "20:00", day)
	other := model.NewOccurrence("med-2", "08:00", day)

	d.Admit(morning)
	d.Admit(evening)
	d.Admit(other)

	d.MarkTaken("med-1", morning.Date)

	if !d.Admit(morning) {
		t.Fatal("mark taken should evict med-1 occurrences for the date")
	}
	if d.Admit(other) {
		t.Fatal("mark taken must not touch other medications")
	}
}

func TestDeduplicatorPruneBefore(t *testing.T) {
	d := NewDeduplicator()
	yesterday := time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)

	d.Admit(model.NewOccurrence("med-1", "08:00", yesterday))
	d.Admit(model.NewOccurrence("med-1", "08:00", today))

	d.PruneBefore(model.DateOf(today))

	if d.Len() != 1 {
		t.Fatalf("expected one surviving entry, got %d", d.Len())
	}
	if d.Admit(model.NewOccurrence("med-1", "08:00", today)) {
		t.Fatal("today's entry must survive the prune")
	}
	if !d.Admit(model.NewOccurrence("med-1", "08:00", yesterday)) {
		t.Fatal("yesterday's entry should have been pruned")
	}
}
