package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "medtui-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestMedicationUpsertGetList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	med := MedicationRecord{
		ID:         "med-1",
		UserID:     "user-1",
		Name:       "Lisinopril",
		Dosage:     "10mg",
		Times:      []string{"08:00", "20:00"},
		Days:       []string{"monday", "thursday"},
		Timezone:   "Australia/Sydney",
		IsActive:   true,
		Provenance: "remote",
		SyncState:  SyncStateSynced,
		CreatedAt:  created,
	}
	if err := repo.UpsertMedication(ctx, med); err != nil {
		t.Fatalf("upsert medication: %v", err)
	}

	got, err := repo.GetMedication(ctx, "med-1")
	if err != nil {
		t.Fatalf("get medication: %v", err)
	}
	if got.Name != "Lisinopril" || got.Dosage != "10mg" {
		t.Fatalf("unexpected medication: %+v", got)
	}
	if len(got.Times) != 2 || got.Times[0] != "08:00" {
		t.Fatalf("times not round-tripped: %v", got.Times)
	}
	if len(got.Days) != 2 || got.Days[1] != "thursday" {
		t.Fatalf("days not round-tripped: %v", got.Days)
	}
	if got.LastTaken != nil {
		t.Fatalf("expected nil last_taken, got %v", got.LastTaken)
	}

	// Upsert with the same id updates in place.
	taken := parseRFC3339(t, "2026-02-09T08:01:00Z")
	med.LastTaken = &taken
	med.SyncState = SyncStatePendingLocalWrite
	if err := repo.UpsertMedication(ctx, med); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = repo.GetMedication(ctx, "med-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.LastTaken == nil || !got.LastTaken.Equal(taken) {
		t.Fatalf("last_taken not updated: %v", got.LastTaken)
	}
	if got.SyncState != SyncStatePendingLocalWrite {
		t.Fatalf("sync_state not updated: %s", got.SyncState)
	}

	items, err := repo.ListMedications(ctx, MedicationListFilter{SyncState: SyncStatePendingLocalWrite})
	if err != nil {
		t.Fatalf("list medications: %v", err)
	}
	if len(items) != 1 || items[0].ID != "med-1" {
		t.Fatalf("unexpected list result: %+v", items)
	}
}

func TestMedicationListActiveOnlyAndOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := parseRFC3339(t, "2026-02-01T08:00:00Z")
	second := parseRFC3339(t, "2026-02-02T08:00:00Z")
	base := MedicationRecord{
		Times:      []string{"08:00"},
		Provenance: "remote",
		SyncState:  SyncStateSynced,
	}

	a := base
	a.ID, a.Name, a.IsActive, a.CreatedAt = "med-a", "Metformin", true, second
	b := base
	b.ID, b.Name, b.IsActive, b.CreatedAt = "med-b", "Lisinopril", true, first
	c := base
	c.ID, c.Name, c.IsActive, c.CreatedAt = "med-c", "Paused", false, first
	for _, rec := range []MedicationRecord{a, b, c} {
		if err := repo.UpsertMedication(ctx, rec); err != nil {
			t.Fatalf("upsert %s: %v", rec.ID, err)
		}
	}

	items, err := repo.ListMedications(ctx, MedicationListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list medications: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active medications, got %d", len(items))
	}
	if items[0].ID != "med-b" || items[1].ID != "med-a" {
		t.Fatalf("expected created_at ordering, got %s, %s", items[0].ID, items[1].ID)
	}
}

func TestMedicationDeleteAndNotFound(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetMedication(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteMedication(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}

	med := MedicationRecord{
		ID:         "med-1",
		Name:       "Lisinopril",
		Times:      []string{"08:00"},
		IsActive:   true,
		Provenance: "remote",
		SyncState:  SyncStateSynced,
		CreatedAt:  parseRFC3339(t, "2026-02-09T12:00:00Z"),
	}
	if err := repo.UpsertMedication(ctx, med); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.DeleteMedication(ctx, "med-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetMedication(ctx, "med-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDoseLogAppendAndFilterByDay(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	logs := []DoseLogRecord{
		{ID: "log-1", MedicationName: "Lisinopril", Status: "taken", ConfirmationMethod: "tui", Timestamp: parseRFC3339(t, "2026-02-09T08:01:00Z")},
		{ID: "log-2", MedicationName: "Lisinopril", Status: "taken", ConfirmationMethod: "tui", Timestamp: parseRFC3339(t, "2026-02-08T08:02:00Z")},
		{ID: "log-3", MedicationName: "Metformin", Status: "skipped", ConfirmationMethod: "tui", Timestamp: parseRFC3339(t, "2026-02-09T07:30:00Z")},
	}
	for _, l := range logs {
		if err := repo.AppendDoseLog(ctx, l); err != nil {
			t.Fatalf("append %s: %v", l.ID, err)
		}
	}

	got, err := repo.ListDoseLogs(ctx, DoseLogFilter{Day: "2026-02-09"})
	if err != nil {
		t.Fatalf("list by day: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 logs on 2026-02-09, got %d", len(got))
	}
	if got[0].ID != "log-1" {
		t.Fatalf("expected newest first, got %s", got[0].ID)
	}

	got, err = repo.ListDoseLogs(ctx, DoseLogFilter{MedicationName: "Lisinopril", Status: "taken", Day: "2026-02-09"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(got) != 1 || got[0].ID != "log-1" {
		t.Fatalf("unexpected filtered result: %+v", got)
	}
}

func TestDailyLivingTables(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	meal := MealLogRecord{
		ID:              "meal-1",
		MealType:        "breakfast",
		Items:           []string{"oatmeal", "orange juice"},
		CompletionLevel: "full",
		LoggedAt:        parseRFC3339(t, "2026-02-09T07:45:00Z"),
	}
	if err := repo.AppendMealLog(ctx, meal); err != nil {
		t.Fatalf("append meal: %v", err)
	}
	meals, err := repo.ListMealLogs(ctx, DayFilter{Day: "2026-02-09"})
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Items[1] != "orange juice" {
		t.Fatalf("unexpected meals: %+v", meals)
	}

	for i, when := range []string{"2026-02-09T08:00:00Z", "2026-02-09T12:00:00Z", "2026-02-08T18:00:00Z"} {
		ev := HydrationEvent{ID: "wat-" + string(rune('a'+i)), Glasses: 1, LoggedAt: parseRFC3339(t, when)}
		if err := repo.AppendHydration(ctx, ev); err != nil {
			t.Fatalf("append hydration: %v", err)
		}
	}
	total, err := repo.HydrationGlassesOn(ctx, "2026-02-09")
	if err != nil {
		t.Fatalf("hydration total: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 glasses on 2026-02-09, got %d", total)
	}

	act := ActivityRecord{ID: "act-1", ActivityType: "walk", Notes: "20 minutes", LoggedAt: parseRFC3339(t, "2026-02-09T10:00:00Z")}
	if err := repo.AppendActivity(ctx, act); err != nil {
		t.Fatalf("append activity: %v", err)
	}
	acts, err := repo.ListActivities(ctx, DayFilter{Day: "2026-02-09"})
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(acts) != 1 || acts[0].ActivityType != "walk" {
		t.Fatalf("unexpected activities: %+v", acts)
	}

	appt := AppointmentRecord{
		ID:              "appt-1",
		Title:           "Dr. Smith - checkup",
		AppointmentType: "medical",
		Location:        "City Clinic",
		DateTime:        parseRFC3339(t, "2026-02-09T15:00:00Z"),
	}
	if err := repo.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	appts, err := repo.ListAppointments(ctx, DayFilter{Day: "2026-02-09"})
	if err != nil {
		t.Fatalf("list appointments: %v", err)
	}
	if len(appts) != 1 || appts[0].Title != "Dr. Smith - checkup" {
		t.Fatalf("unexpected appointments: %+v", appts)
	}
}
