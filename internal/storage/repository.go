package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	UpsertMedication(ctx context.Context, in MedicationRecord) error
	GetMedication(ctx context.Context, id string) (MedicationRecord, error)
	DeleteMedication(ctx context.Context, id string) error
	ListMedications(ctx context.Context, filter MedicationListFilter) ([]MedicationRecord, error)

	AppendDoseLog(ctx context.Context, in DoseLogRecord) error
	ListDoseLogs(ctx context.Context, filter DoseLogFilter) ([]DoseLogRecord, error)

	AppendMealLog(ctx context.Context, in MealLogRecord) error
	ListMealLogs(ctx context.Context, filter DayFilter) ([]MealLogRecord, error)

	AppendHydration(ctx context.Context, in HydrationEvent) error
	HydrationGlassesOn(ctx context.Context, day string) (int, error)

	AppendActivity(ctx context.Context, in ActivityRecord) error
	ListActivities(ctx context.Context, filter DayFilter) ([]ActivityRecord, error)

	CreateAppointment(ctx context.Context, in AppointmentRecord) error
	ListAppointments(ctx context.Context, filter DayFilter) ([]AppointmentRecord, error)
}
