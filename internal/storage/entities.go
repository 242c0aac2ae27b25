package storage

import "time"

const (
	SyncStateSynced            = "synced"
	SyncStatePendingLocalWrite = "pending_local_write"
)

// MedicationRecord is the mirror row for one medication. Times and Days are
// stored as JSON text columns; SyncState records whether the row has been
// confirmed by the remote store or is a pending local write.
type MedicationRecord struct {
	ID         string
	UserID     string
	Name       string
	Dosage     string
	Times      []string
	Days       []string
	Timezone   string
	IsActive   bool
	LastTaken  *time.Time
	Provenance string
	SyncState  string
	CreatedAt  time.Time
}

type DoseLogRecord struct {
	ID                 string
	MedicationName     string
	Status             string
	ConfirmationMethod string
	Timestamp          time.Time
}

type MealLogRecord struct {
	ID              string
	MealType        string
	Items           []string
	CompletionLevel string
	LoggedAt        time.Time
}

type HydrationEvent struct {
	ID       string
	Glasses  int
	LoggedAt time.Time
}

type ActivityRecord struct {
	ID           string
	ActivityType string
	Notes        string
	LoggedAt     time.Time
}

type AppointmentRecord struct {
	ID              string
	Title           string
	AppointmentType string
	Location        string
	DateTime        time.Time
	Notes           string
}

type MedicationListFilter struct {
	SyncState  string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type DoseLogFilter struct {
	MedicationName string
	Status         string
	Day            string
	Limit          int
	Offset         int
}

type DayFilter struct {
	Day    string
	Limit  int
	Offset int
}
