package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/storage"
	"github.com/sandeepkv93/medtui/internal/transport"
)

// LocalIDPrefix marks identifiers issued locally while the remote store was
// unreachable, so they can never collide with server-issued ids.
const LocalIDPrefix = "local-"

// Transport is the remote medication API as the cache sees it: fallible,
// idempotent-retryable request/response calls.
type Transport interface {
	ListMedications(ctx context.Context, userID string) ([]model.Medication, error)
	CreateMedication(ctx context.Context, userID string, fields transport.CreateMedicationFields) (model.Medication, error)
	RecordDoseEvent(ctx context.Context, userID, medicationName, status, confirmationMethod string) error
}

// Cache is the local-first view over the remote medication store. Reads
// prefer remote-confirmed data and fall back to the durable sqlite mirror;
// writes go through to the remote API and degrade to a pending local write
// on failure. The user is never blocked on a network failure.
type Cache struct {
	remote Transport
	mirror storage.Repository
	userID string
	newID  func() string
	now    func() time.Time

	// Serializes mirror mutation across the driver's tick and UI actions.
	mu sync.Mutex
}

type Option func(*Cache)

func WithIDSource(newID func() string) Option {
	return func(c *Cache) { c.newID = newID }
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(remote Transport, mirror storage.Repository, userID string, opts ...Option) *Cache {
	c := &Cache{
		remote: remote,
		mirror: mirror,
		userID: userID,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the most recently known medication state. A successful remote
// list is merged into the mirror first; a transport failure silently falls
// back to the mirror contents.
func (c *Cache) Read(ctx context.Context) ([]model.Medication, error) {
	remote, err := c.remote.ListMedications(ctx, c.userID)
	if err == nil {
		if mergeErr := c.Merge(ctx, remote); mergeErr != nil {
			return nil, mergeErr
		}
	}
	return c.mirrorView(ctx)
}

// Medications implements the scheduler's MedicationSource.
func (c *Cache) Medications(ctx context.Context) ([]model.Medication, error) {
	return c.Read(ctx)
}

// WriteThrough creates a medication. On transport failure it synthesizes a
// locally identified record tagged local-cache and stores it as a pending
// local write; the caller still gets a usable record back.
func (c *Cache) WriteThrough(ctx context.Context, fields transport.CreateMedicationFields) (model.Medication, error) {
	med, err := c.remote.CreateMedication(ctx, c.userID, fields)
	if err == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if storeErr := c.mirror.UpsertMedication(ctx, toRecord(med, c.userID, storage.SyncStateSynced)); storeErr != nil {
			return model.Medication{}, storeErr
		}
		return med, nil
	}

	med = model.Medication{
		ID:         LocalIDPrefix + c.newID(),
		Name:       fields.Name,
		Dosage:     fields.Dosage,
		Times:      fields.Times,
		Days:       fields.Days,
		Timezone:   fields.Timezone,
		IsActive:   fields.IsActive,
		Provenance: model.ProvenanceLocalCache,
		CreatedAt:  c.now().UTC(),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if storeErr := c.mirror.UpsertMedication(ctx, toRecord(med, c.userID, storage.SyncStatePendingLocalWrite)); storeErr != nil {
		return model.Medication{}, storeErr
	}
	return med, nil
}

// Merge reconciles a remote snapshot into the mirror. Remote entries replace
// their mirror rows as synced; synced rows absent from the snapshot are
// removed, since the server is the source of truth for records it issued;
// pending local writes are always retained, whether or not the snapshot
// knows them.
func (c *Cache) Merge(ctx context.Context, remote []model.Medication) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.mirror.ListMedications(ctx, storage.MedicationListFilter{})
	if err != nil {
		return fmt.Errorf("reconcile: list mirror: %w", err)
	}

	seen := make(map[string]bool, len(remote))
	for _, med := range remote {
		med.Provenance = model.ProvenanceRemote
		seen[med.ID] = true
		if err := c.mirror.UpsertMedication(ctx, toRecord(med, c.userID, storage.SyncStateSynced)); err != nil {
			return fmt.Errorf("reconcile: upsert %s: %w", med.ID, err)
		}
	}
	for _, rec := range existing {
		if seen[rec.ID] || rec.SyncState == storage.SyncStatePendingLocalWrite {
			continue
		}
		if err := c.mirror.DeleteMedication(ctx, rec.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("reconcile: delete %s: %w", rec.ID, err)
		}
	}
	return nil
}

// Pending lists medications still waiting for a successful remote write.
func (c *Cache) Pending(ctx context.Context) ([]model.Medication, error) {
	recs, err := c.mirror.ListMedications(ctx, storage.MedicationListFilter{SyncState: storage.SyncStatePendingLocalWrite})
	if err != nil {
		return nil, err
	}
	out := make([]model.Medication, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toModel(rec))
	}
	return out, nil
}

// RecordDose logs a dose event. The local log and LastTaken update always
// happen; the remote call is best effort. Recording the same (medication,
// status) twice on one calendar day is a no-op the second time, so marking
// taken is idempotent per day.
func (c *Cache) RecordDose(ctx context.Context, medicationName string, status model.DoseStatus) (model.DoseLog, error) {
	now := c.now().UTC()
	today := model.DateOf(now)

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.mirror.ListDoseLogs(ctx, storage.DoseLogFilter{
		MedicationName: medicationName,
		Status:         string(status),
		Day:            today,
		Limit:          1,
	})
	if err != nil {
		return model.DoseLog{}, err
	}
	if len(existing) > 0 {
		return doseLogToModel(existing[0]), nil
	}

	entry := model.DoseLog{
		ID:                 c.newID(),
		MedicationName:     medicationName,
		Status:             status,
		ConfirmationMethod: "tui",
		Timestamp:          now,
	}
	if err := c.mirror.AppendDoseLog(ctx, storage.DoseLogRecord{
		ID:                 entry.ID,
		MedicationName:     entry.MedicationName,
		Status:             string(entry.Status),
		ConfirmationMethod: entry.ConfirmationMethod,
		Timestamp:          entry.Timestamp,
	}); err != nil {
		return model.DoseLog{}, err
	}

	if status == model.DoseStatusTaken {
		if err := c.updateLastTaken(ctx, medicationName, now); err != nil {
			return model.DoseLog{}, err
		}
	}

	// Best effort: a transport failure leaves the local log as the record.
	_ = c.remote.RecordDoseEvent(ctx, c.userID, medicationName, string(status), entry.ConfirmationMethod)

	return entry, nil
}

// DoseLogs returns the day's dose history, newest first.
func (c *Cache) DoseLogs(ctx context.Context, day string) ([]model.DoseLog, error) {
	recs, err := c.mirror.ListDoseLogs(ctx, storage.DoseLogFilter{Day: day})
	if err != nil {
		return nil, err
	}
	out := make([]model.DoseLog, 0, len(recs))
	for _, rec := range recs {
		out = append(out, doseLogToModel(rec))
	}
	return out, nil
}

func (c *Cache) updateLastTaken(ctx context.Context, medicationName string, when time.Time) error {
	recs, err := c.mirror.ListMedications(ctx, storage.MedicationListFilter{})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.Name != medicationName {
			continue
		}
		rec.LastTaken = &when
		if err := c.mirror.UpsertMedication(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) mirrorView(ctx context.Context) ([]model.Medication, error) {
	recs, err := c.mirror.ListMedications(ctx, storage.MedicationListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]model.Medication, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toModel(rec))
	}
	return out, nil
}

func toRecord(med model.Medication, userID, syncState string) storage.MedicationRecord {
	return storage.MedicationRecord{
		ID:         med.ID,
		UserID:     userID,
		Name:       med.Name,
		Dosage:     med.Dosage,
		Times:      med.Times,
		Days:       med.Days,
		Timezone:   med.Timezone,
		IsActive:   med.IsActive,
		LastTaken:  med.LastTaken,
		Provenance: string(med.Provenance),
		SyncState:  syncState,
		CreatedAt:  med.CreatedAt,
	}
}

func toModel(rec storage.MedicationRecord) model.Medication {
	provenance := model.Provenance(rec.Provenance)
	if rec.SyncState == storage.SyncStatePendingLocalWrite {
		provenance = model.ProvenanceLocalCache
	}
	return model.Medication{
		ID:         rec.ID,
		Name:       rec.Name,
		Dosage:     rec.Dosage,
		Times:      rec.Times,
		Days:       rec.Days,
		Timezone:   rec.Timezone,
		IsActive:   rec.IsActive,
		LastTaken:  rec.LastTaken,
		Provenance: provenance,
		CreatedAt:  rec.CreatedAt,
	}
}

func doseLogToModel(rec storage.DoseLogRecord) model.DoseLog {
	return model.DoseLog{
		ID:                 rec.ID,
		MedicationName:     rec.MedicationName,
		Status:             model.DoseStatus(rec.Status),
		ConfirmationMethod: rec.ConfirmationMethod,
		Timestamp:          rec.Timestamp,
	}
}
