package scheduler

import (
	"sync"

	"github.com/sandeepkv93/medtui/internal/model"
)

// Deduplicator tracks which dose occurrences have already produced an alert.
// One occurrence (medication, scheduled time, calendar date) is admitted at
// most once per date, no matter how many ticks land inside the tolerance
// window.
//
// All mutation goes through the mutex; the driver is the only writer in
// practice but the UI calls MarkTaken from its own goroutine.
type Deduplicator struct {
	mu       sync.Mutex
	notified map[string]model.Occurrence
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{notified: make(map[string]model.Occurrence)}
}

// Admit reports whether the occurrence is new. The first call for a key
// returns true and records it; every later call for the same key returns
// false until the entry is evicted.
func (d *Deduplicator) Admit(occ model.Occurrence) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := occ.Key()
	if _, seen := d.notified[key]; seen {
		return false
	}
	d.notified[key] = occ
	return true
}

// MarkTaken evicts every occurrence recorded for the medication on the given
// date, so a dose taken and later re-added to the schedule could alert again.
func (d *Deduplicator) MarkTaken(medicationID, date string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, occ := range d.notified {
		if occ.MedicationID == medicationID && occ.Date == date {
			delete(d.notified, key)
		}
	}
}

// PruneBefore drops entries from calendar dates earlier than date, bounding
// memory across day rollovers. Dates compare lexicographically in the
// YYYY-MM-DD form.
func (d *Deduplicator) PruneBefore(date string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, occ := range d.notified {
		if occ.Date < date {
			delete(d.notified, key)
		}
	}
}

func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notified)
}
