package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/views"
)

const storeTimeout = 5 * time.Second

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncSelectedMedToCursor()
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Medications)-1 {
			m.Today.Cursor++
		}
		m.syncSelectedMedToCursor()
	case "t", "enter":
		m.markSelectedDose(model.DoseStatusTaken)
	case "s":
		m.markSelectedDose(model.DoseStatusSkipped)
	case "d":
		m.dismissSelectedReminders()
	case "r":
		m.refreshMedications()
		m.Status = StatusBar{Text: "medications refreshed", IsError: false}
	}
	return m
}

func (m *Model) refreshMedications() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	meds, err := m.store.Read(ctx)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Today.Medications = meds
	m.clampTodayCursor()
	m.syncSelectedMedToCursor()
	if pending, err := m.store.Pending(ctx); err == nil {
		m.PendingWrites = len(pending)
	}
}

func (m *Model) clampTodayCursor() {
	if m.Today.Cursor >= len(m.Today.Medications) {
		m.Today.Cursor = len(m.Today.Medications) - 1
	}
	if m.Today.Cursor < 0 {
		m.Today.Cursor = 0
	}
}

func (m *Model) syncSelectedMedToCursor() {
	if selected, ok := m.currentMedication(); ok {
		m.SelectedMedID = selected.ID
	}
}

func (m Model) currentMedication() (model.Medication, bool) {
	if len(m.Today.Medications) == 0 {
		return model.Medication{}, false
	}
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Medications) {
		return model.Medication{}, false
	}
	return m.Today.Medications[m.Today.Cursor], true
}

// markSelectedDose records the dose, clears today's dedupe entries so a
// confirmed medication does not re-alert, and drops its reminder
// notifications from the panel.
func (m *Model) markSelectedDose(status model.DoseStatus) {
	med, ok := m.currentMedication()
	if !ok {
		m.Status = StatusBar{Text: "no medication selected", IsError: true}
		return
	}
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := m.store.RecordDose(ctx, med.Name, status); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	today := model.DateOf(m.now().UTC())
	if status == model.DoseStatusTaken && m.Driver != nil {
		m.Driver.Deduplicator().MarkTaken(med.ID, today)
	}
	m.removeReminderNotifications(med.ID, today)
	m.refreshMedications()
	m.Status = StatusBar{Text: fmt.Sprintf("%s marked %s", med.Name, status), IsError: false}
}

func (m *Model) dismissSelectedReminders() {
	med, ok := m.currentMedication()
	if !ok {
		return
	}
	today := model.DateOf(m.now().UTC())
	m.removeReminderNotifications(med.ID, today)
	m.Status = StatusBar{Text: fmt.Sprintf("reminders dismissed for %s", med.Name), IsError: false}
}

func (m Model) renderTodayScreen() string {
	due := make([]views.DueItemData, 0, len(m.AlertLog))
	today := model.DateOf(m.now().UTC())
	for _, alert := range m.AlertLog {
		if alert.Occurrence.Date != today {
			continue
		}
		if !m.hasNotification(alert.Occurrence.DedupeTag()) {
			continue
		}
		due = append(due, views.DueItemData{
			MedicationID: alert.Occurrence.MedicationID,
			Name:         alert.Medication.Name,
			TimeOfDay:    alert.Occurrence.TimeOfDay,
			Message:      alert.Message,
		})
	}

	items := make([]views.MedicationItemData, 0, len(m.Today.Medications))
	for _, med := range m.Today.Medications {
		lastTaken := ""
		if med.LastTaken != nil {
			lastTaken = med.LastTaken.Format("2006-01-02 15:04")
		}
		items = append(items, views.MedicationItemData{
			ID:        med.ID,
			Name:      med.Name,
			Dosage:    med.Dosage,
			Times:     med.Times,
			Days:      med.Days,
			IsActive:  med.IsActive,
			Pending:   med.Provenance == model.ProvenanceLocalCache,
			LastTaken: lastTaken,
		})
	}

	return views.RenderTodayPanel(views.TodayPanelData{
		ListView:   m.medsList.View(),
		Due:        due,
		Items:      items,
		SelectedID: m.SelectedMedID,
	})
}

func (m Model) renderMedicationDetailPane() string {
	med, ok := m.currentMedication()
	if !ok {
		return "detail:\n(no selection)"
	}
	lastTaken := "(never)"
	if med.LastTaken != nil {
		lastTaken = med.LastTaken.Format("2006-01-02 15:04")
	}
	days := "daily"
	if len(med.Days) > 0 {
		days = strings.Join(med.Days, ",")
	}
	return fmt.Sprintf("detail:\nid: %s\ndosage: %s\ntimes: %s\ndays: %s\nlast taken: %s\nstate: %s",
		med.ID, med.Dosage, strings.Join(med.Times, ","), days, lastTaken, string(med.Provenance))
}
