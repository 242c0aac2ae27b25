package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/views"
)

func (m Model) handleLogKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "r":
		m.refreshDoseLogs()
		m.Status = StatusBar{Text: "dose log refreshed", IsError: false}
	default:
		var cmd tea.Cmd
		m.logTable, cmd = m.logTable.Update(msg)
		_ = cmd
	}
	return m
}

func (m *Model) refreshDoseLogs() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	day := model.DateOf(m.now().UTC())
	entries, err := m.store.DoseLogs(ctx, day)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Log.Entries = entries
	m.Log.Day = day
}

func (m Model) renderLogScreen() string {
	entries := make([]views.DoseLogItemData, 0, len(m.Log.Entries))
	for _, entry := range m.Log.Entries {
		entries = append(entries, views.DoseLogItemData{
			MedicationName: entry.MedicationName,
			Status:         string(entry.Status),
			At:             entry.Timestamp.Format("15:04"),
		})
	}
	return views.RenderLogPanel(views.LogPanelData{
		Day:       m.Log.Day,
		TableView: m.logTable.View(),
		Entries:   entries,
	})
}
