package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/views"
)

// notify records a notification in the panel and, when enabled, mirrors it
// to the desktop. A failing desktop command only skips the desktop copy.
func (m *Model) notify(title, body, tag, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Tag:   tag,
		Level: level,
		At:    m.now().UTC(),
	}
	m.push(n)
}

// notifyReminder records a dose reminder carrying the occurrence identifiers
// that dismissal keys on.
func (m *Model) notifyReminder(title, body string, occ model.Occurrence) {
	m.push(Notification{
		Title:        title,
		Body:         body,
		Tag:          occ.DedupeTag(),
		Level:        "info",
		At:           m.now().UTC(),
		MedicationID: occ.MedicationID,
		Date:         occ.Date,
	})
}

func (m *Model) push(n Notification) {
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func (m *Model) removeNotification(tag string) {
	if tag == "" {
		return
	}
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if n.Tag != tag {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}

// removeReminderNotifications drops every reminder for the medication on
// the given date, whatever scheduled time produced it.
func (m *Model) removeReminderNotifications(medicationID, date string) {
	if medicationID == "" {
		return
	}
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if n.MedicationID == medicationID && n.Date == date {
			continue
		}
		kept = append(kept, n)
	}
	m.Notifications = kept
}

func (m Model) hasNotification(tag string) bool {
	for _, n := range m.Notifications {
		if n.Tag == tag {
			return true
		}
	}
	return false
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	recent := m.Notifications
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	var b strings.Builder
	b.WriteString("notifications:\n")
	for i := len(recent) - 1; i >= 0; i-- {
		n := recent[i]
		b.WriteString(views.RenderNotificationLine(views.NotificationData{
			Title: n.Title,
			Body:  n.Body,
			Level: n.Level,
			At:    n.At.Format("15:04"),
		}))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m *Model) syncBubbleData() {
	medItems := make([]list.Item, 0, len(m.Today.Medications))
	for _, med := range m.Today.Medications {
		desc := fmt.Sprintf("%s @ %s", med.Dosage, strings.Join(med.Times, ","))
		medItems = append(medItems, listItem{title: med.Name, description: desc})
	}
	m.medsList.SetItems(medItems)
	if len(medItems) > 0 && m.Today.Cursor < len(medItems) {
		m.medsList.Select(m.Today.Cursor)
	}

	rows := make([]table.Row, 0, len(m.Log.Entries))
	for _, entry := range m.Log.Entries {
		rows = append(rows, table.Row{
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.MedicationName,
			string(entry.Status),
		})
	}
	m.logTable.SetRows(rows)

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	m.chatInput.SetValue(m.Chat.Input)
	if m.CurrentScreen == ScreenAssistant {
		m.chatInput.Focus()
		m.chatViewport.SetContent(m.renderChatTranscript())
	}

	goal := float64(m.Daily.Hydration.GoalGlasses)
	pct := 0.0
	if goal > 0 {
		pct = float64(m.Daily.Hydration.ConsumedToday) / goal
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.hydrationProgress.SetPercent(pct)
}
