package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/scheduler"
	"github.com/sandeepkv93/medtui/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Driver != nil {
		return waitForAlertCmd(m.Driver.C())
	}
	return nil
}

func waitForAlertCmd(ch <-chan scheduler.DueAlert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-ch
		if !ok {
			return nil
		}
		return DueAlertMsg{Alert: alert}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		keyStr := typed.String()
		if m.CurrentScreen == ScreenAssistant && keyStr != "ctrl+c" &&
			keyStr != m.Keys.Today && keyStr != m.Keys.Log && keyStr != m.Keys.Daily && keyStr != m.Keys.Assistant &&
			keyStr != m.Keys.Help && keyStr != "/" && keyStr != m.Keys.Quit {
			return m.handleChatKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Today:
			m.CurrentScreen = ScreenToday
			m.refreshMedications()
			return m, nil
		case m.Keys.Log:
			m.CurrentScreen = ScreenLog
			m.refreshDoseLogs()
			return m, nil
		case m.Keys.Daily:
			m.CurrentScreen = ScreenDaily
			m.refreshDailySummary()
			return m, nil
		case m.Keys.Assistant:
			m.CurrentScreen = ScreenAssistant
			m.ensureChatWelcome()
			m.chatInput.Focus()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "S":
			if !m.spinnerActive {
				m.spinnerActive = true
				m.refreshMedications()
				m.Status = StatusBar{Text: "sync started", IsError: false}
				return m, tea.Batch(m.syncSpinner.Tick, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return SetStatusMsg{Text: "sync complete", IsError: false} }))
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentScreen == ScreenToday {
			return m.handleTodayKey(typed), nil
		}
		if m.CurrentScreen == ScreenLog {
			return m.handleLogKey(typed), nil
		}
		if m.CurrentScreen == ScreenDaily {
			return m.handleDailyKey(typed), nil
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SwitchScreenMsg:
		if isKnownScreen(typed.Screen) {
			m.CurrentScreen = typed.Screen
			switch typed.Screen {
			case ScreenToday:
				m.refreshMedications()
			case ScreenLog:
				m.refreshDoseLogs()
			case ScreenDaily:
				m.refreshDailySummary()
			case ScreenAssistant:
				m.ensureChatWelcome()
				m.chatInput.Focus()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		if strings.Contains(strings.ToLower(typed.Text), "sync complete") {
			m.spinnerActive = false
		}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "", "error")
		}
		return m, nil
	case MedicationsLoadedMsg:
		m.Today.Medications = typed.Medications
		m.clampTodayCursor()
		m.syncSelectedMedToCursor()
		return m, nil
	case DoseLogsLoadedMsg:
		m.Log.Entries = typed.Entries
		return m, nil
	case DueAlertMsg:
		m.AlertLog = append(m.AlertLog, typed.Alert)
		if len(m.AlertLog) > 20 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-20:]
		}
		m.notifyReminder("Medication Reminder", typed.Alert.Message, typed.Alert.Occurrence)
		m.Status = StatusBar{Text: typed.Alert.Message, IsError: false}
		if m.Driver != nil {
			return m, waitForAlertCmd(m.Driver.C())
		}
		return m, nil
	case DismissNotificationMsg:
		m.removeNotification(typed.Tag)
		return m, nil
	case AskAssistantMsg:
		m.askAssistant(typed.Question)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentScreen {
	case ScreenToday:
		leftPane = m.renderTodayScreen()
		rightPane = m.renderMedicationDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenLog:
		leftPane = m.renderLogScreen()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenDaily:
		leftPane = m.renderDailyScreen()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenAssistant:
		leftPane = m.renderChatScreen()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := m.renderNotificationsView()
	if m.spinnerActive {
		spin := m.syncSpinner.View()
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "sync: " + spin + " running"}, "\n"))
	}

	pending := ""
	if m.PendingWrites > 0 {
		pending = fmt.Sprintf(" | pending sync: %d", m.PendingWrites)
	}

	return views.RenderApp(views.AppFrame{
		Header:        fmt.Sprintf("medtui | screen: %s | selected: %s%s", m.CurrentScreen, m.SelectedMedID, pending),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Reminders:     strings.TrimSpace(notificationView),
		Footer:        fmt.Sprintf("keys: %s today | %s log | %s daily | %s assistant | / cmd | %s help | %s quit", m.Keys.Today, m.Keys.Log, m.Keys.Daily, m.Keys.Assistant, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenToday, ScreenLog, ScreenDaily, ScreenAssistant:
		return true
	default:
		return false
	}
}
