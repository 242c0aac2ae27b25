package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/medtui/internal/dailyliving"
	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/scheduler"
	"github.com/sandeepkv93/medtui/internal/transport"
)

type Screen string

const (
	ScreenToday     Screen = "Today"
	ScreenLog       Screen = "Log"
	ScreenDaily     Screen = "Daily"
	ScreenAssistant Screen = "Assistant"
)

// MedicationStore is the slice of the reconcile cache the UI talks to. The
// UI never touches the mirror or the remote transport directly.
type MedicationStore interface {
	Read(ctx context.Context) ([]model.Medication, error)
	WriteThrough(ctx context.Context, fields transport.CreateMedicationFields) (model.Medication, error)
	RecordDose(ctx context.Context, medicationName string, status model.DoseStatus) (model.DoseLog, error)
	DoseLogs(ctx context.Context, day string) ([]model.DoseLog, error)
	Pending(ctx context.Context) ([]model.Medication, error)
}

type DailyService interface {
	LogMeal(ctx context.Context, mealType dailyliving.MealType, items []string, completionLevel string) (dailyliving.MealResult, error)
	TrackHydration(ctx context.Context, glasses int) (dailyliving.HydrationStatus, error)
	LogActivity(ctx context.Context, activityType, notes string) (dailyliving.ActivityResult, error)
	Summary(ctx context.Context) (dailyliving.TodaySummary, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today     string
	Log       string
	Daily     string
	Assistant string
	Help      string
	Quit      string
}

type TodayState struct {
	Medications []model.Medication
	Cursor      int
}

type LogState struct {
	Entries []model.DoseLog
	Day     string
}

type DailyState struct {
	Summary   dailyliving.TodaySummary
	Hydration dailyliving.HydrationStatus
	Feedback  []string
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role ChatRole
	Text string
}

type ChatState struct {
	Messages []ChatMessage
	Input    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Tag   string
	Level string
	At    time.Time

	// Set on medication reminders only, so dismissal can match on the
	// identifiers directly instead of parsing the tag back apart.
	MedicationID string
	Date         string
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type Model struct {
	CurrentScreen  Screen
	SelectedMedID  string
	Today          TodayState
	Log            LogState
	Daily          DailyState
	Chat           ChatState
	Driver         *scheduler.Driver
	AlertLog       []scheduler.DueAlert
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	PendingWrites  int

	store MedicationStore
	daily DailyService
	now   func() time.Time

	// Bubble components used for rich TUI controls
	medsList          list.Model
	logTable          table.Model
	chatInput         textinput.Model
	commandInput      textinput.Model
	hydrationProgress progress.Model
	syncSpinner       spinner.Model
	helpModel         help.Model
	chatViewport      viewport.Model
	spinnerActive     bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type MedicationsLoadedMsg struct {
	Medications []model.Medication
}

type DoseLogsLoadedMsg struct {
	Entries []model.DoseLog
}

type DueAlertMsg struct {
	Alert scheduler.DueAlert
}

type DismissNotificationMsg struct {
	Tag string
}

type AskAssistantMsg struct {
	Question string
}

func NewModel() Model {
	m := Model{
		CurrentScreen: ScreenToday,
		notifier:      NoopDesktopNotifier{},
		now:           time.Now,
		Keys: GlobalKeyMap{
			Today:     "1",
			Log:       "2",
			Daily:     "3",
			Assistant: "4",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithRuntime(store MedicationStore, daily DailyService, driver *scheduler.Driver, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel()
	m.store = store
	m.daily = daily
	m.Driver = driver
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.medsList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.medsList.Title = "Medications"
	m.medsList.SetShowHelp(false)
	m.medsList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Medication", Width: 22},
		{Title: "Status", Width: 10},
	}
	m.logTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.chatInput = textinput.New()
	m.chatInput.Prompt = "ask> "
	m.chatInput.CharLimit = 256
	m.chatInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.hydrationProgress = progress.New(progress.WithDefaultGradient())

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.chatViewport = viewport.New(54, 12)
}
