package views

import (
	"fmt"
	"strings"
)

type DueItemData struct {
	MedicationID string
	Name         string
	TimeOfDay    string
	Message      string
}

type MedicationItemData struct {
	ID        string
	Name      string
	Dosage    string
	Times     []string
	Days      []string
	IsActive  bool
	Pending   bool
	LastTaken string
}

type TodayPanelData struct {
	ListView   string
	Due        []DueItemData
	Items      []MedicationItemData
	SelectedID string
}

type DoseLogItemData struct {
	MedicationName string
	Status         string
	At             string
}

type LogPanelData struct {
	Day       string
	TableView string
	Entries   []DoseLogItemData
}

type AppointmentItemData struct {
	Title    string
	Kind     string
	Location string
	At       string
}

type DailyPanelData struct {
	Date                string
	MealsLogged         int
	WaterGlasses        int
	WaterGoal           int
	HydrationView       string
	HydrationReminder   string
	ActivitiesCompleted int
	DosesTaken          int
	WellnessScore       int
	Feedback            []string
	Appointments        []AppointmentItemData
}

type AssistantPanelData struct {
	TranscriptView string
	Transcript     string
	LastReplyView  string
	InputView      string
	Input          string
}

type HelpPanelData struct {
	CurrentScreen string
	Bindings      []string
	HelpView      string
}

type NotificationData struct {
	Title string
	Body  string
	Level string
	At    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString("today:\n")
	b.WriteString("actions: [j/k]move [t]take [s]skip [d]dismiss [r]refresh\n")
	b.WriteString(data.ListView + "\n")

	b.WriteString("\nDue now:\n")
	if len(data.Due) == 0 {
		b.WriteString("  (nothing due)\n")
	}
	for _, item := range data.Due {
		b.WriteString(fmt.Sprintf("! %s %s\n", item.TimeOfDay, item.Message))
	}

	b.WriteString("\nMedications:\n")
	if len(data.Items) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		badge := ""
		if item.Pending {
			badge = " [PENDING]"
		}
		if !item.IsActive {
			badge += " [INACTIVE]"
		}
		days := "daily"
		if len(item.Days) > 0 {
			days = strings.Join(item.Days, ",")
		}
		b.WriteString(fmt.Sprintf("%s %s %s @ %s (%s)%s", cursor, item.Name, item.Dosage, strings.Join(item.Times, ","), days, badge))
		if item.LastTaken != "" {
			b.WriteString(fmt.Sprintf(" last:%s", item.LastTaken))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderLogPanel(data LogPanelData) string {
	var b strings.Builder
	b.WriteString("dose log:\n")
	b.WriteString(fmt.Sprintf("day: %s\n", data.Day))
	b.WriteString("actions: [j/k]move [r]refresh\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Entries) == 0 {
		b.WriteString("(no doses logged today)")
		return strings.TrimSpace(b.String())
	}
	for _, entry := range data.Entries {
		b.WriteString(fmt.Sprintf("%s %s [%s]\n", entry.At, entry.MedicationName, strings.ToUpper(entry.Status)))
	}
	return strings.TrimSpace(b.String())
}

func RenderDailyPanel(data DailyPanelData) string {
	var b strings.Builder
	b.WriteString("daily living:\n")
	b.WriteString(fmt.Sprintf("date: %s\n", data.Date))
	b.WriteString("actions: [w]water [a]walk [e]exercise [r]refresh\n")
	b.WriteString(fmt.Sprintf("meals: %d | activities: %d | doses taken: %d\n", data.MealsLogged, data.ActivitiesCompleted, data.DosesTaken))
	b.WriteString(fmt.Sprintf("water: %d/%d %s\n", data.WaterGlasses, data.WaterGoal, data.HydrationView))
	if data.HydrationReminder != "" {
		b.WriteString("hydration: " + data.HydrationReminder + "\n")
	}
	b.WriteString(fmt.Sprintf("wellness score: %d/100\n", data.WellnessScore))
	if len(data.Feedback) > 0 {
		b.WriteString("feedback:\n")
		for _, line := range data.Feedback {
			b.WriteString("- " + line + "\n")
		}
	}
	if len(data.Appointments) > 0 {
		b.WriteString("appointments:\n")
		for _, appt := range data.Appointments {
			b.WriteString(fmt.Sprintf("- %s %s (%s) @ %s\n", appt.At, appt.Title, appt.Kind, appt.Location))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderAssistantPanel(data AssistantPanelData) string {
	var b strings.Builder
	b.WriteString("assistant:\n")
	b.WriteString("actions: [enter]send [esc]clear\n")
	b.WriteString(data.TranscriptView + "\n")
	if data.Transcript != "" {
		b.WriteString(data.Transcript + "\n")
	}
	if data.LastReplyView != "" {
		b.WriteString("\nlast reply:\n" + data.LastReplyView + "\n")
	}
	b.WriteString("\n" + data.InputView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotificationLine(data NotificationData) string {
	if strings.TrimSpace(data.Body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s %s: %s", strings.ToUpper(data.Level), data.At, data.Title, data.Body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s screen:\n%s\n%s",
		strings.ToLower(data.CurrentScreen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
