package views

import (
	"strings"
	"testing"
)

func TestRenderAppIncludesAllSections(t *testing.T) {
	out := RenderApp(AppFrame{
		Header:     "medtui | screen: Today | selected: med-1",
		LeftPane:   "Medications:",
		RightPane:  "Details",
		StatusLine: "status: all good",
		Reminders:  "notifications:\n[INFO] 08:00 Medication Reminder: Time to take Lisinopril",
		Footer:     "keys: 1 today",
	})
	for _, want := range []string{
		"medtui | screen: Today | selected: med-1",
		"Medications:",
		"Details",
		"status: all good",
		"Medication Reminder",
		"keys: 1 today",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("frame missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAppOmitsEmptyReminderPanel(t *testing.T) {
	with := RenderApp(AppFrame{Header: "h", StatusLine: "s", Reminders: "reminder"})
	without := RenderApp(AppFrame{Header: "h", StatusLine: "s"})
	if strings.Count(with, "\n") <= strings.Count(without, "\n") {
		t.Fatalf("expected reminder panel to add lines:\nwith:\n%s\nwithout:\n%s", with, without)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("  "); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
