package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppFrame is the full-screen layout: header bar, a wide medication pane on
// the left, a narrower detail/palette pane on the right, the status line, an
// optional reminder panel, and the key hints footer.
type AppFrame struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Reminders     string
	Footer        string
}

const (
	leftPaneWidth  = 62
	rightPaneWidth = 46
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	leftStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(leftPaneWidth)
	rightStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(rightPaneWidth)
	reminderStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1).Width(leftPaneWidth + rightPaneWidth)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp assembles the frame. The reminder panel only appears while
// reminder notifications are live, so a quiet app stays two panes tall.
func RenderApp(frame AppFrame) string {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(frame.LeftPane),
		rightStyle.Render(frame.RightPane),
	)

	status := statusStyle.Render(frame.StatusLine)
	if frame.StatusIsError {
		status = errorStyle.Render(frame.StatusLine)
	}

	lines := []string{
		headerStyle.Render(frame.Header),
		row,
		status,
	}
	if frame.Reminders != "" {
		lines = append(lines, reminderStyle.Render(frame.Reminders))
	}
	if frame.Footer != "" {
		lines = append(lines, footerStyle.Render(frame.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders assistant replies; on any glamour failure the raw
// text is still shown.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
