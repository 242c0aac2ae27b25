package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/medtui/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentScreen: string(m.CurrentScreen),
		Bindings:      plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Log, Action: "switch to Log"},
		{Key: m.Keys.Daily, Action: "switch to Daily"},
		{Key: m.Keys.Assistant, Action: "switch to Assistant"},
		{Key: "/", Action: "open command palette"},
		{Key: "S", Action: "sync with server"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) screenBindings() []KeyBinding {
	switch m.CurrentScreen {
	case ScreenToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "t/enter", Action: "mark selected dose taken"},
			{Key: "s", Action: "mark selected dose skipped"},
			{Key: "d", Action: "dismiss reminders for selected"},
			{Key: "r", Action: "refresh medications"},
		}
	case ScreenLog:
		return []KeyBinding{
			{Key: "j/k", Action: "move through dose history"},
			{Key: "r", Action: "refresh dose log"},
		}
	case ScreenDaily:
		return []KeyBinding{
			{Key: "w", Action: "log a glass of water"},
			{Key: "a/e", Action: "log walk / exercise"},
			{Key: "r", Action: "refresh daily summary"},
		}
	case ScreenAssistant:
		return []KeyBinding{
			{Key: "enter", Action: "send question"},
			{Key: "esc", Action: "clear input"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.screenBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.screenBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
