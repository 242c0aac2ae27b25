package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/assistant"
	"github.com/sandeepkv93/medtui/internal/views"
)

func (m *Model) ensureChatWelcome() {
	if len(m.Chat.Messages) == 0 {
		m.Chat.Messages = append(m.Chat.Messages, ChatMessage{Role: ChatRoleAssistant, Text: assistant.Welcome})
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.askAssistant(m.Chat.Input)
	case tea.KeyBackspace:
		if len(m.Chat.Input) > 0 {
			m.Chat.Input = m.Chat.Input[:len(m.Chat.Input)-1]
		}
	case tea.KeyEsc:
		m.Chat.Input = ""
	case tea.KeySpace:
		m.Chat.Input += " "
	case tea.KeyRunes:
		m.Chat.Input += string(msg.Runes)
	}
	return m
}

func (m *Model) askAssistant(question string) {
	question = strings.TrimSpace(question)
	if question == "" {
		return
	}
	m.Chat.Messages = append(m.Chat.Messages,
		ChatMessage{Role: ChatRoleUser, Text: question},
		ChatMessage{Role: ChatRoleAssistant, Text: assistant.Reply(question)},
	)
	if len(m.Chat.Messages) > 40 {
		m.Chat.Messages = m.Chat.Messages[len(m.Chat.Messages)-40:]
	}
	m.Chat.Input = ""
}

func (m Model) renderChatTranscript() string {
	var b strings.Builder
	for _, msg := range m.Chat.Messages {
		speaker := "You"
		if msg.Role == ChatRoleAssistant {
			speaker = "Assistant"
		}
		b.WriteString(speaker + ": " + msg.Text + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderChatScreen() string {
	lastReply := ""
	for i := len(m.Chat.Messages) - 1; i >= 0; i-- {
		if m.Chat.Messages[i].Role == ChatRoleAssistant {
			lastReply = m.Chat.Messages[i].Text
			break
		}
	}
	return views.RenderAssistantPanel(views.AssistantPanelData{
		TranscriptView: m.chatViewport.View(),
		Transcript:     m.renderChatTranscript(),
		LastReplyView:  views.RenderMarkdown(lastReply),
		InputView:      m.chatInput.View(),
		Input:          m.Chat.Input,
	})
}
