// Package tui is an interactive terminal chat with the outfit assistant.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/erazemk/garderoba/internal/assistant"
)

// Line roles in the transcript.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleError     = "error"
)

type line struct {
	role string
	text string
}

// replyMsg carries the assistant's answer back into the update loop.
type replyMsg struct {
	reply *assistant.Reply
	err   error
}

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	chat *assistant.Conversation

	input   textinput.Model
	help    help.Model
	lines   []line
	waiting bool

	width  int
	height int
}

// NewApp returns a chat model over conv. ctx bounds every assistant call.
func NewApp(ctx context.Context, conv *assistant.Conversation) App {
	in := textinput.New()
	in.Placeholder = "Ask for an outfit, or say help"
	in.Prompt = "> "
	in.CharLimit = 500
	in.Focus()

	return App{
		ctx:   ctx,
		chat:  conv,
		input: in,
		help:  help.New(),
		lines: []line{{role: roleAssistant, text: assistant.GreetingText}},
	}
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.input.Width = max(msg.Width-8, 10)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Clear):
			a.lines = nil
			return a, nil
		case key.Matches(msg, keys.Send):
			text := strings.TrimSpace(a.input.Value())
			if text == "" || a.waiting {
				return a, nil
			}
			a.lines = append(a.lines, line{role: roleUser, text: text})
			a.input.Reset()
			a.waiting = true
			return a, a.send(text)
		}

	case replyMsg:
		a.waiting = false
		if msg.err != nil {
			a.lines = append(a.lines, line{role: roleError, text: msg.err.Error()})
		} else {
			a.lines = append(a.lines, line{role: roleAssistant, text: msg.reply.Message})
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) send(text string) tea.Cmd {
	ctx, conv := a.ctx, a.chat
	return func() tea.Msg {
		reply, err := conv.Process(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Garderoba outfit assistant"))
	b.WriteString("\n\n")

	transcript := a.transcript()
	// Keep the newest lines when the transcript is taller than the window.
	if a.height > 0 {
		rows := strings.Split(transcript, "\n")
		if avail := a.height - 8; avail > 0 && len(rows) > avail {
			rows = rows[len(rows)-avail:]
		}
		transcript = strings.Join(rows, "\n")
	}
	b.WriteString(transcript)
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(statusStyle.Render("thinking..."))
	}
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.help.View(keys))
	return b.String()
}

func (a App) transcript() string {
	parts := make([]string, 0, len(a.lines))
	width := a.width - 4
	for _, l := range a.lines {
		var s string
		switch l.role {
		case roleUser:
			s = userStyle.Render("you: ") + l.text
		case roleError:
			s = errorStyle.Render("error: " + l.text)
		default:
			s = assistantStyle.Render(l.text)
		}
		if width > 20 {
			s = lipgloss.NewStyle().Width(width).Render(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n")
}

// Run starts the chat in the terminal and blocks until the user quits.
func Run(ctx context.Context, conv *assistant.Conversation) error {
	_, err := tea.NewProgram(NewApp(ctx, conv), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
