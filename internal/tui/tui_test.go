package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

func newTestApp(t *testing.T) (App, *wardrobe.Service) {
	t.Helper()
	svc := wardrobe.New(db.NewTestDB(t), wardrobe.Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) },
	})
	return NewApp(context.Background(), assistant.New(svc, 0)), svc
}

func typeText(t *testing.T, a App, text string) App {
	t.Helper()
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m.(App)
}

// submit presses enter and runs the resulting command through Update.
func submit(t *testing.T, a App) App {
	t.Helper()
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)
	if cmd == nil {
		t.Fatal("expected a command after enter")
	}
	if !a.waiting {
		t.Fatal("expected the app to wait for a reply")
	}
	m, _ = a.Update(cmd())
	return m.(App)
}

func lastLine(a App) line {
	return a.lines[len(a.lines)-1]
}

func TestStartsWithGreeting(t *testing.T) {
	a, _ := newTestApp(t)
	if len(a.lines) != 1 || a.lines[0].text != assistant.GreetingText {
		t.Fatalf("unexpected initial transcript: %+v", a.lines)
	}
}

func TestSendMessage(t *testing.T) {
	a, _ := newTestApp(t)
	a = typeText(t, a, "help")
	if a.input.Value() != "help" {
		t.Fatalf("expected input 'help', got %q", a.input.Value())
	}

	a = submit(t, a)
	if a.waiting {
		t.Error("expected waiting to clear after the reply")
	}
	if a.input.Value() != "" {
		t.Errorf("expected input to be reset, got %q", a.input.Value())
	}
	if len(a.lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(a.lines))
	}
	if a.lines[1].role != roleUser || a.lines[1].text != "help" {
		t.Errorf("unexpected user line: %+v", a.lines[1])
	}
	if got := lastLine(a); got.role != roleAssistant || got.text != assistant.HelpText {
		t.Errorf("unexpected reply: %+v", got)
	}
}

func TestProposalFlow(t *testing.T) {
	a, svc := newTestApp(t)
	ctx := context.Background()
	for _, it := range []model.Item{
		{Name: "Oxford", Category: model.CategoryShirt, Color: "White"},
		{Name: "Chinos", Category: model.CategoryPants, Color: "Navy"},
	} {
		if _, err := store.CreateItem(ctx, svc.DB(), it); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	a = submit(t, typeText(t, a, "a casual outfit"))
	if !strings.Contains(lastLine(a).text, "Oxford") {
		t.Errorf("expected the proposal to mention Oxford, got: %s", lastLine(a).text)
	}

	a = submit(t, typeText(t, a, "save"))
	outfits, err := svc.Outfits(ctx, store.OutfitFilter{})
	if err != nil {
		t.Fatalf("Outfits: %v", err)
	}
	if len(outfits) != 1 {
		t.Errorf("expected 1 saved outfit, got %d", len(outfits))
	}
}

func TestEmptyInputIgnored(t *testing.T) {
	a, _ := newTestApp(t)
	a = typeText(t, a, "   ")
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if len(m.(App).lines) != 1 {
		t.Error("expected the transcript to be unchanged")
	}
}

func TestReplyError(t *testing.T) {
	a, _ := newTestApp(t)
	a.waiting = true
	m, _ := a.Update(replyMsg{err: errors.New("database is locked")})
	a = m.(App)
	if a.waiting {
		t.Error("expected waiting to clear")
	}
	if got := lastLine(a); got.role != roleError {
		t.Errorf("expected an error line, got %+v", got)
	}
	if !strings.Contains(a.View(), "database is locked") {
		t.Error("expected the error in the view")
	}
}

func TestClearAndQuit(t *testing.T) {
	a, _ := newTestApp(t)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.(App).lines) != 0 {
		t.Error("expected ctrl+l to clear the transcript")
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewFitsWindow(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	a = m.(App)
	for i := 0; i < 5; i++ {
		a.lines = append(a.lines, line{role: roleUser, text: "message"})
	}
	if rows := strings.Count(a.View(), "\n") + 1; rows > 14 {
		t.Errorf("expected the view to roughly fit 12 rows, got %d", rows)
	}
}
