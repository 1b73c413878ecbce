package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

func newConversation(t *testing.T, withItems bool) (*Conversation, *wardrobe.Service) {
	t.Helper()
	database := db.NewTestDB(t)
	svc := wardrobe.New(database, wardrobe.Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) },
	})
	if withItems {
		for _, it := range []model.Item{
			{Name: "Oxford", Category: model.CategoryShirt, Color: "White"},
			{Name: "Tee", Category: model.CategoryShirt, Color: "Gray"},
			{Name: "Chinos", Category: model.CategoryPants, Color: "Navy"},
		} {
			if _, err := store.CreateItem(context.Background(), database, it); err != nil {
				t.Fatalf("CreateItem: %v", err)
			}
		}
	}
	return New(svc, 0), svc
}

func TestSmallTalk(t *testing.T) {
	c, _ := newConversation(t, false)
	ctx := context.Background()

	tests := []struct {
		msg  string
		kind string
	}{
		{"Hello there", KindGreeting},
		{"hey!", KindGreeting},
		{"Can you help me find an outfit?", KindHelp},
		{"what can you do", KindHelp},
		{"I love it", KindFeedback},
		{"save", KindNoOutfit},
		{"wear", KindNoOutfit},
		{"laundry", KindLaundry},
		{"a casual outfit please", KindNoOutfit},
	}
	for _, tt := range tests {
		reply, err := c.Process(ctx, tt.msg)
		if err != nil {
			t.Fatalf("Process(%q): %v", tt.msg, err)
		}
		if reply.Kind != tt.kind {
			t.Errorf("Process(%q) kind = %s, want %s", tt.msg, reply.Kind, tt.kind)
		}
	}
}

func TestGreetingIsDeterministic(t *testing.T) {
	c, _ := newConversation(t, false)
	for range 3 {
		reply, _ := c.Process(context.Background(), "hi")
		if reply.Message != GreetingText {
			t.Fatalf("unexpected greeting %q", reply.Message)
		}
	}
}

func TestThisIsNotAGreeting(t *testing.T) {
	c, _ := newConversation(t, true)
	reply, err := c.Process(context.Background(), "this shirt for work")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if reply.Kind != KindProposal {
		t.Errorf("expected a proposal, got %s", reply.Kind)
	}
}

func TestProposeRetrySaveWear(t *testing.T) {
	c, svc := newConversation(t, true)
	ctx := context.Background()

	first, err := c.Process(ctx, "I need a casual outfit")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if first.Kind != KindProposal || first.Proposal == nil {
		t.Fatalf("expected a proposal, got %+v", first)
	}

	second, err := c.Process(ctx, "I don't like it, try again")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if second.Kind != KindProposal || second.Proposal.Key() == first.Proposal.Key() {
		t.Fatalf("expected a different proposal, got %+v", second)
	}
	if c.Last() != second.Proposal {
		t.Error("expected the retry to become the last proposal")
	}

	saved, err := c.Process(ctx, "save")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Kind != KindSaved || saved.Outfit == nil {
		t.Fatalf("expected a saved outfit, got %+v", saved)
	}
	again, _ := c.Process(ctx, "save it")
	if again.Outfit == nil || again.Outfit.ID != saved.Outfit.ID {
		t.Errorf("expected the same outfit on a second save, got %+v", again.Outfit)
	}

	worn, err := c.Process(ctx, "wear")
	if err != nil {
		t.Fatalf("wear: %v", err)
	}
	if worn.Kind != KindWorn || !strings.Contains(worn.Message, "2026-10-14") {
		t.Errorf("unexpected wear reply: %+v", worn)
	}

	dirty, _ := svc.DirtyItems(ctx)
	if len(dirty) != 2 {
		t.Errorf("expected 2 dirty items, got %d", len(dirty))
	}

	laundry, _ := c.Process(ctx, "laundry")
	if !strings.HasPrefix(laundry.Message, "2 items need washing") {
		t.Errorf("unexpected laundry reply %q", laundry.Message)
	}
}

func TestRetryWithoutProposal(t *testing.T) {
	c, _ := newConversation(t, true)
	reply, err := c.Process(context.Background(), "try again")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if reply.Kind != KindProposal || !strings.Contains(reply.Message, fallbackPrompt) {
		t.Errorf("expected a fallback proposal, got %+v", reply)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	c, _ := newConversation(t, false)
	for range 8 {
		c.Process(context.Background(), "hi")
	}

	all := c.History(0)
	if len(all) != DefaultHistory {
		t.Fatalf("expected %d entries, got %d", DefaultHistory, len(all))
	}
	last := c.History(2)
	if len(last) != 2 || last[0].Role != "user" || last[1].Role != "assistant" {
		t.Errorf("unexpected tail: %+v", last)
	}
}
