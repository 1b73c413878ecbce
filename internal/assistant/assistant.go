// Package assistant is the rule-based chat front end of the outfit
// engine. Replies are deterministic.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/erazemk/garderoba/internal/composer"
	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
)

// DefaultHistory is the number of history entries kept when none is given.
const DefaultHistory = 10

// Reply kinds.
const (
	KindGreeting = "greeting"
	KindHelp     = "help"
	KindFeedback = "feedback"
	KindProposal = "proposal"
	KindSaved    = "saved"
	KindWorn     = "worn"
	KindLaundry  = "laundry"
	KindNoOutfit = "no_outfit"
)

// GreetingText is the reply to a greeting.
const GreetingText = "Hello! I'm your Outfit Assistant. How can I help you today?"

// HelpText is the reply to a help request.
const HelpText = `I'm your Outfit Assistant! Here's how I can help you:

1. Ask me to suggest an outfit, like:
   - "Suggest a casual outfit for summer"
   - "What should I wear to work tomorrow?"
   - "I need something formal for a dinner"

2. You can specify:
   - Style (casual, formal, business, bohemian, etc.)
   - Occasion (work, date, weekend, party, etc.)
   - Season (summer, winter, fall, spring)

3. After I suggest an outfit, you can:
   - say "save" to keep it
   - say "wear" to record that you wore it today
   - say "try again" for a different suggestion
   - say "laundry" to see what needs washing

What kind of outfit would you like me to suggest?`

// fallbackPrompt is used when a new suggestion is asked for before any was made.
const fallbackPrompt = "I need a casual outfit"

// Service is the part of the wardrobe the assistant drives.
type Service interface {
	Request(ctx context.Context, text string) (*composer.Proposal, error)
	GenerateNew(ctx context.Context, prev *composer.Proposal) (*composer.Proposal, error)
	SaveProposal(ctx context.Context, p *composer.Proposal) (*model.Outfit, error)
	Wear(ctx context.Context, outfitID int64, date, notes string) (*model.WearEvent, error)
	DirtyItems(ctx context.Context) ([]model.Item, error)
}

// Entry is one line of conversation history.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Kind     string             `json:"kind"`
	Message  string             `json:"message"`
	Proposal *composer.Proposal `json:"proposal,omitempty"`
	Outfit   *model.Outfit      `json:"outfit,omitempty"`
}

// Conversation holds the state of one chat: the last proposal, the outfit
// it was saved as, and a bounded history. It is safe for concurrent use.
type Conversation struct {
	svc        Service
	maxHistory int

	mu      sync.Mutex
	last    *composer.Proposal
	saved   *model.Outfit
	history []Entry
}

// New returns a Conversation over svc keeping up to maxHistory entries.
func New(svc Service, maxHistory int) *Conversation {
	if maxHistory <= 0 {
		maxHistory = DefaultHistory
	}
	return &Conversation{svc: svc, maxHistory: maxHistory}
}

// Process answers one user message.
func (c *Conversation) Process(ctx context.Context, msg string) (*Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record("user", msg)
	reply, err := c.dispatch(ctx, msg)
	if err != nil {
		return nil, err
	}
	c.record("assistant", reply.Message)
	return reply, nil
}

func (c *Conversation) dispatch(ctx context.Context, msg string) (*Reply, error) {
	lower := strings.ToLower(strings.TrimSpace(msg))
	words := matcher.Tokenize(lower)

	switch {
	case isGreeting(words):
		return &Reply{Kind: KindGreeting, Message: GreetingText}, nil
	case isHelp(lower):
		return &Reply{Kind: KindHelp, Message: HelpText}, nil
	}

	if len(words) > 0 {
		switch words[0] {
		case "save":
			return c.save(ctx)
		case "wear", "wore", "worn":
			return c.wear(ctx)
		case "laundry":
			return c.laundry(ctx)
		}
	}

	switch feedback(lower) {
	case positive:
		return &Reply{Kind: KindFeedback, Message: "I'm glad you like the outfit! Say \"save\" to keep it."}, nil
	case negative:
		return c.retry(ctx)
	}

	p, err := c.svc.Request(ctx, msg)
	return c.propose(p, err, "")
}

// Last returns the most recent proposal, or nil.
func (c *Conversation) Last() *composer.Proposal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// History returns up to n of the most recent entries. n <= 0 returns every
// kept entry.
func (c *Conversation) History(n int) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.history) {
		n = len(c.history)
	}
	return append([]Entry(nil), c.history[len(c.history)-n:]...)
}

func (c *Conversation) record(role, content string) {
	c.history = append(c.history, Entry{Role: role, Content: content})
	if over := len(c.history) - c.maxHistory; over > 0 {
		c.history = append(c.history[:0], c.history[over:]...)
	}
}

func (c *Conversation) propose(p *composer.Proposal, err error, prefix string) (*Reply, error) {
	if errors.Is(err, model.ErrInsufficientItems) {
		return &Reply{
			Kind:    KindNoOutfit,
			Message: "I couldn't put together an outfit. Make sure you have clean items from the right categories: a shirt and pants, or a dress.",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	c.last = p
	c.saved = nil
	return &Reply{Kind: KindProposal, Message: prefix + p.Message, Proposal: p}, nil
}

func (c *Conversation) retry(ctx context.Context) (*Reply, error) {
	if c.last == nil {
		p, err := c.svc.Request(ctx, fallbackPrompt)
		return c.propose(p, err, fmt.Sprintf("I've generated a new outfit based on: '%s'\n\n", fallbackPrompt))
	}
	p, err := c.svc.GenerateNew(ctx, c.last)
	return c.propose(p, err, "Let me try a different combination.\n\n")
}

func (c *Conversation) save(ctx context.Context) (*Reply, error) {
	if c.last == nil {
		return &Reply{Kind: KindNoOutfit, Message: "No outfit has been generated yet. Ask for an outfit suggestion first."}, nil
	}
	if c.saved != nil {
		return &Reply{Kind: KindSaved, Message: fmt.Sprintf("Outfit '%s' is already saved.", c.saved.Name), Outfit: c.saved}, nil
	}
	outfit, err := c.svc.SaveProposal(ctx, c.last)
	if err != nil {
		return nil, err
	}
	c.saved = outfit
	return &Reply{Kind: KindSaved, Message: fmt.Sprintf("Outfit '%s' saved!", outfit.Name), Outfit: outfit}, nil
}

// wear saves the last proposal when needed and records it as worn today.
func (c *Conversation) wear(ctx context.Context) (*Reply, error) {
	if c.last == nil {
		return &Reply{Kind: KindNoOutfit, Message: "No outfit has been generated yet. Ask for an outfit suggestion first."}, nil
	}
	if c.saved == nil {
		if _, err := c.save(ctx); err != nil {
			return nil, err
		}
	}
	event, err := c.svc.Wear(ctx, c.saved.ID, "", "")
	if err != nil {
		return nil, err
	}
	return &Reply{
		Kind:    KindWorn,
		Message: fmt.Sprintf("Recorded '%s' as worn on %s. Its %d items are now in the laundry.", c.saved.Name, event.WornOn, len(event.ItemIDs)),
		Outfit:  c.saved,
	}, nil
}

func (c *Conversation) laundry(ctx context.Context) (*Reply, error) {
	items, err := c.svc.DirtyItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &Reply{Kind: KindLaundry, Message: "Everything is clean."}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d items need washing:\n", len(items))
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (%s %s)\n", it.Name, it.Color, strings.ToLower(it.Category))
	}
	return &Reply{Kind: KindLaundry, Message: strings.TrimRight(b.String(), "\n")}, nil
}

var greetingWords = map[string]bool{
	"hello": true, "hi": true, "hey": true, "greetings": true, "howdy": true, "hola": true,
}

func isGreeting(words []string) bool {
	for _, w := range words {
		if greetingWords[w] {
			return true
		}
	}
	return false
}

var helpPhrases = []string{"help", "how does this work", "what can you do", "instructions", "guide me"}

func isHelp(lower string) bool {
	for _, p := range helpPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

type sentiment int

const (
	none sentiment = iota
	positive
	negative
)

// Negative phrases are checked first so "don't like it" is not read as
// "like it".
var (
	negativePhrases = []string{"don't like", "dont like", "hate it", "not what i want", "try again", "another one", "something else"}
	positivePhrases = []string{"like it", "love it", "perfect", "good job"}
)

func feedback(lower string) sentiment {
	for _, p := range negativePhrases {
		if strings.Contains(lower, p) {
			return negative
		}
	}
	for _, p := range positivePhrases {
		if strings.Contains(lower, p) {
			return positive
		}
	}
	return none
}
