package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Console is a Channel backed by stdin/stdout, used when no real platform
// client is configured (ENV=local). Typed lines become messages from a fixed
// local user; a line of the form "+<emoji>" becomes a reaction by that user.
type Console struct {
	out    io.Writer
	userID string
	logger *slog.Logger

	mu        sync.Mutex
	nextSub   int
	msgSubs   map[int]chan *Message
	reactSubs map[int]chan Reaction
}

func NewConsole(out io.Writer, userID string, logger *slog.Logger) *Console {
	return &Console{
		out:       out,
		userID:    userID,
		logger:    logger.With("component", "console"),
		msgSubs:   make(map[int]chan *Message),
		reactSubs: make(map[int]chan Reaction),
	}
}

// Run reads lines from in and fans them out to waiters until ctx is done or
// in is exhausted.
func (c *Console) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if emoji, ok := strings.CutPrefix(line, "+"); ok {
			c.publishReaction(Reaction{Emoji: emoji, UserID: c.userID})
			continue
		}

		c.publishMessage(&Message{
			ID:       uuid.NewString(),
			AuthorID: c.userID,
			Text:     line,
		})
	}

	if err := scanner.Err(); err != nil {
		c.logger.Error("read console input", "error", err)
	}
}

func (c *Console) Send(_ context.Context, text string) (*Message, error) {
	msg := &Message{ID: uuid.NewString(), AuthorID: "bot", Text: text}
	fmt.Fprintf(c.out, "[bot] %s\n", text)
	return msg, nil
}

func (c *Console) Reply(ctx context.Context, _ *Message, text string) (*Message, error) {
	return c.Send(ctx, text)
}

func (c *Console) Edit(_ context.Context, msg *Message, text string) error {
	msg.Text = text
	fmt.Fprintf(c.out, "[bot edit %s] %s\n", shortID(msg.ID), text)
	return nil
}

func (c *Console) React(_ context.Context, msg *Message, emoji string) error {
	fmt.Fprintf(c.out, "[bot react %s] %s  (type +%s to apply it yourself)\n", shortID(msg.ID), emoji, emoji)
	return nil
}

func (c *Console) AwaitReaction(ctx context.Context, _ *Message, match func(Reaction) bool) (*Reaction, error) {
	id, sub := c.subscribeReactions()
	defer c.unsubscribeReactions(id)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-sub:
			if match(r) {
				return &r, nil
			}
		}
	}
}

func (c *Console) AwaitMessage(ctx context.Context, match func(*Message) bool) (*Message, error) {
	id, sub := c.subscribeMessages()
	defer c.unsubscribeMessages(id)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case m := <-sub:
			if match(m) {
				return m, nil
			}
		}
	}
}

func (c *Console) subscribeMessages() (int, chan *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	// Buffered so a slow waiter cannot stall the reader loop.
	ch := make(chan *Message, 16)
	c.msgSubs[id] = ch
	return id, ch
}

func (c *Console) unsubscribeMessages(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.msgSubs, id)
}

func (c *Console) subscribeReactions() (int, chan Reaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Reaction, 16)
	c.reactSubs[id] = ch
	return id, ch
}

func (c *Console) unsubscribeReactions(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reactSubs, id)
}

func (c *Console) publishMessage(m *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.msgSubs {
		select {
		case sub <- m:
		default:
			c.logger.Warn("dropping message for slow waiter", "message_id", m.ID)
		}
	}
}

func (c *Console) publishReaction(r Reaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.reactSubs {
		select {
		case sub <- r:
		default:
			c.logger.Warn("dropping reaction for slow waiter", "emoji", r.Emoji)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
