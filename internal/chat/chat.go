// Package chat abstracts the chat-platform primitives the bot needs:
// sending, editing and reacting to messages, and deadline-bounded waits for
// a matching reaction or message.
package chat

import "context"

// Message is a handle to a message in a channel. Text reflects the content
// at the time the handle was obtained.
type Message struct {
	ID       string
	AuthorID string
	Text     string
}

// Reaction is an emoji applied to a message by a user.
type Reaction struct {
	Emoji  string
	UserID string
}

// Channel is one chat channel the bot participates in.
//
// AwaitReaction and AwaitMessage block until an event matching the predicate
// arrives or ctx is done; on expiry or teardown they return ctx.Err().
type Channel interface {
	Send(ctx context.Context, text string) (*Message, error)
	Reply(ctx context.Context, to *Message, text string) (*Message, error)
	Edit(ctx context.Context, msg *Message, text string) error
	React(ctx context.Context, msg *Message, emoji string) error

	AwaitReaction(ctx context.Context, msg *Message, match func(Reaction) bool) (*Reaction, error)
	AwaitMessage(ctx context.Context, match func(*Message) bool) (*Message, error)
}
