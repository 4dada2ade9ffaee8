package chat_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jooddae/bojbot/internal/chat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConsole_AwaitMessage_MatchesTypedLine(t *testing.T) {
	in, w := io.Pipe()
	console := chat.NewConsole(io.Discard, "local", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go console.Run(ctx, in)

	done := make(chan *chat.Message, 1)
	go func() {
		m, err := console.AwaitMessage(ctx, func(m *chat.Message) bool {
			return strings.HasPrefix(m.Text, "http")
		})
		if err != nil {
			t.Errorf("await message: %v", err)
		}
		done <- m
	}()

	// Give the waiter time to subscribe before feeding input.
	time.Sleep(10 * time.Millisecond)
	io.WriteString(w, "not a link\n")
	io.WriteString(w, "http://example.com/share/abc\n")

	select {
	case m := <-done:
		if m == nil || m.Text != "http://example.com/share/abc" {
			t.Fatalf("matched message = %+v, want the http line", m)
		}
		if m.AuthorID != "local" {
			t.Errorf("author = %q, want local", m.AuthorID)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for matched message")
	}
}

func TestConsole_AwaitReaction_PlusLineBecomesReaction(t *testing.T) {
	in, w := io.Pipe()
	console := chat.NewConsole(io.Discard, "local", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go console.Run(ctx, in)

	done := make(chan *chat.Reaction, 1)
	go func() {
		r, err := console.AwaitReaction(ctx, nil, func(r chat.Reaction) bool {
			return r.Emoji == "❌" && r.UserID == "local"
		})
		if err != nil {
			t.Errorf("await reaction: %v", err)
		}
		done <- r
	}()

	time.Sleep(10 * time.Millisecond)
	io.WriteString(w, "+❌\n")

	select {
	case r := <-done:
		if r == nil || r.Emoji != "❌" {
			t.Fatalf("reaction = %+v, want ❌", r)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for reaction")
	}
}

func TestConsole_AwaitMessage_DeadlineReturnsCtxErr(t *testing.T) {
	console := chat.NewConsole(io.Discard, "local", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := console.AwaitMessage(ctx, func(*chat.Message) bool { return true })
	if err != context.DeadlineExceeded {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}
