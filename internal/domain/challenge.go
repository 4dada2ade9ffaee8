package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// TokenPrefix makes challenge tokens recognizable to a human scrolling the
// channel; the entropy lives entirely in the hex suffix.
const TokenPrefix = "bojbot "

// Challenge is the one-time proof a requester must get accepted by the judge
// site within the registration window. Created once after preconditions
// pass, read-only afterwards, and discarded when the run resolves.
type Challenge struct {
	Token       string
	RequesterID string
	JudgeID     string
	Deadline    time.Time
}

// NewChallenge issues a challenge with 16 random bytes of entropy and a
// deadline of now + window.
func NewChallenge(requesterID, judgeID string, window time.Duration) (*Challenge, error) {
	raw := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &Challenge{
		Token:       TokenPrefix + hex.EncodeToString(raw),
		RequesterID: requesterID,
		JudgeID:     judgeID,
		Deadline:    time.Now().Add(window),
	}, nil
}

// Outcome is the single terminal result of one registration run.
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeTimedOut  Outcome = "timed_out"
)
