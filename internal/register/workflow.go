// Package register implements the judge-account registration workflow: a
// one-time token the requester must prove possession of on the judge site
// before a deadline, raced against an explicit cancel reaction.
package register

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jooddae/bojbot/internal/chat"
	"github.com/jooddae/bojbot/internal/domain"
	"github.com/jooddae/bojbot/internal/judge"
	"github.com/jooddae/bojbot/internal/metrics"
	"github.com/jooddae/bojbot/internal/repository"
)

const DefaultWindow = 10 * time.Minute

// Verifier is the subset of the judge client the workflow needs.
// Defined here (point of use) so tests can inject a fake.
type Verifier interface {
	UserExists(ctx context.Context, judgeID string) (bool, error)
	SharedSubmission(ctx context.Context, link string) (*judge.SharedSubmission, error)
}

// UserError is a failure whose message should be shown to the requester
// verbatim: bad arguments, conflicting registrations, unknown judge id.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

func userErr(msg string) error { return &UserError{Message: msg} }

type Workflow struct {
	users    repository.UserRepository
	verifier Verifier
	logger   *slog.Logger
	window   time.Duration
	tick     time.Duration
}

// NewWorkflow builds a workflow with the given registration window and
// countdown refresh interval (1s in production).
func NewWorkflow(
	users repository.UserRepository,
	verifier Verifier,
	logger *slog.Logger,
	window time.Duration,
	tick time.Duration,
) *Workflow {
	return &Workflow{
		users:    users,
		verifier: verifier,
		logger:   logger.With("component", "register"),
		window:   window,
		tick:     tick,
	}
}

// raceResult is what a race branch publishes on settlement.
type raceResult struct {
	outcome domain.Outcome
	err     error
}

// Run executes one registration attempt for the author of cmd.
//
// Precondition failures return a *UserError before any challenge exists.
// Once the challenge is issued, the cancel waiter and the poll loop race to
// the first settled outcome; the loser is torn down. On Confirmed the
// registry insert strictly precedes the success edit, so a crash in between
// can leave the user unregistered but never registered-and-untold. The
// precondition checks are not re-validated at commit time; a concurrent run
// that wins the narrow race surfaces as a duplicate error from the registry.
func (w *Workflow) Run(ctx context.Context, channel chat.Channel, cmd *chat.Message, rawArgs string) (domain.Outcome, error) {
	requesterID := cmd.AuthorID

	args := strings.Fields(rawArgs)
	if len(args) != 1 {
		return "", userErr(usageText)
	}
	judgeID := args[0]

	if err := w.checkPreconditions(ctx, requesterID, judgeID); err != nil {
		return "", err
	}

	challenge, err := domain.NewChallenge(requesterID, judgeID, w.window)
	if err != nil {
		return "", err
	}

	anchor, err := channel.Reply(ctx, cmd, challengeText(challenge.Token))
	if err != nil {
		return "", fmt.Errorf("send challenge: %w", err)
	}

	countdown, err := channel.Send(ctx, remainingText(time.Until(challenge.Deadline)))
	if err != nil {
		return "", fmt.Errorf("send countdown: %w", err)
	}

	w.logger.Info("challenge issued",
		"requester_id", requesterID,
		"judge_id", judgeID,
		"deadline", challenge.Deadline,
	)

	start := time.Now()
	outcome, err := w.race(ctx, channel, challenge, countdown)
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(outcome)).Inc()
	metrics.RegistrationDuration.Observe(time.Since(start).Seconds())

	if outcome != domain.OutcomeConfirmed {
		w.logger.Info("registration not completed", "requester_id", requesterID, "outcome", outcome)
		if err := channel.Edit(ctx, anchor, cancelledText); err != nil {
			return outcome, fmt.Errorf("edit anchor: %w", err)
		}
		return outcome, nil
	}

	// Commit before telling the user.
	if err := w.users.Create(ctx, requesterID, judgeID); err != nil {
		return "", fmt.Errorf("insert registration: %w", err)
	}

	w.logger.Info("registration confirmed", "requester_id", requesterID, "judge_id", judgeID)

	if err := channel.Edit(ctx, anchor, successText(requesterID, judgeID)); err != nil {
		return outcome, fmt.Errorf("edit anchor: %w", err)
	}
	return outcome, nil
}

func (w *Workflow) checkPreconditions(ctx context.Context, requesterID, judgeID string) error {
	switch user, err := w.users.FindByID(ctx, requesterID); {
	case err == nil:
		return userErr(alreadyRegisteredText(requesterID, user.JudgeID))
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("look up requester: %w", err)
	}

	switch _, err := w.users.FindByJudgeID(ctx, judgeID); {
	case err == nil:
		return userErr(judgeIDTakenText(judgeID))
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("look up judge id: %w", err)
	}

	exists, err := w.verifier.UserExists(ctx, judgeID)
	if err != nil {
		return fmt.Errorf("check judge id: %w", err)
	}
	if !exists {
		return userErr(notFoundText(judgeID))
	}
	return nil
}

// race runs the countdown updater, the cancel waiter and the poll loop until
// one of the latter two settles. The shared deadline context is the single
// teardown signal: cancelling it stops the countdown and abandons whichever
// branch lost.
func (w *Workflow) race(ctx context.Context, channel chat.Channel, challenge *domain.Challenge, countdown *chat.Message) (domain.Outcome, error) {
	raceCtx, cancel := context.WithDeadline(ctx, challenge.Deadline)
	defer cancel()

	go w.updateCountdown(raceCtx, channel, countdown, challenge.Deadline)

	// Buffered so the losing branch can publish and exit after the winner
	// has been consumed.
	results := make(chan raceResult, 2)
	go w.awaitCancel(raceCtx, channel, countdown, challenge.RequesterID, results)
	go w.pollSubmissions(raceCtx, channel, challenge, results)

	res := <-results
	if res.err != nil {
		return "", res.err
	}
	return res.outcome, nil
}

// updateCountdown re-renders the remaining time every tick and edits the
// countdown message only when the rendered text changed. It never produces
// an outcome; edit failures are logged and skipped.
func (w *Workflow) updateCountdown(ctx context.Context, channel chat.Channel, countdown *chat.Message, deadline time.Time) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	last := countdown.Text
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			text := remainingText(time.Until(deadline))
			if text == last {
				continue
			}
			if err := channel.Edit(ctx, countdown, text); err != nil {
				if ctx.Err() == nil {
					w.logger.Warn("edit countdown", "error", err)
				}
				continue
			}
			last = text
		}
	}
}

// awaitCancel attaches the cancel affordance and waits for the requester to
// apply it. An expired or torn-down wait publishes nothing; the timeout
// outcome belongs to the poll loop.
func (w *Workflow) awaitCancel(ctx context.Context, channel chat.Channel, countdown *chat.Message, requesterID string, results chan<- raceResult) {
	if err := channel.React(ctx, countdown, cancelEmoji); err != nil {
		if ctx.Err() != nil {
			return
		}
		results <- raceResult{err: fmt.Errorf("attach cancel reaction: %w", err)}
		return
	}

	_, err := channel.AwaitReaction(ctx, countdown, func(r chat.Reaction) bool {
		return r.Emoji == cancelEmoji && r.UserID == requesterID
	})
	if err != nil {
		return
	}

	results <- raceResult{outcome: domain.OutcomeCancelled}
}

// pollSubmissions waits for link messages from the requester and checks each
// against the judge site until one matches the challenge or the window
// closes. Mismatched or unresolvable links get a notice and the loop
// continues; only deadline expiry produces TimedOut.
func (w *Workflow) pollSubmissions(ctx context.Context, channel chat.Channel, challenge *domain.Challenge, results chan<- raceResult) {
	for {
		msg, err := channel.AwaitMessage(ctx, func(m *chat.Message) bool {
			return m.AuthorID == challenge.RequesterID && strings.HasPrefix(m.Text, "http")
		})
		if err != nil {
			if ctx.Err() != nil {
				results <- raceResult{outcome: domain.OutcomeTimedOut}
				return
			}
			results <- raceResult{err: fmt.Errorf("await submission: %w", err)}
			return
		}

		submission, err := w.verifier.SharedSubmission(ctx, msg.Text)
		if err != nil {
			if ctx.Err() != nil {
				results <- raceResult{outcome: domain.OutcomeTimedOut}
				return
			}
			// Fetch failures are absorbed like unresolvable links: notify
			// and keep waiting inside the same window.
			w.logger.Warn("resolve shared submission", "error", err, "link", msg.Text)
			submission = nil
		}

		if submission != nil && submission.JudgeID == challenge.JudgeID && submission.Content == challenge.Token {
			metrics.VerificationAttemptsTotal.WithLabelValues("confirmed").Inc()
			results <- raceResult{outcome: domain.OutcomeConfirmed}
			return
		}

		if submission == nil {
			metrics.VerificationAttemptsTotal.WithLabelValues("invalid_link").Inc()
		} else {
			metrics.VerificationAttemptsTotal.WithLabelValues("mismatch").Inc()
		}

		if _, err := channel.Reply(ctx, msg, invalidLinkText); err != nil {
			if ctx.Err() != nil {
				results <- raceResult{outcome: domain.OutcomeTimedOut}
				return
			}
			results <- raceResult{err: fmt.Errorf("send invalid-link notice: %w", err)}
			return
		}
	}
}
