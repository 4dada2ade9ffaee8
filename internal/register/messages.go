package register

import (
	"fmt"
	"math"
	"time"
)

// User-facing text lives here so the workflow logic stays free of copy.

const (
	cancelEmoji = "❌"

	usageText       = "Register with `!register <judge ID>`."
	invalidLinkText = "That link could not be verified. Please share the submission link again."
	cancelledText   = "Registration was cancelled."
)

func alreadyRegisteredText(userID, judgeID string) string {
	return fmt.Sprintf("<@%s> is already registered as `%s`.", userID, judgeID)
}

func judgeIDTakenText(judgeID string) string {
	return fmt.Sprintf("`%s` is already registered to another user.", judgeID)
}

func notFoundText(judgeID string) string {
	return fmt.Sprintf("`%s` does not exist on the judge site.", judgeID)
}

func challengeText(token string) string {
	return fmt.Sprintf("```%s```\n"+
		"To register, submit the text above as source code to any problem, "+
		"then share the submission and paste the link here.\n"+
		"React with %s to cancel.", token, cancelEmoji)
}

func remainingText(remaining time.Duration) string {
	return fmt.Sprintf("Time remaining: %d min", int(math.Round(remaining.Minutes())))
}

func successText(userID, judgeID string) string {
	return fmt.Sprintf("<@%s> is now registered as `%s`.", userID, judgeID)
}
