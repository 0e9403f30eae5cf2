package booking

import "time"

// Submission outcomes passed to an Observer.
const (
	OutcomeBlocked      = "blocked"
	OutcomeAcknowledged = "acknowledged"
	OutcomeFailed       = "failed"
)

// Observer hears about sessions and submissions, usually to count them.
// Calls are made with a form or registry lock held and must not block.
type Observer interface {
	SessionOpened()
	SessionClosed()
	// Submission reports a submit attempt. elapsed is zero for blocked
	// attempts and the acknowledgement time otherwise.
	Submission(outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) SessionOpened()                   {}
func (nopObserver) SessionClosed()                   {}
func (nopObserver) Submission(string, time.Duration) {}
