package scheduler

import "log/slog"

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used to report recovered task panics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
