package scheduler

import "errors"

var (
	ErrNilTask = errors.New("scheduler: task is nil")
	ErrStopped = errors.New("scheduler: stopped")
)
