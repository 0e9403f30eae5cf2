// Package scheduler runs keyed, cancellable one-shot tasks after a delay.
//
// Scheduling a task under a key that already has a pending task replaces it,
// which is what debouncing needs: only the last call within the delay runs.
// Cancel drops a pending task; Stop drops all of them, cancels the context
// handed to running tasks and waits for them to return.
//
//	s := scheduler.New(scheduler.WithLogger(log))
//	defer s.Stop()
//
//	_ = s.Schedule("validate:email", 300*time.Millisecond, func(ctx context.Context) {
//	    form.validate("email")
//	})
//
// A task must not call Stop on the scheduler that runs it.
package scheduler
