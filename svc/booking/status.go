package booking

import (
	"context"

	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/pkg/statemachine"
)

// Status is the submission state of a form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusBlocked    Status = "blocked"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
)

type event string

const (
	eventSubmit       event = "submit"
	eventAcknowledged event = "acknowledged"
	eventFailed       event = "failed"
)

func resultsOK(_ context.Context, _ Status, _ event, data any) bool {
	rs, _ := data.(formfield.Results)
	return rs.OK()
}

func resultsInvalid(ctx context.Context, from Status, ev event, data any) bool {
	return !resultsOK(ctx, from, ev, data)
}

// newStatusMachine wires the submission lifecycle. Submitting has no submit
// edge, so a second submit is rejected while one is in flight.
func newStatusMachine() *statemachine.Machine[Status, event] {
	settled := []Status{StatusIdle, StatusBlocked, StatusSuccess}
	return statemachine.NewBuilder[Status, event](StatusIdle).
		FromAny(settled, eventSubmit, StatusSubmitting, resultsOK).
		FromAny(settled, eventSubmit, StatusBlocked, resultsInvalid).
		From(StatusSubmitting).When(eventAcknowledged).To(StatusSuccess).Add().
		From(StatusSubmitting).When(eventFailed).To(StatusIdle).Add().
		Build()
}
