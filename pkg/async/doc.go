// Package async provides a small generic Future.
//
// Async starts a function on its own goroutine and returns a *Future whose
// Await, AwaitContext and Done methods observe the result. The booking form
// uses it to hand the caller the pending acknowledgement of an enquiry while
// the form itself moves on.
//
//	fut := async.Async(ctx, enquiry, ack.Acknowledge)
//	conf, err := fut.AwaitContext(r.Context())
package async
