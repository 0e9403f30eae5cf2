package handler

import "net/http"

// SSEHandler runs for the lifetime of a Datastar stream. The stream closes
// when it returns or the client goes away.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		updates, cancel := form.Subscribe()
//		defer cancel()
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case view := <-updates:
//				if err := stream.SendComponent(views.Form(view)); err != nil {
//					return err
//				}
//			}
//		}
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "sse_requires_datastar")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
