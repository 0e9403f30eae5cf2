package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions lists the services of the site. Each is optional.
type RouterOptions struct {
	Booking Mountable
}

// Router mounts the booking service at /booking and sends / there.
//
//	svc := booking.NewService(registry, cookies, translator)
//	r.Mount("/", booking.Router(booking.RouterOptions{Booking: svc}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Booking != nil {
		r.Mount("/booking", opts.Booking.Handle())
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/booking", http.StatusSeeOther)
		})
	}

	return r
}
