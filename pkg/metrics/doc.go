// Package metrics exposes booking activity to Prometheus.
//
//	m := metrics.NewCollector(cfg, nil)
//	registry, _ := booking.NewRegistry(bookingCfg, booking.WithObserver(m))
//	r.Handle(cfg.Path, m.Handler())
package metrics
