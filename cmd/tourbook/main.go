package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	bookinghttp "github.com/himtrails/tourbook/modules/booking"
	"github.com/himtrails/tourbook/pkg/clientip"
	"github.com/himtrails/tourbook/pkg/config"
	"github.com/himtrails/tourbook/pkg/cookie"
	"github.com/himtrails/tourbook/pkg/environment"
	"github.com/himtrails/tourbook/pkg/httpserver"
	"github.com/himtrails/tourbook/pkg/i18n"
	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/pkg/metrics"
	"github.com/himtrails/tourbook/pkg/ratelimiter"
	"github.com/himtrails/tourbook/pkg/requestid"
	"github.com/himtrails/tourbook/svc/booking"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"tourbook"`
	Env  string `env:"APP_ENV" envDefault:"development"`
	// TrustedHeaders name the proxy headers holding the client address.
	// Empty trusts only the connection.
	TrustedHeaders []string `env:"CLIENTIP_HEADERS" envSeparator:","`

	HTTP    httpserver.Config
	Booking booking.Config
	Cookie  cookie.Config
	Metrics metrics.Config
	// RateLimit throttles form submissions per client address.
	RateLimit ratelimiter.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("tourbook: %v", err)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	env := environment.Parse(cfg.Env)

	l := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(l)

	tr, err := i18n.NewTranslator(ctx, booking.Locales(),
		i18n.WithDefaultLanguage(cfg.Booking.Language),
		i18n.WithLogger(l),
		i18n.WithMissingTranslationsLogging(env != environment.Production),
	)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(cfg.Metrics, nil)

	registry, err := booking.NewRegistry(cfg.Booking,
		booking.WithLogger(l),
		booking.WithTranslator(tr),
		booking.WithObserver(collector),
	)
	if err != nil {
		return err
	}
	defer registry.Close()

	limits := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
	if err != nil {
		return err
	}
	stopPrune := pruneEvery(ctx, time.Hour, limits)
	defer stopPrune()

	service := bookinghttp.NewService(registry, cookies, tr,
		bookinghttp.WithLogger(l),
		bookinghttp.WithSubmitLimiter(limiter),
	)

	ips := clientip.NewDirect()
	if len(cfg.TrustedHeaders) > 0 {
		ips = clientip.New(cfg.TrustedHeaders...)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(ips.Middleware)
	r.Use(environment.Middleware(env))
	r.Get("/health/live", httpserver.HealthCheckHandler(l))
	r.Get("/health/ready", httpserver.HealthCheckHandler(l, registry.Check))
	r.Handle(cfg.Metrics.Path, collector.Handler())
	r.Mount("/", bookinghttp.Router(bookinghttp.RouterOptions{Booking: service}))

	l.InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("env", env.String()),
	)
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(l)).Run(ctx, r)
}

// pruneEvery drops idle rate limit buckets until the returned func is called.
func pruneEvery(ctx context.Context, d time.Duration, store *ratelimiter.MemoryStore) func() {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		t := time.NewTicker(d)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := store.Prune(); n > 0 {
					slog.DebugContext(ctx, "pruned rate limit buckets", slog.Int("count", n))
				}
			}
		}
	}()
	return cancel
}
