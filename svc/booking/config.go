package booking

import (
	"fmt"
	"time"
)

// Config holds the timings of a booking form session.
type Config struct {
	DebounceDelay   time.Duration `env:"BOOKING_DEBOUNCE_DELAY" envDefault:"300ms"`
	RevalidateDelay time.Duration `env:"BOOKING_REVALIDATE_DELAY" envDefault:"100ms"`
	SubmitDelay     time.Duration `env:"BOOKING_SUBMIT_DELAY" envDefault:"2s"`
	SuccessTTL      time.Duration `env:"BOOKING_SUCCESS_TTL" envDefault:"10s"`
	ErrorTTL        time.Duration `env:"BOOKING_ERROR_TTL" envDefault:"5s"`
	NoticeTTL       time.Duration `env:"BOOKING_NOTICE_TTL" envDefault:"4s"`
	NoticeFade      time.Duration `env:"BOOKING_NOTICE_FADE" envDefault:"300ms"`
	SessionTTL      time.Duration `env:"BOOKING_SESSION_TTL" envDefault:"30m"`
	SweepInterval   time.Duration `env:"BOOKING_SWEEP_INTERVAL" envDefault:"1m"`
	// Timezone decides what "today" means for the check-in rule.
	Timezone string `env:"BOOKING_TIMEZONE" envDefault:"Asia/Kolkata"`
	Language string `env:"BOOKING_LANGUAGE" envDefault:"en"`
}

// DefaultConfig returns the values used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DebounceDelay:   300 * time.Millisecond,
		RevalidateDelay: 100 * time.Millisecond,
		SubmitDelay:     2 * time.Second,
		SuccessTTL:      10 * time.Second,
		ErrorTTL:        5 * time.Second,
		NoticeTTL:       4 * time.Second,
		NoticeFade:      300 * time.Millisecond,
		SessionTTL:      30 * time.Minute,
		SweepInterval:   time.Minute,
		Timezone:        "Asia/Kolkata",
		Language:        "en",
	}
}

func (c Config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}
