package booking_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/svc/booking"
)

var kolkata = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return loc
}()

// today is the fixed "now" of every test.
var today = time.Date(2026, time.October, 19, 10, 0, 0, 0, kolkata)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: today} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() booking.Config {
	return booking.Config{
		DebounceDelay:   20 * time.Millisecond,
		RevalidateDelay: 10 * time.Millisecond,
		SubmitDelay:     30 * time.Millisecond,
		SuccessTTL:      300 * time.Millisecond,
		ErrorTTL:        100 * time.Millisecond,
		NoticeTTL:       50 * time.Millisecond,
		NoticeFade:      30 * time.Millisecond,
		SessionTTL:      time.Minute,
		Timezone:        "Asia/Kolkata",
		Language:        "en",
	}
}

func newForm(t *testing.T, opts ...booking.Option) *booking.Form {
	t.Helper()
	opts = append([]booking.Option{
		booking.WithClock(newClock().Now),
		booking.WithLogger(logger.Discard()),
	}, opts...)
	f, err := booking.NewForm(testConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func date(days int) string {
	return today.AddDate(0, 0, days).Format("2006-01-02")
}

func fill(t *testing.T, f *booking.Form, values map[string]string) {
	t.Helper()
	for name, v := range values {
		require.NoError(t, f.Set(name, v))
	}
}

func validEnquiry() map[string]string {
	return map[string]string{
		booking.FieldName:     "Jane Doe",
		booking.FieldEmail:    "jane@example.com",
		booking.FieldPhone:    "98765 43210",
		booking.FieldLocation: "kedarnath",
		booking.FieldCheckin:  date(6),
		booking.FieldCheckout: date(9),
		booking.FieldPeople:   "2",
	}
}

func fieldView(t *testing.T, f *booking.Form, name string) booking.FieldView {
	t.Helper()
	fv, ok := f.View().Field(name)
	require.True(t, ok, "field %s", name)
	return fv
}
