package booking_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/svc/booking"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := booking.DefaultCatalog()

	names := map[string]string{
		"rishikesh": "Rishikesh",
		"mussorie":  "Mussorie",
		"tehri":     "Tehri",
		"nainital":  "Nainital",
		"kedarnath": "Kedarnath",
		"badrinath": "Badrinath",
		"goa":       "goa",
	}
	for value, want := range names {
		assert.Equal(t, want, c.LocationName(value), value)
	}

	prefill := map[string]string{
		"harshil-valley":    "tehri",
		"panch-kedar":       "kedarnath",
		"tungnath-chopta":   "kedarnath",
		"valley-of-flowers": "nainital",
	}
	for slug, want := range prefill {
		d, ok := c.Destination(slug)
		require.True(t, ok, slug)
		assert.Equal(t, want, d.Location, slug)
	}

	_, ok := c.Destination("atlantis")
	assert.False(t, ok)
	assert.NotEmpty(t, c.People)
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("unknown location", func(t *testing.T) {
		t.Parallel()
		_, err := booking.LoadCatalog(strings.NewReader(`
locations:
  - value: tehri
    name: Tehri
destinations:
  - slug: x
    title: X
    price: "1"
    location: goa
`))
		assert.ErrorIs(t, err, booking.ErrInvalidCatalog)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := booking.LoadCatalog(strings.NewReader("planets: []\n"))
		assert.ErrorIs(t, err, booking.ErrInvalidCatalog)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()
		_, err := booking.LoadCatalog(strings.NewReader(`
destinations:
  - slug: x
  - slug: x
`))
		assert.ErrorIs(t, err, booking.ErrInvalidCatalog)
	})

	t.Run("slug from title", func(t *testing.T) {
		t.Parallel()
		c, err := booking.LoadCatalog(strings.NewReader(`
destinations:
  - title: Dayārā Bugyal
    price: "₹9,999"
treks:
  - title: Kuari Pass
    price: "₹11,499"
`))
		require.NoError(t, err)
		d, ok := c.Destination("dayara-bugyal")
		require.True(t, ok)
		assert.Equal(t, "Dayārā Bugyal", d.Title)
		_, ok = c.Trek("kuari-pass")
		assert.True(t, ok)
	})

	t.Run("duplicate trek", func(t *testing.T) {
		t.Parallel()
		_, err := booking.LoadCatalog(strings.NewReader(`
treks:
  - title: Kuari Pass
  - slug: kuari-pass
`))
		assert.ErrorIs(t, err, booking.ErrInvalidCatalog)
	})
}

func TestSimulatedAcknowledger(t *testing.T) {
	t.Parallel()

	ack := booking.SimulatedAcknowledger{Now: newClock().Now}
	c, err := ack.Acknowledge(t.Context(), booking.Enquiry{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Len(t, c.Reference, 36)
	assert.Equal(t, "Jane Doe", c.Enquiry.Name)
	assert.Equal(t, today, c.AcknowledgedAt)
}
