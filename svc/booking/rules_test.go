package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/svc/booking"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  map[string]string
		field   string
		wantKey string
		wantMsg string
	}{
		{"short name", map[string]string{"name": " J "}, "name", booking.KeyNameTooShort, "Name must be at least 2 characters long"},
		{"name with digits", map[string]string{"name": "J4ne"}, "name", booking.KeyNameInvalid, "Name should only contain letters and spaces"},
		{"name trimmed", map[string]string{"name": "  Jane Doe  "}, "name", "", ""},
		{"bad email", map[string]string{"email": "jane@example"}, "email", booking.KeyEmailInvalid, "Please enter a valid email address"},
		{"email", map[string]string{"email": " jane@example.com "}, "email", "", ""},
		{"short phone", map[string]string{"phone": "12345"}, "phone", booking.KeyPhoneInvalid, "Please enter a valid 10-digit phone number"},
		{"formatted phone", map[string]string{"phone": "(987) 654-3210"}, "phone", "", ""},
		{"no location", map[string]string{"location": "  "}, "location", booking.KeyLocationRequired, "Please select a destination"},
		{"no checkin", map[string]string{}, "checkin", booking.KeyCheckinRequired, "Please select a check-in date"},
		{"past checkin", map[string]string{"checkin": date(-1)}, "checkin", booking.KeyCheckinPast, "Check-in date must be today or in the future"},
		{"checkin today", map[string]string{"checkin": date(0)}, "checkin", "", ""},
		{"garbled checkin", map[string]string{"checkin": "19/10/2026"}, "checkin", booking.KeyCheckinPast, "Check-in date must be today or in the future"},
		{"no checkout", map[string]string{"checkin": date(1)}, "checkout", booking.KeyCheckoutRequired, "Please select a check-out date"},
		{"same day checkout", map[string]string{"checkin": date(1), "checkout": date(1)}, "checkout", booking.KeyCheckoutBeforeCheckin, "Check-out date must be after check-in date"},
		{"checkout without checkin", map[string]string{"checkout": date(3)}, "checkout", booking.KeyCheckoutBeforeCheckin, "Check-out date must be after check-in date"},
		{"checkout after checkin", map[string]string{"checkin": date(1), "checkout": date(2)}, "checkout", "", ""},
		{"no people", map[string]string{}, "people", booking.KeyPeopleRequired, "Please select number of people"},
		{"free text message", map[string]string{}, "message", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := booking.NewFieldSet(newClock().Now, kolkata)
			for k, v := range tt.values {
				require.NoError(t, fs.Set(k, v))
			}

			r := formfield.ValidateField(tt.field, fs)
			if tt.wantKey == "" {
				assert.True(t, r.Valid)
				return
			}
			assert.False(t, r.Valid)
			assert.Equal(t, tt.wantKey, r.TranslationKey())
			assert.Equal(t, tt.wantMsg, r.Message())
		})
	}
}

func TestFieldOrder(t *testing.T) {
	t.Parallel()

	fs := booking.NewFieldSet(newClock().Now, kolkata)
	assert.Equal(t, []string{"name", "email", "phone", "location", "checkin", "checkout", "people", "message"}, fs.Names())
}

func TestCheckinFollowsClock(t *testing.T) {
	t.Parallel()

	c := newClock()
	fs := booking.NewFieldSet(c.Now, kolkata)
	require.NoError(t, fs.Set("checkin", date(0)))
	assert.True(t, formfield.ValidateField("checkin", fs).Valid)

	c.Advance(24 * time.Hour)
	assert.False(t, formfield.ValidateField("checkin", fs).Valid)
}
