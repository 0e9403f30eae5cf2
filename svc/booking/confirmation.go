package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/himtrails/tourbook/pkg/i18n"
	"github.com/himtrails/tourbook/pkg/validator"
)

const (
	keyBannerBlocked = "booking.banner.blocked"
	keyBannerFailed  = "booking.banner.failed"
	keyBannerSuccess = "booking.banner.success"
	keyPeople        = "booking.people"
	keyNoticeDest    = "booking.notice.destination"
	keyNoticeTrek    = "booking.notice.trek"
)

// displayDate renders a YYYY-MM-DD value as "January 2, 2006". Values that
// do not parse are shown as they are.
func displayDate(value string) string {
	d, err := time.Parse(validator.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return d.Format("January 2, 2006")
}

func peopleText(tr *i18n.Translator, lang, value string) string {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return tr.N(lang, keyPeople, n)
	}
	return tr.Td(lang, keyPeople+".other", "%{count} people", "count", value)
}

// composeConfirmation builds the success banner text for e.
func composeConfirmation(tr *i18n.Translator, lang string, c *Catalog, e Enquiry) string {
	return tr.T(lang, keyBannerSuccess,
		"name", e.Name,
		"location", c.LocationName(e.Location),
		"checkin", displayDate(e.Checkin),
		"checkout", displayDate(e.Checkout),
		"people", peopleText(tr, lang, e.People),
		"email", e.Email,
	)
}
