package keycodec

import (
	"net/http"
	"time"

	"github.com/yndnr/proxystore/pkg/storage"
)

// AlterDate shifts e.Date (or now, when e.Date is zero) by the deltas in e.
// Deltas are applied in the order minutes, hours, days, months, years, with
// calendar normalization for day and month overflow.
func AlterDate(e storage.Expiration, now time.Time) time.Time {
	d := e.Date
	if d.IsZero() {
		d = now
	}
	if e.Minutes != 0 {
		d = d.Add(time.Duration(e.Minutes) * time.Minute)
	}
	if e.Hours != 0 {
		d = d.Add(time.Duration(e.Hours) * time.Hour)
	}
	if e.Days != 0 {
		d = d.AddDate(0, 0, e.Days)
	}
	if e.Months != 0 {
		d = d.AddDate(0, e.Months, 0)
	}
	if e.Years != 0 {
		d = d.AddDate(e.Years, 0, 0)
	}
	return d
}

// HTTPDate formats t as an HTTP date, e.g. "Tue, 20 Oct 2026 10:00:00 GMT".
func HTTPDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// ParseHTTPDate parses an HTTP date as written by HTTPDate.
func ParseHTTPDate(s string) (time.Time, error) {
	return http.ParseTime(s)
}

// ExpirationString computes the expiration date of e relative to now and
// formats it as an HTTP date.
func ExpirationString(e storage.Expiration, now time.Time) string {
	return HTTPDate(AlterDate(e, now))
}
