package management

import (
	"strconv"
	"time"
)

// FormatDate renders a timestamp as "DD-MM-YY, Time: H:MM am/pm" in the
// timestamp's own location. Nil yields "N/A". The output is built from the
// calendar fields directly so it never depends on the host locale.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	year := t.Year() % 100
	hour := t.Hour()
	ampm := "am"
	if hour >= 12 {
		ampm = "pm"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return pad2(t.Day()) + "-" + pad2(int(t.Month())) + "-" + pad2(year) +
		", Time: " + strconv.Itoa(hour) + ":" + pad2(t.Minute()) + " " + ampm
}

// FormatDay renders a calendar date as DD-MM-YYYY, or "N/A" for the zero time.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return pad2(t.Day()) + "-" + pad2(int(t.Month())) + "-" + strconv.Itoa(t.Year())
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
