package plan

import (
	"fmt"
	"time"
)

// AddMonths advances a date by whole calendar months, clamping the day to the
// end of the target month (Jan 31 + 1 month = Feb 28/29). The result is a
// date: the time of day is dropped.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	monthIndex := int(month) - 1 + months
	year += monthIndex / 12
	month = time.Month(monthIndex%12 + 1)

	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatVND renders an amount with thousand separators, e.g. "1,200,000 VND".
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%d", amount)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if negative {
		return "-" + string(out) + " VND"
	}
	return string(out) + " VND"
}
