// Package docnumber derives human-readable document numbers from a timestamp.
package docnumber

import (
	"time"
)

const layout = "020120061504"

// Generate returns prefix followed by DDMMYYYYHHmm of now, 24-hour clock.
// Two documents generated within the same minute share a number.
func Generate(now time.Time, prefix string) string {
	return prefix + now.Format(layout)
}

// DateLayout is the compact YYYYMMDDHHmm layout used for document dates.
const DateLayout = "200601021504"

// FormatDate renders now as YYYYMMDDHHmm.
func FormatDate(now time.Time) string {
	return now.Format(DateLayout)
}
