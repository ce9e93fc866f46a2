package util

import (
	"fmt"
	"time"
)

// FormatDuration formats an elapsed capture time as m:ss, or h:mm:ss past an
// hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSampleRate renders a rate in kHz, dropping a trailing ".0".
func FormatSampleRate(rate int) string {
	if rate <= 0 {
		return "-- kHz"
	}
	if rate%1000 == 0 {
		return fmt.Sprintf("%d kHz", rate/1000)
	}
	return fmt.Sprintf("%.1f kHz", float64(rate)/1000)
}
