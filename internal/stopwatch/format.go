package stopwatch

import (
	"fmt"
	"strings"
	"time"
)

// Formatted is an elapsed time split the way the display shows it:
// "HH:MM:SS" and a ".mmm" fragment.
type Formatted struct {
	Time     string
	Fraction string
}

// FormatTime renders ms as HH:MM:SS and .mmm. Hours are not wrapped, so
// 100 hours renders as "100:00:00".
func FormatTime(ms int64) Formatted {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	milli := ms % 1000

	return Formatted{
		Time:     fmt.Sprintf("%02d:%02d:%02d", h, m, s),
		Fraction: fmt.Sprintf(".%03d", milli),
	}
}

// FormatDuration is FormatTime for a time.Duration, truncated to whole
// milliseconds.
func FormatDuration(d time.Duration) Formatted {
	return FormatTime(d.Milliseconds())
}

// Milliseconds returns the fraction without its leading separator.
func (f Formatted) Milliseconds() string {
	return strings.TrimPrefix(f.Fraction, ".")
}

func (f Formatted) String() string {
	return f.Time + f.Fraction
}
