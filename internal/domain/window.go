package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockWindow is an inclusive time-of-day interval, in minutes since
// midnight. Windows never span midnight.
type ClockWindow struct {
	Start int
	End   int
}

// ParseClockWindow parses "HH:MM-HH:MM" into a ClockWindow.
func ParseClockWindow(s string) (ClockWindow, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return ClockWindow{}, fmt.Errorf("parse clock window %q: want HH:MM-HH:MM", s)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return ClockWindow{}, fmt.Errorf("parse clock window %q: %w", s, err)
	}

	end, err := parseClock(parts[1])
	if err != nil {
		return ClockWindow{}, fmt.Errorf("parse clock window %q: %w", s, err)
	}

	if end < start {
		return ClockWindow{}, fmt.Errorf("parse clock window %q: end before start", s)
	}

	return ClockWindow{Start: start, End: end}, nil
}

// Contains reports whether the time of day of t falls inside the window.
// Both boundaries are inclusive: a visit exactly at a boundary counts as
// being in that window.
func (w ClockWindow) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.Start && m <= w.End
}

func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("parse clock %q: bad hour", s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: bad minute", s)
	}

	return h*60 + m, nil
}
