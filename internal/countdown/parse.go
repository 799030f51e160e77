package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration reports minutes/seconds input that is not a usable target.
var ErrInvalidDuration = errors.New("invalid duration")

// ParseTarget converts minutes and seconds fields into a duration. Blank
// fields count as zero; seconds must stay below 60 and the total must be
// positive.
func ParseTarget(minutes, seconds string) (time.Duration, error) {
	m, err := parseField("minutes", minutes)
	if err != nil {
		return 0, err
	}
	s, err := parseField("seconds", seconds)
	if err != nil {
		return 0, err
	}
	if s >= 60 {
		return 0, fmt.Errorf("%w: seconds must be below 60, got %d", ErrInvalidDuration, s)
	}
	return Target(m, s)
}

// Target builds a duration from whole minutes and seconds.
func Target(minutes, seconds int) (time.Duration, error) {
	if minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("%w: negative time %dm%ds", ErrInvalidDuration, minutes, seconds)
	}
	d := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if d <= 0 {
		return 0, fmt.Errorf("%w: target must be longer than zero", ErrInvalidDuration)
	}
	return d, nil
}

func parseField(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number", ErrInvalidDuration, name, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidDuration, name)
	}
	return v, nil
}

// FormatClock renders d as MM:SS, rounding partial seconds up so the clock
// only reads 00:00 once nothing is left.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Split returns whole minutes and seconds of d.
func Split(d time.Duration) (minutes, seconds int) {
	if d < 0 {
		return 0, 0
	}
	total := int(d / time.Second)
	return total / 60, total % 60
}
