package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-foundations/jobsim/internal/simerr"
)

const (
	Minute = 60
	Hour   = 60 * Minute
	Day    = 24 * Hour
)

// ParseDuration parses a duration given as "H:M:S", "M:S", or a bare
// integer seconds string, matching the CLI surface's "a duration in
// H:M:S" scenario-file convention. Malformed input is an Input error.
func ParseDuration(value string) (int, error) {
	parts := strings.Split(value, ":")
	var hours, minutes, seconds int
	var err error

	switch len(parts) {
	case 3:
		hours, err = strconv.Atoi(parts[0])
		if err == nil {
			minutes, err = strconv.Atoi(parts[1])
		}
		if err == nil {
			seconds, err = strconv.Atoi(parts[2])
		}
	case 2:
		minutes, err = strconv.Atoi(parts[0])
		if err == nil {
			seconds, err = strconv.Atoi(parts[1])
		}
	case 1:
		seconds, err = strconv.Atoi(parts[0])
	default:
		return 0, fmt.Errorf("%w: invalid duration format %q", simerr.ErrInput, value)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration format %q: %v", simerr.ErrInput, value, err)
	}

	return hours*Hour + minutes*Minute + seconds, nil
}

// FormatDuration renders an integer count of virtual seconds as
// "H hours :M minutes :S seconds", dropping leading zero components,
// matching the original tool's seconds_to_hms.
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / Hour
	minutes := (totalSeconds % Hour) / Minute
	seconds := totalSeconds % Minute

	switch {
	case hours > 0:
		return fmt.Sprintf("%d hours :%d minutes :%d seconds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d minutes :%d seconds", minutes, seconds)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}
