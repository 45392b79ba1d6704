package encode

import (
	"math"
	"regexp"
	"strconv"
)

// ffmpeg reports an elapsed-time marker on its diagnostic stream while
// encoding, and the container duration once when it opens the input. Both
// use HH:MM:SS.ff; hours may exceed two digits.
var (
	durationPattern = regexp.MustCompile(`Duration:\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{2})`)
	elapsedPattern  = regexp.MustCompile(`time=\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{2})`)
)

// ParseDuration extracts the total-duration marker from a diagnostic line.
func ParseDuration(line string) (float64, bool) {
	return parseClock(durationPattern, line)
}

// ParseElapsed extracts the elapsed-time marker from a diagnostic line.
func ParseElapsed(line string) (float64, bool) {
	return parseClock(elapsedPattern, line)
}

func parseClock(pattern *regexp.Regexp, line string) (float64, bool) {
	match := pattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	hundredths, _ := strconv.Atoi(match[4])
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(hundredths)/100, true
}

// Percent computes a clamped completion percentage.
func Percent(elapsed, total float64) int {
	if total <= 0 || elapsed < 0 {
		return 0
	}
	percent := int(math.Round(100 * elapsed / total))
	return min(percent, 100)
}

// ProgressParser accumulates diagnostic lines into completion percentages.
// The zero value is ready to use.
type ProgressParser struct {
	total float64
}

// TotalSeconds returns the total duration observed so far, 0 when unknown.
func (p *ProgressParser) TotalSeconds() float64 {
	return p.total
}

// Observe consumes one diagnostic line. It returns a percentage and true
// when the line carried an elapsed-time marker and the total duration is
// already known.
func (p *ProgressParser) Observe(line string) (int, bool) {
	if p.total == 0 {
		if total, ok := ParseDuration(line); ok {
			p.total = total
			return 0, false
		}
	}
	if elapsed, ok := ParseElapsed(line); ok && p.total > 0 {
		return Percent(elapsed, p.total), true
	}
	return 0, false
}
