package treatment

import (
	"math"
	"strings"
	"time"
)

const (
	FrequencyOnceADay  = "once a day"
	FrequencyTwiceADay = "twice a day"
	FrequencyOnceAWeek = "once a week"
)

// NormalizeFrequency maps a label onto one of the known frequencies.
// Unknown labels fall back to once a day.
func NormalizeFrequency(label string) string {
	switch f := strings.ToLower(strings.Join(strings.Fields(label), " ")); f {
	case FrequencyTwiceADay, FrequencyOnceAWeek:
		return f
	default:
		return FrequencyOnceADay
	}
}

// Interval is the time between two doses at the given frequency.
func Interval(frequency string) time.Duration {
	switch NormalizeFrequency(frequency) {
	case FrequencyTwiceADay:
		return 12 * time.Hour
	case FrequencyOnceAWeek:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// EstimateProgress returns how far now is through [begin, end] as a
// percentage of dosing intervals, rounded and clamped to 0..100. A treatment
// that begins and ends at the same instant is complete.
func EstimateProgress(begin, end, now time.Time, frequency string) (int, error) {
	if end.Before(begin) {
		return 0, ErrInvalidPeriod
	}
	if end.Equal(begin) {
		return 100, nil
	}

	interval := float64(Interval(frequency))
	total := float64(end.Sub(begin)) / interval
	elapsed := float64(now.Sub(begin)) / interval

	p := math.Round(100 * elapsed / total)
	return int(math.Max(0, math.Min(100, p))), nil
}
