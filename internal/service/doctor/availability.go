package doctor

import (
	"time"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

// Available reports whether date and timeOfDay fall inside the doctor's
// visibility window. Dates compare as calendar days and times as minutes
// of the day, both inclusive. A missing or unparseable bound, on the doctor
// or in the request, makes the doctor unavailable.
func Available(d *repo.Doctor, date time.Time, timeOfDay string) bool {
	if d == nil || d.VisibilityStartDate == nil || d.VisibilityEndDate == nil ||
		d.VisibilityStartTime == "" || d.VisibilityEndTime == "" {
		return false
	}

	day := clock.Day(date)
	if day.Before(clock.Day(*d.VisibilityStartDate)) || day.After(clock.Day(*d.VisibilityEndDate)) {
		return false
	}

	at, err := clock.ParseClock(timeOfDay)
	if err != nil {
		return false
	}
	from, err := clock.ParseClock(d.VisibilityStartTime)
	if err != nil {
		return false
	}
	to, err := clock.ParseClock(d.VisibilityEndTime)
	if err != nil {
		return false
	}
	return at >= from && at <= to
}
