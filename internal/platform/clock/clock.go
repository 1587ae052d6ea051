package clock

import "time"

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; shift login and logout times are
// entered by operators against the clock on the wall.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

func TimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}
