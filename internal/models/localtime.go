package models

import (
	"fmt"
	"strings"
	"time"
)

// localTimeLayout is the wire convention for workout timestamps: local civil
// time, truncated to the second, no UTC offset. Both sides of the API must
// use the same convention or computed durations skew by the timezone.
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a timestamp exchanged as "YYYY-MM-DDTHH:mm:ss".
type LocalTime struct {
	time.Time
}

// NewLocalTime truncates t to the second.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t.Truncate(time.Second)}
}

// String renders the wire form.
func (lt LocalTime) String() string {
	return lt.Format(localTimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + lt.Format(localTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		lt.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(localTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parsing local time %q: %w", s, err)
	}
	lt.Time = t
	return nil
}
