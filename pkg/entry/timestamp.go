// Package entry holds the pieces shared by journal and project records.
package entry

import (
	"encoding/json"
	"time"
)

// Layout is the ISO 8601 form stored in slots: UTC with millisecond
// precision, e.g. 2024-03-01T09:30:00.000Z.
const Layout = "2006-01-02T15:04:05.000Z07:00"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(Layout)
}

// Timestamp is a creation time that serializes as an ISO 8601 string.
type Timestamp struct {
	time.Time
}

// At normalizes t to the precision that survives a round trip through a slot.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(FormatTime(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return FormatTime(t.Time)
}
