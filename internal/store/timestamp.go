package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout matches ISO-8601 timestamps written without a UTC offset,
// with or without fractional seconds.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// isoTime decodes RFC 3339 timestamps as well as offset-less ISO-8601 ones,
// which are taken to be local time. It encodes as RFC 3339.
type isoTime time.Time

func (t isoTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t *isoTime) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == nil || *s == "" {
		*t = isoTime{}
		return nil
	}
	if v, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		*t = isoTime(v)
		return nil
	}
	v, err := time.ParseInLocation(naiveLayout, *s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", *s)
	}
	*t = isoTime(v)
	return nil
}
