// Package timex holds small time helpers shared by config parsing and the
// SQLite repositories.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// SQLiteLayout is the timestamp format stored in the database,
// e.g. "2024-01-02 15:04:05" (UTC, no zone suffix).
const SQLiteLayout = "2006-01-02 15:04:05"

// Duration wraps time.Duration so JSON config files may specify intervals
// either as strings ("720h", "30s") or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}
