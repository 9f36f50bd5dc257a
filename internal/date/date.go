// Package date provides a calendar date type used for task due dates.
package date

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// Layout is the canonical textual form of a Date.
const Layout = "2006-01-02"

// Date is a calendar day. It is stored as midnight UTC.
type Date struct {
	time.Time
}

// New returns the Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(Layout)
}

// Before reports whether the start of the day lies strictly before t.
func (d Date) Before(t time.Time) bool {
	return d.Time.Before(t)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Full RFC 3339
// timestamps are accepted and truncated to their calendar day, since TOML
// decoders hand over native dates in that form.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, string(b))
		if tsErr != nil {
			return err
		}
		parsed = New(ts.Year(), ts.Month(), ts.Day())
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler, overriding the embedded time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Unquoted YAML dates resolve to
// timestamps, so the raw scalar value is parsed instead.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}
