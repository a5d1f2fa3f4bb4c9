package formdata

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Bool accepts true/false, on/off, 1/0 and yes/no from forms and JSON.
type Bool bool

func (b *Bool) UnmarshalText(text []byte) error {
	v, err := ParseBool(string(text))
	if err != nil {
		return err
	}
	*b = Bool(v)
	return nil
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*b = Bool(v)
		return nil
	case float64:
		*b = v != 0
		return nil
	case string:
		return b.UnmarshalText([]byte(v))
	case nil:
		*b = false
		return nil
	}
	return fmt.Errorf("invalid boolean %s", string(data))
}

func (b *Bool) Ptr() *bool {
	if b == nil {
		return nil
	}
	v := bool(*b)
	return &v
}

func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true, nil
	case "false", "off", "0", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 timestamps, datetime-local values and plain dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Date is a time.Time that decodes with ParseTime.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		d.Time = time.Time{}
		return nil
	}
	return d.UnmarshalText([]byte(*s))
}

// TimePtr returns nil for a missing or zero date.
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
