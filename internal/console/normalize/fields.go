package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/goutil/mathutil"
)

var jsonNull = []byte("null")

// FlexFloat decodes JSON numbers that some backend endpoints serialize as
// strings ("1500.50" for a fee amount, 1500.5 for the same field elsewhere).
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*f = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*f = 0
			return nil
		}
		value, err := mathutil.ToFloat(s)
		if err != nil {
			return fmt.Errorf("value %q is not numeric: %w", s, err)
		}
		*f = FlexFloat(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*f = FlexFloat(value)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

// FlexInt is FlexFloat's integer counterpart, for quantities and counters.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*i = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*i = 0
			return nil
		}
		value, err := mathutil.ToInt(s)
		if err != nil {
			return fmt.Errorf("value %q is not numeric: %w", s, err)
		}
		*i = FlexInt(value)
		return nil
	}
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*i = FlexInt(value)
	return nil
}

func (i FlexInt) Int() int { return int(i) }

// DisplayLabel turns a backend enum value into its display form:
// "PAID" becomes "Paid", "PARTIALLY_PAID" becomes "Partially Paid".
// Values that are not screaming-snake pass through unchanged.
func DisplayLabel(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.ToUpper(raw) != raw {
		return raw
	}
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		word = strings.ToLower(word)
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// timestampLayouts are tried in order; the backend is not consistent about
// whether timestamps carry a timezone or sub-second precision.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp tolerates the backend's assorted timestamp serializations and
// derives the date-only and time-only strings list views render.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			ts.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(ts.Format(time.RFC3339))
}

// DateOnly returns the calendar date, or "" for a zero timestamp.
func (ts Timestamp) DateOnly() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.DateOnly)
}

// TimeOnly returns the wall-clock time, or "" for a zero timestamp.
func (ts Timestamp) TimeOnly() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("15:04")
}
