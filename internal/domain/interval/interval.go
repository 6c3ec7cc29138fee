// Package interval provides a calendar interval for recurring billing,
// expressed in the ISO 8601 duration style (P1D, P2W, P1M, P1Y).
package interval

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalid = errors.New("invalid interval")

var pattern = regexp.MustCompile(`^P(\d+)(D|W|M|Y)$`)

type Unit string

const (
	Day   Unit = "D"
	Week  Unit = "W"
	Month Unit = "M"
	Year  Unit = "Y"
)

type Interval struct {
	Count int
	Unit  Unit
}

func Parse(s string) (Interval, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count == 0 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Interval{Count: count, Unit: Unit(m[2])}, nil
}

func MustParse(s string) Interval {
	iv, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return iv
}

// AddTo advances t by the interval using calendar arithmetic, so P1M from
// Jan 31 normalizes the way time.AddDate does.
func (iv Interval) AddTo(t time.Time) time.Time {
	switch iv.Unit {
	case Day:
		return t.AddDate(0, 0, iv.Count)
	case Week:
		return t.AddDate(0, 0, 7*iv.Count)
	case Month:
		return t.AddDate(0, iv.Count, 0)
	case Year:
		return t.AddDate(iv.Count, 0, 0)
	}
	return t
}

func (iv Interval) IsZero() bool { return iv.Count == 0 }

func (iv Interval) String() string {
	return fmt.Sprintf("P%d%s", iv.Count, iv.Unit)
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(iv.String())
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}
