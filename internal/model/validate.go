package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/tabi-shiori/shiori/internal/icon"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// TimeLayout is the layout of ScheduleEntry.Time
const TimeLayout = "15:04"

// Validate checks the invariants of the record and returns an AppError with
// code ErrCodeTripInvalid whose details list every violation found.
//
//   - days is non-empty, numbered from 1, contiguous and unique
//   - every schedule time is a valid HH:MM and times never decrease within a day
//   - every icon is registered
func (t *Trip) Validate() error {
	var v violations

	if strings.TrimSpace(t.Title) == "" {
		v.add("title is required")
	}
	v.icon("page.icon", t.Page.Icon)

	if len(t.Days) == 0 {
		v.add("days must not be empty")
	}
	for i, d := range t.Days {
		path := fmt.Sprintf("days[%d]", i)
		if d.Day != i+1 {
			v.add("%s.day is %d, want %d", path, d.Day, i+1)
		}
		v.icon(path+".icon", d.Icon)

		if d.Route != nil {
			if d.Route.Origin == "" {
				v.add("%s.route.origin is required", path)
			}
			if d.Route.Destination == "" {
				v.add("%s.route.destination is required", path)
			}
		}

		var prev time.Time
		for j, e := range d.Schedule {
			entryPath := fmt.Sprintf("%s.schedule[%d]", path, j)
			v.icon(entryPath+".icon", e.Icon)

			ts, err := ParseTime(e.Time)
			if err != nil {
				v.add("%s.time %q is not HH:MM", entryPath, e.Time)
				continue
			}
			if j > 0 && ts.Before(prev) {
				v.add("%s.time %s is earlier than the previous entry", entryPath, e.Time)
			}
			prev = ts
		}
	}

	for i, item := range t.Budget.Items {
		if item.Item == "" {
			v.add("budget.items[%d].item is required", i)
		}
	}

	if len(v) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeTripInvalid,
		fmt.Sprintf("trip %q has %d invalid field(s): %s", t.Title, len(v), strings.Join(v, "; "))).
		WithDetails([]string(v))
}

// ParseTime parses an "HH:MM" schedule time.
// Only the two-digit form is accepted so lexical order matches chronological order.
func ParseTime(s string) (time.Time, error) {
	if len(s) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return time.Parse(TimeLayout, s)
}

type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v *violations) icon(path string, n icon.Name) {
	if !n.Valid() {
		v.add("%s %q is not a known icon", path, n)
	}
}
