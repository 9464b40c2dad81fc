package weekkey

import (
	"errors"
	"strings"
	"time"
)

// Layout is the wire format for week keys: the ISO date of the Sunday
// that opens the week.
const Layout = "2006-01-02"

var ErrInvalid = errors.New("invalid_week_key")

// Normalize returns the week key for the week containing t, anchored on
// the preceding (or same) Sunday.
func Normalize(t time.Time) string {
	t = t.UTC()
	offset := int(t.Weekday())
	start := t.AddDate(0, 0, -offset)
	return start.Format(Layout)
}

// Upcoming returns the week key of the next Sunday on or after t. The
// roster view opens on the coming service, not the one already past.
func Upcoming(t time.Time) string {
	t = t.UTC()
	days := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, days).Format(Layout)
}

// Parse validates raw as an ISO date and normalizes it onto its week's
// Sunday. A mid-week date is accepted and snapped backward.
func Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return "", ErrInvalid
	}
	return Normalize(t), nil
}

// Range enumerates the week keys covering every Sunday between from and
// to inclusive, in ascending order. from and to may be mid-week dates.
func Range(from, to string) ([]string, error) {
	start, err := Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := Parse(to)
	if err != nil {
		return nil, err
	}

	startT, _ := time.Parse(Layout, start)
	endT, _ := time.Parse(Layout, end)
	if endT.Before(startT) {
		return nil, ErrInvalid
	}

	var keys []string
	for cur := startT; !cur.After(endT); cur = cur.AddDate(0, 0, 7) {
		keys = append(keys, cur.Format(Layout))
	}
	return keys, nil
}
