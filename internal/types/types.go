package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Calendar values -------------------------------------------------------------------

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date in canonical YYYY-MM-DD form.
type Date string

// ParseDate parses s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("types: invalid date %q: %w", s, err)
	}
	return Date(t.Format(dateLayout)), nil
}

// MustDate is ParseDate for literals known to be valid.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string { return string(d) }

func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

func (d Date) Validate() error {
	if _, err := d.Time(); err != nil {
		return fmt.Errorf("types: invalid date %q", string(d))
	}
	return nil
}

// After reports whether d is strictly later than other. Both must be canonical.
func (d Date) After(other Date) bool { return string(d) > string(other) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("types: date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange returns every date in [from, to] inclusive.
func DateRange(from, to Date) ([]Date, error) {
	start, err := from.Time()
	if err != nil {
		return nil, fmt.Errorf("types: invalid start date %q", string(from))
	}
	end, err := to.Time()
	if err != nil {
		return nil, fmt.Errorf("types: invalid end date %q", string(to))
	}
	if start.After(end) {
		return nil, fmt.Errorf("types: start date %s is after end date %s", from, to)
	}
	var out []Date
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		out = append(out, Date(cur.Format(dateLayout)))
	}
	return out, nil
}

// Timestamp is a local wall-clock time in canonical YYYY-MM-DDTHH:MM:SS form.
type Timestamp string

var timestampLayouts = []string{timestampLayout, "2006-01-02 15:04:05", "2006-01-02T15:04"}

// ParseTimestamp accepts the canonical layout and a couple of common variants.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t.Format(timestampLayout)), nil
		}
	}
	return "", fmt.Errorf("types: invalid timestamp %q", s)
}

func (ts Timestamp) String() string { return string(ts) }

func (ts Timestamp) Time() (time.Time, error) {
	return time.Parse(timestampLayout, string(ts))
}

// Date returns the calendar date part.
func (ts Timestamp) Date() Date {
	if len(ts) < len(dateLayout) {
		return ""
	}
	return Date(ts[:len(dateLayout)])
}

// Clock renders HH:MM.
func (ts Timestamp) Clock() string {
	t, err := ts.Time()
	if err != nil {
		return string(ts)
	}
	return t.Format("15:04")
}

func (ts Timestamp) Validate() error {
	if _, err := ts.Time(); err != nil {
		return fmt.Errorf("types: invalid timestamp %q", string(ts))
	}
	return nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("types: timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Interests -------------------------------------------------------------------------

type Interest string

const (
	InterestArt         Interest = "art"
	InterestCooking     Interest = "cooking"
	InterestComedy      Interest = "comedy"
	InterestDancing     Interest = "dancing"
	InterestFitness     Interest = "fitness"
	InterestGardening   Interest = "gardening"
	InterestHiking      Interest = "hiking"
	InterestMovies      Interest = "movies"
	InterestMusic       Interest = "music"
	InterestPhotography Interest = "photography"
	InterestReading     Interest = "reading"
	InterestSports      Interest = "sports"
	InterestTechnology  Interest = "technology"
	InterestTennis      Interest = "tennis"
	InterestTheatre     Interest = "theatre"
	InterestWriting     Interest = "writing"
)

var knownInterests = map[Interest]struct{}{
	InterestArt: {}, InterestCooking: {}, InterestComedy: {}, InterestDancing: {},
	InterestFitness: {}, InterestGardening: {}, InterestHiking: {}, InterestMovies: {},
	InterestMusic: {}, InterestPhotography: {}, InterestReading: {}, InterestSports: {},
	InterestTechnology: {}, InterestTennis: {}, InterestTheatre: {}, InterestWriting: {},
}

// AllInterests lists the closed enumeration in sorted order.
func AllInterests() []Interest {
	out := make([]Interest, 0, len(knownInterests))
	for i := range knownInterests {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

func (i Interest) Valid() bool {
	_, ok := knownInterests[i]
	return ok
}

func (i *Interest) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("types: interest must be a string: %w", err)
	}
	v := Interest(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return fmt.Errorf("types: unknown interest %q", s)
	}
	*i = v
	return nil
}

// InterestSet is an unordered set of interests.
type InterestSet map[Interest]struct{}

func NewInterestSet(items ...Interest) InterestSet {
	s := make(InterestSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s InterestSet) Add(items ...Interest) {
	for _, it := range items {
		s[it] = struct{}{}
	}
}

func (s InterestSet) Has(i Interest) bool {
	_, ok := s[i]
	return ok
}

// Intersect returns the members of items that are in s, sorted and de-duplicated.
func (s InterestSet) Intersect(items []Interest) []Interest {
	seen := make(map[Interest]struct{}, len(items))
	var out []Interest
	for _, it := range items {
		if !s.Has(it) {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// JoinInterests renders interests as "a, b, c".
func JoinInterests(items []Interest) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	return strings.Join(parts, ", ")
}
