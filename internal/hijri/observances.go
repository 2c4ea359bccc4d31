package hijri

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/config"
)

//go:embed observances.yaml
var defaultObservances []byte

// ErrInvalidObservance is returned when an observance table entry is malformed.
var ErrInvalidObservance = errors.New("invalid observance")

// ExactObservance names a single Hijri day, keyed "{day}-{month}".
type ExactObservance struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

// RangeObservance names every day from From to To (inclusive) of Month.
type RangeObservance struct {
	Month int    `yaml:"month"`
	From  int    `yaml:"from"`
	To    int    `yaml:"to"`
	Name  string `yaml:"name"`
}

type tableDocument struct {
	Exact  []ExactObservance `yaml:"exact"`
	Ranges []RangeObservance `yaml:"ranges"`
}

// Table is an immutable observance lookup table. It is safe for concurrent use.
type Table struct {
	exact  map[string]string
	ranges []RangeObservance
}

// Occurrence is a Gregorian date with the observances that fall on it.
type Occurrence struct {
	Date   time.Time `json:"date"`
	Hijri  Date      `json:"hijri"`
	Events []string  `json:"events"`
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the built-in observance table.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := ParseTable(bytes.NewReader(defaultObservances))
		if err != nil {
			panic(fmt.Sprintf("hijri: built-in observance table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewTable validates the given entries and builds a Table. Exact keys are
// normalized, so "01-1" and "1-1" refer to the same day.
func NewTable(exact []ExactObservance, ranges []RangeObservance) (*Table, error) {
	t := &Table{
		exact:  make(map[string]string, len(exact)),
		ranges: make([]RangeObservance, 0, len(ranges)),
	}

	for _, o := range exact {
		day, month, err := parseObservanceKey(o.Key)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(o.Name) == "" {
			return nil, fmt.Errorf("%w: key %q has no name", ErrInvalidObservance, o.Key)
		}
		key := observanceKey(day, month)
		if existing, ok := t.exact[key]; ok {
			return nil, fmt.Errorf("%w: key %q defined twice (%q and %q)", ErrInvalidObservance, key, existing, o.Name)
		}
		t.exact[key] = o.Name
	}

	for _, r := range ranges {
		if r.Month < 1 || r.Month > maxHijriMonth {
			return nil, fmt.Errorf("%w: range %q month %d not in [1, %d]", ErrInvalidObservance, r.Name, r.Month, maxHijriMonth)
		}
		if r.From < 1 || r.To > maxHijriDay || r.From > r.To {
			return nil, fmt.Errorf("%w: range %q days %d-%d", ErrInvalidObservance, r.Name, r.From, r.To)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: range in month %d has no name", ErrInvalidObservance, r.Month)
		}
		t.ranges = append(t.ranges, r)
	}

	return t, nil
}

// ParseTable reads an observance table from a YAML document.
func ParseTable(r io.Reader) (*Table, error) {
	return loadTable(config.Source(r))
}

// LoadTable reads an observance table from a YAML file.
func LoadTable(path string) (*Table, error) {
	t, err := loadTable(config.File(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load observances from %s: %w", path, err)
	}
	return t, nil
}

func loadTable(source config.YAMLOption) (*Table, error) {
	provider, err := config.NewYAML(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read observance table: %w", err)
	}

	var doc tableDocument
	if err := provider.Get(config.Root).Populate(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode observance table: %w", err)
	}
	return NewTable(doc.Exact, doc.Ranges)
}

// Lookup returns the observances of a Hijri date: the exact-day entry first,
// if any, followed by every matching range in table order. The result is a
// new slice on each call and is empty, not nil, when nothing matches.
func (t *Table) Lookup(d Date) []string {
	events := []string{}
	if name, ok := t.exact[d.Key()]; ok {
		events = append(events, name)
	}
	for _, r := range t.ranges {
		if d.Month == r.Month && d.Day >= r.From && d.Day <= r.To {
			events = append(events, r.Name)
		}
	}
	return events
}

// EventsForDate converts the calendar date of t to Hijri and looks it up.
func (t *Table) EventsForDate(tm time.Time) []string {
	return t.Lookup(GregorianToHijri(tm))
}

// Upcoming returns the dates in [from, from+days) that carry at least one
// observance, in chronological order.
func (t *Table) Upcoming(from time.Time, days int) []Occurrence {
	var out []Occurrence
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		h := GregorianToHijri(day)
		if events := t.Lookup(h); len(events) > 0 {
			out = append(out, Occurrence{Date: day, Hijri: h, Events: events})
		}
	}
	return out
}

// MajorEventsForDate looks t up in the built-in observance table.
func MajorEventsForDate(t time.Time) []string {
	return DefaultTable().EventsForDate(t)
}

func observanceKey(day, month int) string {
	return strconv.Itoa(day) + "-" + strconv.Itoa(month)
}

func parseObservanceKey(key string) (day, month int, err error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: key %q (expected day-month)", ErrInvalidObservance, key)
	}
	day, dayErr := strconv.Atoi(parts[0])
	month, monthErr := strconv.Atoi(parts[1])
	if dayErr != nil || monthErr != nil {
		return 0, 0, fmt.Errorf("%w: key %q (expected day-month)", ErrInvalidObservance, key)
	}
	if month < 1 || month > maxHijriMonth || day < 1 || day > maxHijriDay {
		return 0, 0, fmt.Errorf("%w: key %q out of range", ErrInvalidObservance, key)
	}
	return day, month, nil
}
