// Package query turns ad-hoc client-supplied parameters into bounded,
// deterministic listing options. Every invalid value degrades to a
// configured default instead of erroring; that defaulting is deliberate
// API policy, not leniency by accident.
package query

import (
	"strconv"
	"strings"
)

// Kind selects how a filter field matches.
type Kind int

const (
	// Text matches by case-insensitive substring.
	Text Kind = iota
	// Exact matches by equality.
	Exact
	// Bool parses the literals "true"/"false"; anything else means no filter.
	Bool
)

// Field declares one allowed scalar filter: the query parameter it is
// read from and the matching behavior.
type Field struct {
	Param string
	Kind  Kind
}

// RangeField declares a numeric range filter with independent optional
// bounds. A bound applies only when present and parseable.
type RangeField struct {
	Name     string
	MinParam string
	MaxParam string
}

// Config is the per-entity allow-list and defaulting policy.
type Config struct {
	Fields       []Field
	Ranges       []RangeField
	SortFields   []string
	DefaultSort  string
	DefaultOrder string // "asc" or "desc"
	DefaultLimit int
}

// Bound is one applied range endpoint.
type Bound struct {
	Name  string
	Value float64
}

// Filter is the normalized outcome of parameter parsing.
type Filter struct {
	Text  map[string]string
	Exact map[string]string
	Bool  map[string]bool
	Min   []Bound
	Max   []Bound
}

// Empty reports whether no filter was requested.
func (f Filter) Empty() bool {
	return len(f.Text) == 0 && len(f.Exact) == 0 && len(f.Bool) == 0 &&
		len(f.Min) == 0 && len(f.Max) == 0
}

// Options is a validated, defaulted listing request.
type Options struct {
	Filter Filter
	SortBy string
	Order  string
	Page   int
	Limit  int
}

// Offset is the skip count for the requested page.
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Build normalizes raw query parameters against the config. It is pure
// and never fails: unknown sort fields fall back to the default sort,
// bad directions to the default order, bad page/limit to their defaults,
// unparseable bounds are dropped.
func (c Config) Build(params map[string]string) Options {
	f := Filter{
		Text:  map[string]string{},
		Exact: map[string]string{},
		Bool:  map[string]bool{},
	}

	for _, field := range c.Fields {
		raw, ok := params[field.Param]
		if !ok || raw == "" {
			continue
		}
		switch field.Kind {
		case Text:
			f.Text[field.Param] = raw
		case Exact:
			f.Exact[field.Param] = raw
		case Bool:
			switch raw {
			case "true":
				f.Bool[field.Param] = true
			case "false":
				f.Bool[field.Param] = false
			}
		}
	}

	for _, r := range c.Ranges {
		if v, ok := parseBound(params[r.MinParam]); ok {
			f.Min = append(f.Min, Bound{Name: r.Name, Value: v})
		}
		if v, ok := parseBound(params[r.MaxParam]); ok {
			f.Max = append(f.Max, Bound{Name: r.Name, Value: v})
		}
	}

	return Options{
		Filter: f,
		SortBy: c.sortField(params["sortBy"]),
		Order:  c.order(params),
		Page:   positiveInt(params["page"], 1),
		Limit:  positiveInt(params["limit"], c.DefaultLimit),
	}
}

func (c Config) sortField(requested string) string {
	for _, allowed := range c.SortFields {
		if requested == allowed {
			return requested
		}
	}
	return c.DefaultSort
}

// order accepts either parameter spelling; authors use "order", books
// use "sortOrder".
func (c Config) order(params map[string]string) string {
	raw := params["order"]
	if raw == "" {
		raw = params["sortOrder"]
	}
	switch strings.ToLower(raw) {
	case "asc", "desc":
		return strings.ToLower(raw)
	}
	return c.DefaultOrder
}

func parseBound(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
