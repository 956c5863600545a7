package nba

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrMissingFilter = errors.New("missing required filter")
)

// Params are the query parameters for one request.
type Params map[string]string

type Filter struct {
	Name    string
	Default string
}

// Endpoint describes one stats resource: its path and every filter it accepts
// together with the value sent when the caller leaves the filter alone.
// Its fields are unexported so a caller cannot change the defaults another
// caller gets.
type Endpoint struct {
	name     string
	filters  []Filter
	required []string
}

func (e Endpoint) Name() string { return e.name }

// Filters returns a copy of the declared filters in declaration order.
func (e Endpoint) Filters() []Filter { return slices.Clone(e.filters) }

func (e Endpoint) Required() []string { return slices.Clone(e.required) }

func (e Endpoint) HasFilter(name string) bool {
	for _, f := range e.filters {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Params layers overrides onto the endpoint defaults. Overrides must name a
// declared filter, and required filters must end up non-empty.
func (e Endpoint) Params(overrides Params) (Params, error) {
	for k := range overrides {
		if !e.HasFilter(k) {
			return nil, fmt.Errorf("%s: %w %q", e.name, ErrUnknownFilter, k)
		}
	}
	p := make(Params, len(e.filters))
	for _, f := range e.filters {
		p[f.Name] = f.Default
		if v, ok := overrides[f.Name]; ok {
			p[f.Name] = v
		}
	}
	for _, r := range e.required {
		if p[r] == "" {
			return nil, fmt.Errorf("%s: %w %q", e.name, ErrMissingFilter, r)
		}
	}
	return p, nil
}

// Encode renders params as a query string with keys in sorted order, so equal
// params always give the same url.
func (p Params) Encode() string {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v.Encode()
}
