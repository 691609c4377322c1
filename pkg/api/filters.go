package api

import (
	"net/url"
	"strings"
)

// Filters holds entity-specific query filters keyed by the server's query
// parameter names. Empty values are omitted from the serialized query, so
// {a:"", b:"x"} and {b:"x"} produce the same request.
type Filters map[string]string

// Query serializes the non-empty filters into url.Values.
func (f Filters) Query() url.Values {
	q := url.Values{}
	for key, value := range f {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		q.Set(key, value)
	}
	return q
}

// Clone returns an independent copy so cached filter sets cannot be mutated
// behind the cache's back.
func (f Filters) Clone() Filters {
	if f == nil {
		return nil
	}
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Equal compares two filter sets ignoring empty values.
func (f Filters) Equal(other Filters) bool {
	return f.Query().Encode() == other.Query().Encode()
}

// ParseFilters rebuilds a filter set from url.Values, keeping only non-empty
// values. Round-tripping through Query reproduces the original non-empty set.
func ParseFilters(q url.Values) Filters {
	out := Filters{}
	for key, values := range q {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				out[key] = v
				break
			}
		}
	}
	return out
}
