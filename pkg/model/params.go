package model

import (
	"net/url"
	"sort"
)

// Params maps query parameter names to values. Null entries are never sent.
type Params map[string]Value

// Encode returns the percent-encoded query string, keys sorted. Spaces in
// values become '+'.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func (p Params) Values() url.Values {
	vs := url.Values{}
	for k, v := range p {
		if v.IsNull() {
			continue
		}
		vs.Set(k, v.String())
	}
	return vs
}

// Keys returns the names of the non-null entries, sorted.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if !v.IsNull() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ParamsFromValues converts a decoded query string; every value is kept as a
// string except integer-looking ones. Only the first value of a key is used.
func ParamsFromValues(vs url.Values) Params {
	p := Params{}
	for k := range vs {
		p[k] = Key(vs.Get(k))
	}
	return p
}
