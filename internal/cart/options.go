package cart

import (
	"encoding/json"
	"sort"
)

// Options are the variant attributes (color, size, ...) that distinguish
// line items for the same product.
type Options map[string]string

// Key returns an order-independent, unambiguous encoding of the options:
// the JSON array of [name, value] pairs sorted by name. Empty and nil
// options share the empty key.
func (o Options) Key() string {
	if len(o) == 0 {
		return ""
	}
	pairs := make([][2]string, 0, len(o))
	for k, v := range o {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	// marshalling strings cannot fail
	raw, _ := json.Marshal(pairs)
	return string(raw)
}

// Equal reports whether both option sets identify the same variant.
func (o Options) Equal(other Options) bool {
	return o.Key() == other.Key()
}

func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// MarshalJSON renders nil options as an empty object.
func (o Options) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(o))
}
