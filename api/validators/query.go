package validators

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
)

const (
	maxPrefixedKeys  = 8
	maxPrefixedKey   = 32
	maxPrefixedValue = 64
)

// ParseQueryInt reads an integer query parameter bounded by [min, max].
// An absent parameter yields defaultVal.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePathID parses a positive integer identifier from a route parameter.
func ParsePathID(raw, field string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// QueryPrefixed collects parameters named <prefix><key> into a map keyed by
// <key>, e.g. option.edition=deluxe. Only the first value of a repeated key
// counts. Blank keys are skipped.
func QueryPrefixed(r *http.Request, prefix string) (map[string]string, error) {
	query := r.URL.Query()
	names := make([]string, 0, len(query))
	for name := range query {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := map[string]string{}
	for _, name := range names {
		key := SanitizeString(strings.TrimPrefix(name, prefix), 0)
		if key == "" {
			continue
		}
		value := SanitizeString(query[name][0], 0)
		if len(key) > maxPrefixedKey || len(value) > maxPrefixedValue {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter too long").
				WithDetails(map[string]any{"field": name})
		}
		out[key] = value
	}
	if len(out) > maxPrefixedKeys {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many query parameters").
			WithDetails(map[string]any{"prefix": prefix, "max": maxPrefixedKeys})
	}
	return out, nil
}
