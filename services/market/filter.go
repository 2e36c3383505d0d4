package market

import (
	"fmt"
	"regexp"
	"strings"
)

var filterWhitespace = regexp.MustCompile(`\s+`)

// a filter value is active only when it is non-empty after trimming
// and not the case-insensitive "all" sentinel.
func activeValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "all") {
		return "", false
	}
	return v, true
}

// EncodeAttrs renders the active filters as marketplace query
// fragments, always in Backdrop, Model, Symbol order so that identical
// filter sets produce identical URLs (and identical cache keys).
// returns "" when nothing is active.
func EncodeAttrs(f Filter) string {
	attrs := []struct {
		name  string
		value string
	}{
		{"Backdrop", f.Backdrop},
		{"Model", f.Model},
		{"Symbol", f.Symbol},
	}

	var params []string
	for _, attr := range attrs {
		v, ok := activeValue(attr.value)
		if !ok {
			continue
		}
		encoded := filterWhitespace.ReplaceAllString(v, "+")
		params = append(params, fmt.Sprintf("attrs=%s___%s", attr.name, encoded))
	}
	return strings.Join(params, "&")
}
