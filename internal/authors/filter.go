package authors

import (
	"strings"

	"go.uber.org/zap"
)

// Filter decides whether a message author is included in a query
type Filter struct {
	names  map[string]struct{}
	logger *zap.Logger
}

// NewFilter creates an inclusion filter. An empty list admits everyone.
func NewFilter(names []string, logger *zap.Logger) *Filter {
	normalized := Normalize(names)
	set := make(map[string]struct{}, len(normalized))
	for _, n := range normalized {
		set[n] = struct{}{}
	}

	if len(set) > 0 && logger != nil {
		logger.Debug("Initialized author filter", zap.Strings("authors", normalized))
	}

	return &Filter{
		names:  set,
		logger: logger,
	}
}

// Allows reports whether a message by author passes the filter.
// Messages without an author only pass an empty filter.
func (f *Filter) Allows(author *string) bool {
	if len(f.names) == 0 {
		return true
	}
	if author == nil {
		return false
	}
	_, ok := f.names[strings.TrimSpace(*author)]
	return ok
}

// Normalize trims names, drops blanks and splits comma separated entries
func Normalize(names []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, raw := range names {
		for _, part := range strings.Split(raw, ",") {
			n := strings.TrimSpace(part)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
