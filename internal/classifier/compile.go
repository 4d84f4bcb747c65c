package classifier

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/taxonomy"
)

// ErrInvalidPattern is returned when a category pattern is not a valid regular expression
var ErrInvalidPattern = errors.New("invalid marker pattern")

// pattern pairs a compiled matcher with its source text
type pattern struct {
	re     *regexp.Regexp
	source string
}

// compiledCategory is a category with its patterns compiled
type compiledCategory struct {
	name     string
	weight   float64
	patterns []pattern
}

// Compiled is the immutable, compiled form of a taxonomy. It is safe
// for concurrent use by any number of classifications.
type Compiled struct {
	categories []compiledCategory
}

// Compile validates cats and compiles every pattern case-insensitively
func Compile(cats []core.Category) (*Compiled, error) {
	if err := taxonomy.Validate(cats); err != nil {
		return nil, err
	}

	compiled := &Compiled{categories: make([]compiledCategory, 0, len(cats))}
	for _, c := range cats {
		cc := compiledCategory{
			name:     c.Name,
			weight:   c.Weight,
			patterns: make([]pattern, 0, len(c.Patterns)),
		}
		for _, p := range c.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("%w: category %s pattern %q: %v", ErrInvalidPattern, c.Name, p, err)
			}
			cc.patterns = append(cc.patterns, pattern{re: re, source: p})
		}
		compiled.categories = append(compiled.categories, cc)
	}
	return compiled, nil
}

// Categories returns the category names in declaration order
func (c *Compiled) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cc := range c.categories {
		names[i] = cc.name
	}
	return names
}

// PatternCount returns the total number of compiled patterns
func (c *Compiled) PatternCount() int {
	n := 0
	for _, cc := range c.categories {
		n += len(cc.patterns)
	}
	return n
}
