package promote

import (
	"fmt"
	"regexp"
	"strconv"
)

// RefParser extracts bracketed task references of the form [<prefix>-<digits>]
// from PR titles. Only the first match in a title counts.
type RefParser struct {
	prefix  string
	pattern *regexp.Regexp
}

// NewRefParser builds a parser for the given task prefix (e.g. "MD").
func NewRefParser(prefix string) *RefParser {
	return &RefParser{
		prefix:  prefix,
		pattern: regexp.MustCompile(`\[` + regexp.QuoteMeta(prefix) + `-(\d+)\]`),
	}
}

// Parse returns the task ID embedded in the title. A title without a
// reference is a normal, handled state, not an error.
func (p *RefParser) Parse(title string) (int, bool) {
	m := p.pattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// Rewrite replaces the first task reference in the title with a markdown
// link to the given URL. Titles without a reference come back unchanged.
func (p *RefParser) Rewrite(title, url string) string {
	loc := p.pattern.FindStringIndex(title)
	if loc == nil {
		return title
	}
	ref := title[loc[0]:loc[1]]
	return title[:loc[0]] + fmt.Sprintf("%s(%s)", ref, url) + title[loc[1]:]
}
