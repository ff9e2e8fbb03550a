package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// moviePattern tries to extract a title and year from a bare filename
// (extension already stripped). Patterns are independent alternatives,
// evaluated in order.
type moviePattern func(name string) (*Movie, bool)

var (
	// "Title (2010) ..." - parenthesized year, optionally bracketed
	movieYearParens = regexp.MustCompile(`^(.+?)[. _]*[(\[]((?:19|20)\d{2})[)\]]`)

	// "Title.2010.1080p..." / "Title 2010 1080p..." - delimited year followed
	// by more tokens or end of name
	movieYearDelim = regexp.MustCompile(`^(.+?)[. _-]+((?:19|20)\d{2})(?:[. _-]|$)`)

	// "Title - 2010" - dash-separated year at end of name
	movieYearDash = regexp.MustCompile(`^(.+?)\s+-\s+((?:19|20)\d{2})$`)
)

// moviePatterns is the ordered movie pattern list; first match wins.
// All patterns require a year: a name without one is not a movie release,
// it is noise (readme.mp4, sample files).
var moviePatterns = []moviePattern{
	movieFromRegexp(movieYearParens),
	movieFromRegexp(movieYearDash),
	movieFromRegexp(movieYearDelim),
}

func movieFromRegexp(re *regexp.Regexp) moviePattern {
	return func(name string) (*Movie, bool) {
		matches := re.FindStringSubmatch(name)
		if len(matches) != 3 {
			return nil, false
		}
		title := cleanName(matches[1])
		if title == "" {
			return nil, false
		}
		year, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, false
		}
		return &Movie{Title: title, Year: year}, true
	}
}

// yearToken matches a plausible release year anywhere in a name; used by the
// token scanner to avoid misreading years as quality tokens.
var yearToken = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// containsAny reports whether s contains any of the given substrings,
// case-insensitively.
func containsAny(s string, substrs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
