package parse

import (
	"regexp"
	"strconv"
)

// episodePattern tries to extract a series name and season/episode numbers
// from a bare filename. Patterns are independent alternatives, evaluated
// in order.
type episodePattern func(name string) (*Episode, bool)

var (
	// "Show.Name.S02E05..." - the standard scene marker
	episodeSxxExx = regexp.MustCompile(`(?i)^(.+?)[. _-]+S(\d{1,3})[. _-]?E(\d{1,3})\b`)

	// "Show.Name.2x05..." - alternate NxM marker
	episodeNxM = regexp.MustCompile(`^(.+?)[. _-]+(\d{1,2})x(\d{1,3})\b`)

	// "Show Name Season 2 Episode 5" - spelled out
	episodeSpelled = regexp.MustCompile(`(?i)^(.+?)[. _-]+Season[. _-]*(\d{1,3})[. _-]+Episode[. _-]*(\d{1,3})\b`)
)

// episodePatterns is the ordered episode pattern list; first match wins.
var episodePatterns = []episodePattern{
	episodeFromRegexp(episodeSxxExx),
	episodeFromRegexp(episodeSpelled),
	episodeFromRegexp(episodeNxM),
}

func episodeFromRegexp(re *regexp.Regexp) episodePattern {
	return func(name string) (*Episode, bool) {
		matches := re.FindStringSubmatch(name)
		if len(matches) != 4 {
			return nil, false
		}
		series := cleanName(matches[1])
		if series == "" {
			return nil, false
		}
		season, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, false
		}
		episode, err := strconv.Atoi(matches[3])
		if err != nil {
			return nil, false
		}
		return &Episode{SeriesName: series, Season: season, Episode: episode}, true
	}
}
