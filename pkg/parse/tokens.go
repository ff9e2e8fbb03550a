package parse

import (
	"regexp"
	"strings"
)

// groupRegex matches a trailing release group: "-GROUP" at the end of the
// name, excluding separators. The year regex guards against titles like
// "Movie-2010" being read as group "2010".
var groupRegex = regexp.MustCompile(`-([A-Za-z0-9]+)$`)

// scanTokens extracts quality tokens from a release name with a secondary
// scan over the whole name, independent of title/episode pattern positions.
func scanTokens(name string) Tokens {
	t := Tokens{
		Resolution: scanResolution(name),
		Quality:    scanQuality(name),
		Source:     scanSource(name),
		Audio:      scanAudio(name),
	}

	if matches := groupRegex.FindStringSubmatch(name); len(matches) == 2 {
		if !yearToken.MatchString(matches[1]) {
			t.Group = matches[1]
		}
	}

	return t
}

func scanResolution(name string) string {
	switch {
	case containsAny(name, "2160p", "4k", "uhd"):
		return "2160p"
	case containsAny(name, "1080p"):
		return "1080p"
	case containsAny(name, "720p"):
		return "720p"
	case containsAny(name, "480p"):
		return "480p"
	default:
		return ""
	}
}

func scanQuality(name string) string {
	switch {
	case containsAny(name, "remux"):
		return "remux"
	case containsAny(name, "proper"):
		return "proper"
	case containsAny(name, "repack", "rerip"):
		return "repack"
	case containsAny(name, "extended"):
		return "extended"
	default:
		return ""
	}
}

func scanSource(name string) string {
	switch {
	case containsAny(name, "bluray", "blu-ray", "bdrip", "brrip"):
		return "bluray"
	case containsAny(name, "web-dl", "webdl"):
		return "webdl"
	case containsAny(name, "webrip", "web-rip"):
		return "webrip"
	case containsAny(name, "hdtv"):
		return "hdtv"
	case containsAny(name, "dvdrip", "dvd"):
		return "dvd"
	default:
		return ""
	}
}

func scanAudio(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "atmos"):
		return "atmos"
	case strings.Contains(lower, "truehd"):
		return "truehd"
	case containsAny(name, "dts-hd", "dtshd"):
		return "dts-hd"
	case strings.Contains(lower, "dts"):
		return "dts"
	case containsAny(name, "ddp", "eac3", "dd+"):
		return "ddp"
	case containsAny(name, "ac3", "dd5"):
		return "ac3"
	case strings.Contains(lower, "aac"):
		return "aac"
	default:
		return ""
	}
}
