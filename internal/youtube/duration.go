package youtube

import (
	"regexp"
	"strings"
)

var durationRE = regexp.MustCompile(
	`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`,
)

// ParseDuration converts an ISO-8601 duration like PT1M32S into seconds.
// Returns false for empty or unparseable input.
func ParseDuration(duration string) (int, bool) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, false
	}

	m := durationRE.FindStringSubmatch(duration)
	if m == nil {
		return 0, false
	}

	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	seconds := atoiOrZero(m[4])

	return days*86400 + hours*3600 + minutes*60 + seconds, true
}

func atoiOrZero(s string) int {
	n := 0
	for _, ch := range s {
		n = n*10 + int(ch-'0')
	}
	return n
}
