// ABOUTME: Locale-agnostic date parsing for feed timestamps
// ABOUTME: Soft failures everywhere; an unparseable date is the zero time, never an error

package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	fractionalSecondsRe = regexp.MustCompile(`\.(\d+)`)
	timezoneSuffixRe    = regexp.MustCompile(`(\+|-)(\d\d):(\d\d)$`)
)

// ParseRFC3339Like parses the RFC3339 variant found in Atom and Dublin Core
// dates. The first 19 characters must form yyyy-MM-ddTHH:mm:ss (case
// insensitive); anything shorter yields the zero time. A fractional-seconds
// group anywhere in the string is normalized to milliseconds (one digit means
// tenths, two digits hundredths). A trailing +HH:MM/-HH:MM offset shifts the
// instant to UTC. The result is returned in local time.
func ParseRFC3339Like(text string) time.Time {
	if len(text) < 19 {
		return time.Time{}
	}

	t, err := time.Parse("2006-01-02T15:04:05", strings.ToUpper(text[:19]))
	if err != nil {
		return time.Time{}
	}

	if m := fractionalSecondsRe.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if len(digits) > 3 {
			digits = digits[:3]
		}
		if frac, err := strconv.Atoi(digits); err == nil {
			switch len(digits) {
			case 1:
				frac *= 100
			case 2:
				frac *= 10
			}
			t = t.Add(time.Duration(frac) * time.Millisecond)
		}
	}

	if m := timezoneSuffixRe.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		shift := hours*3600 + minutes*60
		// A positive offset means the timestamp is ahead of UTC, so
		// converting subtracts.
		if m[1] == "+" {
			shift = -shift
		}
		t = t.Add(time.Duration(shift) * time.Second)
	}

	return t.Local()
}

// ParseRFC822Like parses the RFC822-family dates RSS 2.0 uses for pubDate,
// tolerating the common generator bugs dateparse knows about. Returns the
// zero time when nothing matches.
func ParseRFC822Like(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(text)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
