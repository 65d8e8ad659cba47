package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	// Matches: "1200", "930", "12:00", "12:00:30", each with an optional "Z"/"UTC" suffix
	timeOfDayRegex = regexp.MustCompile(`(?i)^(\d{1,2}):?(\d{2})(?::(\d{2}))?\s*(?:Z|UTC)?$`)

	// "932pm" -> "9:32 pm" so the natural language rules pick it up
	compactClockRegex = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

	// Full date-time layouts, tried in order. Values without an offset are UTC.
	dateTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T1504Z",
		"2006-01-02 1504Z",
		"2006-01-02 1504",
		"20060102T1504Z",
		"20060102T1504",
		"2006-01-02",
	}
)

// TimestampParser turns a logged time into a Timestamp. It accepts a bare time of
// day (the date comes from the clock), common full date-time layouts, and falls back
// to natural language ("today 5pm", "yesterday at 17:30").
type TimestampParser struct {
	now func() time.Time
	nl  *when.Parser
}

// NewTimestampParser creates a parser. now defaults to time.Now.
func NewTimestampParser(now func() time.Time) *TimestampParser {
	if now == nil {
		now = time.Now
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &TimestampParser{now: now, nl: w}
}

// Parse parses raw or fails with an InvalidTimestamp ParseError.
func (p *TimestampParser) Parse(raw string) (Timestamp, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Timestamp{}, newParseError(InvalidTimestamp, "time", raw, errors.New("empty"))
	}

	if ts, ok := p.parseTimeOfDay(s); ok {
		return ts, nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}

	return p.parseNatural(raw, s)
}

// parseNatural runs the natural language rules. The matched text must cover the
// whole value, and fields no rule sets are taken from the clock truncated to the minute.
func (p *TimestampParser) parseNatural(raw, s string) (Timestamp, error) {
	normalized := compactClockRegex.ReplaceAllString(strings.ToLower(s), "$1:$2 $3")
	base := p.now().UTC().Truncate(time.Minute)

	r, err := p.nl.Parse(normalized, base)
	if err != nil {
		return Timestamp{}, newParseError(InvalidTimestamp, "time", raw, err)
	}
	if r == nil {
		return Timestamp{}, newParseError(InvalidTimestamp, "time", raw, nil)
	}
	if r.Index != 0 || len(r.Text) != len(normalized) {
		return Timestamp{}, newParseError(InvalidTimestamp, "time", raw,
			fmt.Errorf("unrecognized text around %q", r.Text))
	}

	return Timestamp{Time: r.Time}, nil
}

// parseTimeOfDay handles "HHMM"-style values on today's UTC date.
func (p *TimestampParser) parseTimeOfDay(s string) (Timestamp, bool) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Timestamp{}, false
	}

	today := p.now().UTC()
	t := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, second, 0, time.UTC)
	return Timestamp{Time: t, DateImplied: true}, true
}
