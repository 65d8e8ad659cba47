package domain

import (
	"fmt"
	"strings"
	"time"
)

// FieldCount is the number of fields in a log line:
// frequency-or-band, callsign, exchange, time, mode.
const FieldCount = 5

// LineParser parses raw log lines. The zero value is not usable; use NewLineParser.
type LineParser struct {
	delimiter  string
	timestamps *TimestampParser
}

// NewLineParser creates a parser splitting on delimiter ("" = any run of whitespace).
// now is the clock used to date bare times of day; nil means time.Now.
func NewLineParser(delimiter string, now func() time.Time) *LineParser {
	return &LineParser{
		delimiter:  delimiter,
		timestamps: NewTimestampParser(now),
	}
}

// ParseLine parses a single raw line with the given delimiter ("" = whitespace).
func ParseLine(raw, delimiter string) (LogLine, error) {
	return NewLineParser(delimiter, nil).Parse(raw)
}

// Parse converts a raw line into a LogLine. Any problem aborts with a *ParseError;
// there is no partial result.
func (p *LineParser) Parse(raw string) (LogLine, error) {
	fields := p.split(raw)
	if len(fields) != FieldCount {
		return LogLine{}, newParseError(InvalidFormat, "line", raw,
			fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields)))
	}
	rawBand, callsign, rawExchange, rawTime, rawMode := fields[0], fields[1], fields[2], fields[3], fields[4]

	if callsign == "" {
		return LogLine{}, newParseError(InvalidFormat, "callsign", raw, fmt.Errorf("empty callsign"))
	}

	exchange, err := DecodeExchange(rawExchange)
	if err != nil {
		return LogLine{}, err
	}

	band, err := ResolveBand(rawBand)
	if err != nil {
		return LogLine{}, err
	}

	mode, err := ClassifyMode(rawMode)
	if err != nil {
		return LogLine{}, err
	}

	ts, err := p.timestamps.Parse(rawTime)
	if err != nil {
		return LogLine{}, err
	}

	return NewLogLine(band, callsign, exchange, ts, mode)
}

func (p *LineParser) split(raw string) []string {
	if p.delimiter == "" {
		return strings.Fields(raw)
	}
	return strings.Split(raw, p.delimiter)
}
