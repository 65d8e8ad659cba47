package domain

import (
	"errors"
	"strconv"
	"time"
)

// StationExchange is what the worked station sent: class, category and location.
//
// Build it with NewStationExchange so that Class is always >= 1.
type StationExchange struct {
	Class    int      `json:"class" yaml:"class"`
	Category Category `json:"category" yaml:"category"`
	Location string   `json:"location" yaml:"location"`
}

// NewStationExchange validates and builds an exchange.
func NewStationExchange(class int, category Category, location string) (StationExchange, error) {
	if class < 1 {
		return StationExchange{}, newParseError(InvalidExchange, "class", strconv.Itoa(class),
			errors.New("class must be >= 1"))
	}
	if !category.Valid() {
		return StationExchange{}, newParseError(InvalidCategory, "category", category.String(), nil)
	}
	return StationExchange{Class: class, Category: category, Location: location}, nil
}

// DecodeExchange decodes an exchange blob such as "1HTEST".
// Character 0 is the class, character 1 the category letter and the rest the location.
func DecodeExchange(blob string) (StationExchange, error) {
	if len(blob) < 2 {
		return StationExchange{}, newParseError(InvalidExchange, "exchange", blob,
			errors.New("need at least class and category"))
	}

	class, err := strconv.Atoi(blob[:1])
	if err != nil {
		return StationExchange{}, newParseError(InvalidExchange, "class", blob[:1], err)
	}

	category, err := LookupCategory(blob[1:2])
	if err != nil {
		return StationExchange{}, err
	}

	return NewStationExchange(class, category, blob[2:])
}

// Timestamp is the logged time of a contact.
type Timestamp struct {
	Time time.Time `json:"time" yaml:"time"`
	// DateImplied is set when the log only carried a time of day and the date
	// was filled in from the clock.
	DateImplied bool `json:"date_implied,omitempty" yaml:"date_implied,omitempty"`
}

// LogLine is one parsed log entry. It is only built by NewLogLine (or the parser),
// so every field is populated and valid.
type LogLine struct {
	Band      Band            `json:"band" yaml:"band"`
	Callsign  string          `json:"callsign" yaml:"callsign"`
	Exchange  StationExchange `json:"exchange" yaml:"exchange"`
	Timestamp Timestamp       `json:"timestamp" yaml:"timestamp"`
	Mode      Mode            `json:"mode" yaml:"mode"`
}

// NewLogLine validates and builds a log entry.
func NewLogLine(band Band, callsign string, exchange StationExchange, ts Timestamp, mode Mode) (LogLine, error) {
	if !band.Valid() {
		return LogLine{}, newParseError(InvalidFrequency, "band", band.String(), nil)
	}
	if callsign == "" {
		return LogLine{}, newParseError(InvalidFormat, "callsign", callsign, errors.New("empty callsign"))
	}
	if exchange.Class < 1 {
		return LogLine{}, newParseError(InvalidExchange, "class", strconv.Itoa(exchange.Class), nil)
	}
	if !exchange.Category.Valid() {
		return LogLine{}, newParseError(InvalidCategory, "category", exchange.Category.String(), nil)
	}
	if !mode.Valid() {
		return LogLine{}, newParseError(InvalidMode, "mode", mode.String(), nil)
	}
	if ts.Time.IsZero() {
		return LogLine{}, newParseError(InvalidTimestamp, "time", "", errors.New("zero time"))
	}

	return LogLine{
		Band:      band,
		Callsign:  callsign,
		Exchange:  exchange,
		Timestamp: ts,
		Mode:      mode,
	}, nil
}

// BandMode is a worked band and mode pair, the unit of the band multiplier.
type BandMode struct {
	Band Band `json:"band" yaml:"band"`
	Mode Mode `json:"mode" yaml:"mode"`
}

// QSO identifies a contact for scoring: the same station on the same band
// and mode only counts once.
type QSO struct {
	Band     Band   `json:"band" yaml:"band"`
	Mode     Mode   `json:"mode" yaml:"mode"`
	Callsign string `json:"callsign" yaml:"callsign"`
}

func (l LogLine) BandMode() BandMode {
	return BandMode{Band: l.Band, Mode: l.Mode}
}

func (l LogLine) QSO() QSO {
	return QSO{Band: l.Band, Mode: l.Mode, Callsign: l.Callsign}
}
