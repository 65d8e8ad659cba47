package domain

import "strings"

// Band is one of the contest bands. The zero value is not a band.
type Band uint8

const (
	Band160M Band = iota + 1
	Band80M
	Band40M
	Band20M
	Band15M
	Band10M
	Band6M
	Band2M
	Band70CM
)

// Bands lists every contest band, lowest frequency first.
var Bands = []Band{
	Band160M,
	Band80M,
	Band40M,
	Band20M,
	Band15M,
	Band10M,
	Band6M,
	Band2M,
	Band70CM,
}

// String returns the band code as written in a log ("20M", "70CM").
func (b Band) String() string {
	switch b {
	case Band160M:
		return "160M"
	case Band80M:
		return "80M"
	case Band40M:
		return "40M"
	case Band20M:
		return "20M"
	case Band15M:
		return "15M"
	case Band10M:
		return "10M"
	case Band6M:
		return "6M"
	case Band2M:
		return "2M"
	case Band70CM:
		return "70CM"
	default:
		return "INVALID"
	}
}

// Valid reports whether b is one of the contest bands.
func (b Band) Valid() bool {
	return b >= Band160M && b <= Band70CM
}

// MarshalText encodes the band as its code.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// LookupBand resolves a literal band code such as "20M".
func LookupBand(code string) (Band, bool) {
	for _, b := range Bands {
		if b.String() == code {
			return b, true
		}
	}
	return 0, false
}

// frequencyRule maps a frequency prefix (MHz) to a band.
type frequencyRule struct {
	prefix string
	band   Band
}

// frequencyRules is checked in order; the first matching prefix wins.
// "42" must stay after the longer numeric prefixes.
var frequencyRules = []frequencyRule{
	{"1.", Band160M},
	{"3.", Band80M},
	{"7.", Band40M},
	{"14.", Band20M},
	{"21.", Band15M},
	{"28.", Band10M},
	{"29.", Band10M},
	{"50.", Band6M},
	{"51.", Band6M},
	{"52.", Band6M},
	{"53.", Band6M},
	{"54", Band6M},
	{"144.", Band2M},
	{"145.", Band2M},
	{"146.", Band2M},
	{"147.", Band2M},
	{"148.", Band2M},
	{"42", Band70CM},
}

// BandForFrequency resolves a frequency token by prefix.
func BandForFrequency(freq string) (Band, bool) {
	for _, rule := range frequencyRules {
		if strings.HasPrefix(freq, rule.prefix) {
			return rule.band, true
		}
	}
	return 0, false
}

// ResolveBand tries the frequency table first, then a literal band code.
func ResolveBand(token string) (Band, error) {
	if b, ok := BandForFrequency(token); ok {
		return b, nil
	}
	if b, ok := LookupBand(token); ok {
		return b, nil
	}
	return 0, newParseError(InvalidFrequency, "frequency", token, nil)
}
