package domain

// Mode is the signal type of a contact.
type Mode uint8

const (
	ModeCW Mode = iota + 1
	ModePhone
	ModeDigital
)

// Raw mode codes accepted in a log, per mode. The three sets are disjoint.
var (
	CWModes      = []string{"CW"}
	PhoneModes   = []string{"SSB", "FM"}
	DigitalModes = []string{"JS8"}
)

func (m Mode) String() string {
	switch m {
	case ModeCW:
		return "CW"
	case ModePhone:
		return "PHONE"
	case ModeDigital:
		return "DIGITAL"
	default:
		return "INVALID"
	}
}

// Valid reports whether m is one of the three modes.
func (m Mode) Valid() bool {
	return m >= ModeCW && m <= ModeDigital
}

// MarshalText encodes the mode as its name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Points is the QSO credit for a contact made in this mode.
func (m Mode) Points() int {
	switch m {
	case ModeCW, ModeDigital:
		return 2
	case ModePhone:
		return 1
	default:
		return 0
	}
}

// ClassifyMode maps a raw mode code to its Mode.
func ClassifyMode(raw string) (Mode, error) {
	switch {
	case contains(CWModes, raw):
		return ModeCW, nil
	case contains(DigitalModes, raw):
		return ModeDigital, nil
	case contains(PhoneModes, raw):
		return ModePhone, nil
	}
	return 0, newParseError(InvalidMode, "mode", raw, nil)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
