package domain

import (
	"errors"
	"testing"
)

func TestResolveBand(t *testing.T) {
	tests := []struct {
		token string
		want  Band
	}{
		{"1.840", Band160M},
		{"3.573", Band80M},
		{"7.050", Band40M},
		{"14.250", Band20M},
		{"21.300", Band15M},
		{"28.400", Band10M},
		{"29.600", Band10M},
		{"50.125", Band6M},
		{"51.000", Band6M},
		{"52.525", Band6M},
		{"53.000", Band6M},
		{"54", Band6M},
		{"54.000", Band6M},
		{"144.200", Band2M},
		{"145.500", Band2M},
		{"146.520", Band2M},
		{"147.000", Band2M},
		{"148.000", Band2M},
		{"42", Band70CM},
		{"420.000", Band70CM},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ResolveBand(tt.token)
			if err != nil {
				t.Fatalf("ResolveBand(%q) error = %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ResolveBand(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}

	// no rule covers "44"
	if _, err := ResolveBand("446.000"); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("ResolveBand(446.000) error = %v, want InvalidFrequency", err)
	}
}

func TestResolveBandLiteralCodes(t *testing.T) {
	for _, b := range Bands {
		t.Run(b.String(), func(t *testing.T) {
			got, err := ResolveBand(b.String())
			if err != nil {
				t.Fatalf("ResolveBand(%q) error = %v", b.String(), err)
			}
			if got != b {
				t.Errorf("ResolveBand(%q) = %v, want %v", b.String(), got, b)
			}
		})
	}
}

func TestResolveBandPriority(t *testing.T) {
	// "160M" starts with "1" but not "1.", so it falls through to the literal code.
	if got, _ := ResolveBand("160M"); got != Band160M {
		t.Errorf("ResolveBand(160M) = %v, want 160M", got)
	}
	// "2M" has no frequency prefix and resolves as a literal code.
	if got, _ := ResolveBand("2M"); got != Band2M {
		t.Errorf("ResolveBand(2M) = %v, want 2M", got)
	}
	// "42" is the last rule: "420.0" must not be caught by an earlier entry.
	if got, _ := ResolveBand("420.0"); got != Band70CM {
		t.Errorf("ResolveBand(420.0) = %v, want 70CM", got)
	}
	// "14.0" does not start with "1."
	if got, _ := ResolveBand("14.0"); got != Band20M {
		t.Errorf("ResolveBand(14.0) = %v, want 20M", got)
	}
}

func TestBandValid(t *testing.T) {
	var zero Band
	if zero.Valid() {
		t.Error("zero Band should not be valid")
	}
	if Band(42).Valid() {
		t.Error("Band(42) should not be valid")
	}
	for _, b := range Bands {
		if !b.Valid() {
			t.Errorf("%v should be valid", b)
		}
	}
}

func TestClassifyMode(t *testing.T) {
	seen := make(map[string]Mode)

	check := func(codes []string, want Mode) {
		for _, code := range codes {
			if prev, dup := seen[code]; dup {
				t.Errorf("code %q listed for both %v and %v", code, prev, want)
			}
			seen[code] = want

			got, err := ClassifyMode(code)
			if err != nil {
				t.Errorf("ClassifyMode(%q) error = %v", code, err)
				continue
			}
			if got != want {
				t.Errorf("ClassifyMode(%q) = %v, want %v", code, got, want)
			}
		}
	}

	check(CWModes, ModeCW)
	check(PhoneModes, ModePhone)
	check(DigitalModes, ModeDigital)

	invalid := []string{
		"", "cw", "ssb", "OLIVIA", "PHONE", "DIGITAL",
		// common codes outside the contest tables
		"FT8", "FT4", "RTTY", "PSK31", "AM", "USB", "LSB", "PH", "DG", "DI",
	}
	for _, code := range invalid {
		t.Run("invalid "+code, func(t *testing.T) {
			got, err := ClassifyMode(code)
			if !errors.Is(err, ErrInvalidMode) {
				t.Errorf("ClassifyMode(%q) = %v, %v, want InvalidMode", code, got, err)
			}
		})
	}
}

func TestModePoints(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{ModeCW, 2},
		{ModeDigital, 2},
		{ModePhone, 1},
		{Mode(0), 0},
	}

	for _, tt := range tests {
		if got := tt.mode.Points(); got != tt.want {
			t.Errorf("%v.Points() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestLookupCategory(t *testing.T) {
	tests := []struct {
		letter string
		want   Category
	}{
		{"H", CategoryHome},
		{"I", CategoryIndoor},
		{"O", CategoryOutdoor},
		{"M", CategoryMobile},
	}

	for _, tt := range tests {
		got, err := LookupCategory(tt.letter)
		if err != nil || got != tt.want {
			t.Errorf("LookupCategory(%q) = %v, %v; want %v", tt.letter, got, err, tt.want)
		}
	}

	for _, letter := range []string{"X", "h", "", "HO"} {
		if _, err := LookupCategory(letter); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("LookupCategory(%q) error = %v, want InvalidCategory", letter, err)
		}
	}
}
