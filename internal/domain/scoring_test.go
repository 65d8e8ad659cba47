package domain

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, lines ...string) []LogLine {
	t.Helper()
	parser := NewLineParser("", fixedClock)
	entries := make([]LogLine, 0, len(lines))
	for _, line := range lines {
		entry, err := parser.Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestScoreLinesScenarios(t *testing.T) {
	lines := []string{
		"14.250 W1ABC 1HTEST 1200Z SSB",
		"7.050 W1ABC 1HTEST 1210Z CW",
	}

	tests := []struct {
		name  string
		power int
		want  float64
	}{
		{name: "qrp", power: 5, want: 12},
		{name: "at threshold", power: 10, want: 12},
		{name: "just above threshold", power: 11, want: 6},
		{name: "high power", power: 100, want: 6},
	}

	entries := mustParse(t, lines...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreLines(entries, tt.power); got != tt.want {
				t.Errorf("ScoreLines(power=%d) = %v, want %v", tt.power, got, tt.want)
			}
		})
	}
}

func TestTallyBreakdown(t *testing.T) {
	entries := mustParse(t,
		"14.250 W1ABC 1HTEST 1200Z SSB",
		"7.050 W1ABC 1HTEST 1210Z CW",
	)

	got := Tally(entries, 5)
	want := Breakdown{
		Power: 5,
		WorkedBandModes: []BandMode{
			{Band: Band40M, Mode: ModeCW},
			{Band: Band20M, Mode: ModePhone},
		},
		CWDigitalQSOs:      []QSO{{Band: Band40M, Mode: ModeCW, Callsign: "W1ABC"}},
		PhoneQSOs:          []QSO{{Band: Band20M, Mode: ModePhone, Callsign: "W1ABC"}},
		QSOPoints:          3,
		PowerMultiplier:    2.0,
		BandModeMultiplier: 2,
		Score:              12,
		Entries:            2,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tally() mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreLinesEmpty(t *testing.T) {
	if got := ScoreLines(nil, 5); got != 0 {
		t.Errorf("ScoreLines(nil) = %v, want 0", got)
	}

	b := Tally([]LogLine{}, 100)
	if b.BandModeMultiplier != 0 || b.QSOPoints != 0 || b.Score != 0 {
		t.Errorf("Tally(empty) = %+v, want zero counts", b)
	}
}

func TestScoreLinesDuplicates(t *testing.T) {
	a := mustParse(t, "14.250 W1ABC 1HTEST 1200Z SSB")
	aa := mustParse(t,
		"14.250 W1ABC 1HTEST 1200Z SSB",
		"14.250 W1ABC 1HTEST 1200Z SSB",
	)

	if ScoreLines(a, 5) != ScoreLines(aa, 5) {
		t.Errorf("duplicates changed the score: %v vs %v", ScoreLines(a, 5), ScoreLines(aa, 5))
	}

	// same station, band and mode at another time and frequency is still a dupe
	dupe := mustParse(t,
		"14.250 W1ABC 1HTEST 1200Z SSB",
		"14.300 W1ABC 2ITEST 1900Z FM",
	)
	if got := ScoreLines(dupe, 100); got != 1 {
		t.Errorf("ScoreLines(dupe) = %v, want 1", got)
	}
}

func TestScoreLinesBandModeMultiplier(t *testing.T) {
	// one band worked on two modes counts twice
	entries := mustParse(t,
		"14.250 W1ABC 1HEMA 1200Z SSB",
		"14.050 K2XYZ 1HEMA 1205Z CW",
		"14.074 N3DEF 1HEMA 1210Z JS8",
	)

	b := Tally(entries, 100)
	if b.BandModeMultiplier != 3 {
		t.Errorf("BandModeMultiplier = %d, want 3", b.BandModeMultiplier)
	}
	// (2 CW/digital * 2 + 1 phone) * 1.0 * 3
	if b.Score != 15 {
		t.Errorf("Score = %v, want 15", b.Score)
	}
}

func TestScoreLinesOrderIndependent(t *testing.T) {
	entries := mustParse(t,
		"14.250 W1ABC 1HEMA 1200Z SSB",
		"14.050 K2XYZ 2OWMA 1205Z CW",
		"7.074 N3DEF 1IWPA 1210Z JS8",
		"146.520 W1ABC 1MEMA 1215Z FM",
		"14.250 W1ABC 1HEMA 1230Z SSB",
		"42 KD9ZZZ 3OIL 1300Z FM",
	)
	want := ScoreLines(entries, 5)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]LogLine(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		if got := ScoreLines(shuffled, 5); got != want {
			t.Fatalf("ScoreLines(shuffled) = %v, want %v", got, want)
		}
		if diff := cmp.Diff(Tally(entries, 5), Tally(shuffled, 5)); diff != "" {
			t.Fatalf("Tally(shuffled) mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestPowerMultiplier(t *testing.T) {
	if QRPThreshold() != 10 {
		t.Fatalf("QRPThreshold() = %d, want 10", QRPThreshold())
	}

	tests := []struct {
		power int
		want  float64
	}{
		{0, 2.0},
		{1, 2.0},
		{5, 2.0},
		{10, 2.0},
		{11, 1.0},
		{150, 1.0},
	}

	for _, tt := range tests {
		if got := PowerMultiplier(tt.power); got != tt.want {
			t.Errorf("PowerMultiplier(%d) = %v, want %v", tt.power, got, tt.want)
		}
	}
}
