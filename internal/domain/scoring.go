package domain

import (
	"sort"
)

const (
	// QRP power thresholds (watts) per mode
	QRPThresholdCW      = 5
	QRPThresholdDigital = 5
	QRPThresholdPhone   = 10

	// Power multipliers
	PowerMultiplierQRP  = 2.0
	PowerMultiplierHigh = 1.0
)

// Breakdown holds every intermediate value of a score computation.
type Breakdown struct {
	Power              int        // declared output power (watts)
	WorkedBandModes    []BandMode // distinct band/mode pairs, sorted
	CWDigitalQSOs      []QSO      // deduplicated CW and digital contacts, sorted
	PhoneQSOs          []QSO      // deduplicated phone contacts, sorted
	QSOPoints          int        // CW/digital * 2 + phone
	PowerMultiplier    float64
	BandModeMultiplier int // number of distinct band/mode pairs
	Score              float64
	Entries            int // entries scored, duplicates included
}

// QRPThreshold is the single power threshold applied to every mode: the highest
// of the per-mode thresholds.
func QRPThreshold() int {
	return max(QRPThresholdCW, QRPThresholdDigital, QRPThresholdPhone)
}

// PowerMultiplier returns the multiplier for the declared output power.
func PowerMultiplier(power int) float64 {
	if power <= QRPThreshold() {
		return PowerMultiplierQRP
	}
	return PowerMultiplierHigh
}

// ScoreLines computes the contest score:
// (CW/digital QSOs * 2 + phone QSOs) * power multiplier * distinct band/mode pairs.
func ScoreLines(entries []LogLine, power int) float64 {
	return Tally(entries, power).Score
}

// Tally computes the score and keeps the intermediate sets for reporting.
// It does not depend on the order of entries.
func Tally(entries []LogLine, power int) Breakdown {
	worked := make(map[BandMode]struct{})
	unique := make(map[QSO]struct{})

	for _, entry := range entries {
		worked[entry.BandMode()] = struct{}{}
		unique[entry.QSO()] = struct{}{}
	}

	b := Breakdown{
		Power:           power,
		WorkedBandModes: make([]BandMode, 0, len(worked)),
		CWDigitalQSOs:   make([]QSO, 0, len(unique)),
		PhoneQSOs:       make([]QSO, 0, len(unique)),
		PowerMultiplier: PowerMultiplier(power),
		Entries:         len(entries),
	}

	for bm := range worked {
		b.WorkedBandModes = append(b.WorkedBandModes, bm)
	}

	for qso := range unique {
		switch qso.Mode {
		case ModeCW, ModeDigital:
			b.CWDigitalQSOs = append(b.CWDigitalQSOs, qso)
		case ModePhone:
			b.PhoneQSOs = append(b.PhoneQSOs, qso)
		}
		b.QSOPoints += qso.Mode.Points()
	}

	sortBandModes(b.WorkedBandModes)
	sortQSOs(b.CWDigitalQSOs)
	sortQSOs(b.PhoneQSOs)

	b.BandModeMultiplier = len(b.WorkedBandModes)
	b.Score = float64(b.QSOPoints) * b.PowerMultiplier * float64(b.BandModeMultiplier)

	return b
}

// sortBandModes orders pairs by band, then mode
func sortBandModes(pairs []BandMode) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Band != pairs[j].Band {
			return pairs[i].Band < pairs[j].Band
		}
		return pairs[i].Mode < pairs[j].Mode
	})
}

// sortQSOs orders contacts by band, mode, then callsign
func sortQSOs(qsos []QSO) {
	sort.Slice(qsos, func(i, j int) bool {
		a, b := qsos[i], qsos[j]
		if a.Band != b.Band {
			return a.Band < b.Band
		}
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		return a.Callsign < b.Callsign
	})
}
