// Package report turns a score breakdown into something a person or a client can read.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// QSORow is one deduplicated contact.
type QSORow struct {
	Band     string `json:"band" yaml:"band"`
	Mode     string `json:"mode" yaml:"mode"`
	Callsign string `json:"callsign" yaml:"callsign"`
}

// SkippedLine is a log line that was not scored.
type SkippedLine struct {
	Line  int    `json:"line" yaml:"line"`
	Raw   string `json:"raw" yaml:"raw"`
	Kind  string `json:"kind" yaml:"kind"`
	Error string `json:"error" yaml:"error"`
}

// Report is the flattened, serializable view of a score.
type Report struct {
	Source             string        `json:"source,omitempty" yaml:"source,omitempty"`
	Power              int           `json:"power" yaml:"power"`
	Entries            int           `json:"entries" yaml:"entries"`
	WorkedBandModes    []string      `json:"worked_band_modes" yaml:"worked_band_modes"`
	CWDigitalQSOs      []QSORow      `json:"cw_digital_qsos" yaml:"cw_digital_qsos"`
	PhoneQSOs          []QSORow      `json:"phone_qsos" yaml:"phone_qsos"`
	QSOPoints          int           `json:"qso_points" yaml:"qso_points"`
	PowerMultiplier    float64       `json:"power_multiplier" yaml:"power_multiplier"`
	BandModeMultiplier int           `json:"band_mode_multiplier" yaml:"band_mode_multiplier"`
	Score              float64       `json:"score" yaml:"score"`
	Skipped            []SkippedLine `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// New flattens a breakdown and the lines skipped while parsing.
func New(source string, b domain.Breakdown, skipped []*logfile.LineError) *Report {
	r := &Report{
		Source:             source,
		Power:              b.Power,
		Entries:            b.Entries,
		WorkedBandModes:    make([]string, 0, len(b.WorkedBandModes)),
		CWDigitalQSOs:      qsoRows(b.CWDigitalQSOs),
		PhoneQSOs:          qsoRows(b.PhoneQSOs),
		QSOPoints:          b.QSOPoints,
		PowerMultiplier:    b.PowerMultiplier,
		BandModeMultiplier: b.BandModeMultiplier,
		Score:              b.Score,
	}

	for _, bm := range b.WorkedBandModes {
		r.WorkedBandModes = append(r.WorkedBandModes, bm.Band.String()+"/"+bm.Mode.String())
	}

	for _, s := range skipped {
		r.Skipped = append(r.Skipped, SkippedLine{
			Line:  s.Line,
			Raw:   s.Raw,
			Kind:  domain.KindOf(s.Err).String(),
			Error: s.Err.Error(),
		})
	}

	return r
}

func qsoRows(qsos []domain.QSO) []QSORow {
	rows := make([]QSORow, 0, len(qsos))
	for _, q := range qsos {
		rows = append(rows, QSORow{Band: q.Band.String(), Mode: q.Mode.String(), Callsign: q.Callsign})
	}
	return rows
}

// Write renders r in the given format.
func Write(w io.Writer, r *Report, format string, opts TextOpts) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteJSON renders r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML renders r as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Score parses lines with parser, scores what parsed at power and builds the report.
// Under logfile.PolicyFailFast the first bad line aborts with a *logfile.LineError.
func Score(source string, lines []logfile.Line, parser *domain.LineParser, policy logfile.Policy, power int) (*Report, error) {
	entries, skipped, err := logfile.ParseLines(lines, parser, policy)
	if err != nil {
		return nil, err
	}
	return New(source, domain.Tally(entries, power), skipped), nil
}
