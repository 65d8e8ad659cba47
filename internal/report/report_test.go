package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
)

func testReport(t *testing.T) *Report {
	t.Helper()

	parser := domain.NewLineParser("", func() time.Time {
		return time.Date(2025, time.January, 25, 18, 0, 0, 0, time.UTC)
	})
	lines, err := logfile.ReadLines(strings.NewReader(
		"14.250 W1ABC 1HTEST 1200Z SSB\n" +
			"7.050 W1ABC 1HTEST 1210Z CW\n" +
			"7.050 W1ABC 1HTEST 1210Z MFSK\n",
	))
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	entries, skipped, err := logfile.ParseLines(lines, parser, logfile.PolicySkipInvalid)
	if err != nil {
		t.Fatalf("ParseLines() error = %v", err)
	}

	return New("wfd.log", domain.Tally(entries, 5), skipped)
}

func TestNew(t *testing.T) {
	got := testReport(t)

	want := &Report{
		Source:             "wfd.log",
		Power:              5,
		Entries:            2,
		WorkedBandModes:    []string{"40M/CW", "20M/PHONE"},
		CWDigitalQSOs:      []QSORow{{Band: "40M", Mode: "CW", Callsign: "W1ABC"}},
		PhoneQSOs:          []QSORow{{Band: "20M", Mode: "PHONE", Callsign: "W1ABC"}},
		QSOPoints:          3,
		PowerMultiplier:    2,
		BandModeMultiplier: 2,
		Score:              12,
		Skipped: []SkippedLine{{
			Line:  3,
			Raw:   "7.050 W1ABC 1HTEST 1210Z MFSK",
			Kind:  "InvalidMode",
			Error: `invalid mode: mode "MFSK"`,
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFormats(t *testing.T) {
	r := testReport(t)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatJSON, TextOpts{}); err != nil {
			t.Fatalf("Write(json) error = %v", err)
		}
		var decoded Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("json.Unmarshal() error = %v", err)
		}
		if decoded.Score != 12 {
			t.Errorf("decoded score = %v, want 12", decoded.Score)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatYAML, TextOpts{}); err != nil {
			t.Fatalf("Write(yaml) error = %v", err)
		}
		var decoded Report
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("yaml.Unmarshal() error = %v", err)
		}
		if decoded.BandModeMultiplier != 2 {
			t.Errorf("decoded band/mode multiplier = %d, want 2", decoded.BandModeMultiplier)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatText, TextOpts{Verbose: true}); err != nil {
			t.Fatalf("Write(text) error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{
			"Worked band/modes: 2",
			"40M   CW       W1ABC",
			"line 3 [InvalidMode]",
			"3 * power multiplier 2 * band/mode multiplier 2 = 12",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("text output should not contain color codes when Color is false")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		err := Write(&bytes.Buffer{}, r, "xml", TextOpts{})
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Write(xml) error = %v, want ErrUnknownFormat", err)
		}
	})
}
