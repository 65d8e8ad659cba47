package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// TextOpts controls the plain text renderer.
type TextOpts struct {
	Color   bool // colorize headings and the final score
	Verbose bool // list every QSO, not just the counts
}

// WriteText renders r the way an operator reads it at the end of the contest.
func WriteText(w io.Writer, r *Report, opts TextOpts) error {
	heading := color.New(color.FgCyan, color.Bold)
	total := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	for _, c := range []*color.Color{heading, total, warn} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	p := &printer{w: w}

	if r.Source != "" {
		p.printf("%s %s\n", heading.Sprint("Log:"), r.Source)
	}
	p.printf("%s %d entries, power %dW\n", heading.Sprint("Parsed:"), r.Entries, r.Power)

	p.printf("\n%s %d\n", heading.Sprint("Worked band/modes:"), len(r.WorkedBandModes))
	for _, bm := range r.WorkedBandModes {
		p.printf("  %s\n", bm)
	}

	p.printf("\n%s %d\n", heading.Sprint("CW/Digital QSOs:"), len(r.CWDigitalQSOs))
	if opts.Verbose {
		p.rows(r.CWDigitalQSOs)
	}

	p.printf("\n%s %d\n", heading.Sprint("Phone QSOs:"), len(r.PhoneQSOs))
	if opts.Verbose {
		p.rows(r.PhoneQSOs)
	}

	if len(r.Skipped) > 0 {
		p.printf("\n%s %d\n", warn.Sprint("Skipped lines:"), len(r.Skipped))
		for _, s := range r.Skipped {
			p.printf("  line %d [%s] %s\n", s.Line, s.Kind, s.Raw)
		}
	}

	p.printf("\nQSO points (%d * 2 + %d) = %d\n", len(r.CWDigitalQSOs), len(r.PhoneQSOs), r.QSOPoints)
	p.printf("%d * power multiplier %g * band/mode multiplier %d = %s\n",
		r.QSOPoints, r.PowerMultiplier, r.BandModeMultiplier, total.Sprintf("%g", r.Score))

	return p.err
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) rows(rows []QSORow) {
	for _, q := range rows {
		p.printf("  %-5s %-8s %s\n", q.Band, q.Mode, q.Callsign)
	}
}
