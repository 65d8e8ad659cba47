package logfile

import (
	"fmt"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
)

// Policy decides what happens when a line fails to parse.
type Policy int

const (
	// PolicyFailFast stops at the first bad line.
	PolicyFailFast Policy = iota
	// PolicySkipInvalid records bad lines and keeps going.
	PolicySkipInvalid
)

// LineError is a parse failure tied to its source line.
type LineError struct {
	Line int
	Raw  string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ParseLines converts lines into log entries.
// With PolicyFailFast the first failure is returned as a *LineError and no entries.
// With PolicySkipInvalid every failure is collected and the error is nil.
func ParseLines(lines []Line, parser *domain.LineParser, policy Policy) ([]domain.LogLine, []*LineError, error) {
	entries := make([]domain.LogLine, 0, len(lines))
	var skipped []*LineError

	for _, line := range lines {
		entry, err := parser.Parse(line.Text)
		if err != nil {
			lineErr := &LineError{Line: line.Number, Raw: line.Text, Err: err}
			if policy == PolicyFailFast {
				return nil, nil, lineErr
			}
			skipped = append(skipped, lineErr)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}
