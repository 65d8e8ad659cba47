package logfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line.
const maxLineBytes = 64 * 1024

// Line is one non-blank line of a contest log.
type Line struct {
	Number int    // 1-based line number in the source
	Text   string // upper-cased, line ending removed
}

// Loader reads a contest log file from disk
type Loader struct {
	filePath string
}

// NewLoader creates a new log file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads the log file and returns its scoreable lines
func (l *Loader) Load() ([]Line, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file %s: %w", l.filePath, err)
	}
	return lines, nil
}

// ReadLines splits r into lines, skipping blank lines and "#" comments.
// Lines are upper-cased so "cw" and "20m" are accepted.
func ReadLines(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Text: strings.ToUpper(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
