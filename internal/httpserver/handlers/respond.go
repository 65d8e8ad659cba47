package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
)

type errorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeParseError reports the offending line and what was wrong with it.
func writeParseError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var lineErr *logfile.LineError
	if errors.As(err, &lineErr) {
		resp.Line = lineErr.Line
	}
	if kind := domain.KindOf(err); kind != 0 {
		resp.Kind = kind.String()
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeResult renders a result in the requested format, JSON by default.
func writeResult(w http.ResponseWriter, result *report.Result, format string) {
	switch format {
	case "", report.FormatJSON:
		writeJSON(w, http.StatusOK, result)
	case report.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
		_ = report.WriteYAML(w, result.Report)
	case report.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = report.WriteText(w, result.Report, report.TextOpts{Verbose: true})
	default:
		writeError(w, http.StatusBadRequest, "unknown format: "+format)
	}
}
