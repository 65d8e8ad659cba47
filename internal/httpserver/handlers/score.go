package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
	"github.com/MrSnakeDoc/wfdscore/internal/utils"
)

// scoreRequest holds the query parameters of POST /score
type scoreRequest struct {
	power     int
	delimiter string
	policy    logfile.Policy
	format    string
}

func parseScoreRequest(r *http.Request) (scoreRequest, error) {
	q := r.URL.Query()

	req := scoreRequest{
		delimiter: q.Get("delimiter"),
		policy:    logfile.PolicyFailFast,
		format:    q.Get("format"),
	}

	switch req.format {
	case "", report.FormatJSON, report.FormatYAML, report.FormatText:
	default:
		return req, fmt.Errorf("unknown format: %s", req.format)
	}

	rawPower := q.Get("power")
	if rawPower == "" {
		return req, errors.New("missing power parameter")
	}
	power, err := strconv.Atoi(rawPower)
	if err != nil || power < 0 {
		return req, fmt.Errorf("invalid power %q: must be a non-negative integer", rawPower)
	}
	req.power = power

	if raw := q.Get("skip_invalid"); raw != "" {
		skip, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("invalid skip_invalid %q", raw)
		}
		if skip {
			req.policy = logfile.PolicySkipInvalid
		}
	}

	return req, nil
}

// cacheKey hashes everything that changes the outcome of a scoring request
func (req scoreRequest) cacheKey(body []byte) string {
	h := xxhash.New()
	_, _ = h.Write(body)
	_, _ = fmt.Fprintf(h, "\x00%d\x00%s\x00%d", req.power, req.delimiter, req.policy)
	return fmt.Sprintf("%016x", h.Sum64())
}

// readBody reads at most limit bytes of the request body.
// A larger body yields an *http.MaxBytesError.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = 1 << 20
	}
	defer utils.Close(r.Body)
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// Score parses and scores a log posted as the request body
func Score(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := parseScoreRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		body, err := readBody(w, r, d.MaxBodyBytes)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("log exceeds %d bytes", tooLarge.Limit))
				return
			}
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		key := req.cacheKey(body)

		// Memory first, then Redis
		if cached, ok := d.Index.Get(key); ok {
			w.Header().Set("X-Cache", "HIT")
			writeResult(w, cached, req.format)
			return
		}
		if d.Store != nil {
			cached, err := d.Store.GetResult(ctx, key)
			if err != nil {
				d.Logger.Warn("failed to read cached result from redis", logger.Error(err))
			} else if cached != nil {
				d.Index.Put(cached)
				w.Header().Set("X-Cache", "HIT")
				writeResult(w, cached, req.format)
				return
			}
		}

		lines, err := logfile.ReadLines(bytes.NewReader(body))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		parser := domain.NewLineParser(req.delimiter, d.Now)
		rep, err := report.Score("", lines, parser, req.policy, req.power)
		if err != nil {
			d.Logger.Debug("rejected log", logger.Error(err))
			writeParseError(w, err)
			return
		}

		result := &report.Result{
			Key:      key,
			ScoredAt: d.Now(),
			Report:   rep,
		}
		d.Index.Put(result)

		// Update Redis store (best effort)
		if d.Store != nil {
			if err := d.Store.SaveResult(ctx, result, d.ResultTTL); err != nil {
				d.Logger.Warn("failed to save result to redis", logger.Error(err))
			}
		}

		d.Logger.Info("scored log",
			logger.String("key", key),
			logger.Int("entries", rep.Entries),
			logger.Int("skipped", len(rep.Skipped)),
			logger.Float64("score", rep.Score))

		w.Header().Set("X-Cache", "MISS")
		writeResult(w, result, req.format)
	}
}
