package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
	redisstore "github.com/MrSnakeDoc/wfdscore/internal/store/redis"
)

// LiveKey is the result key of the live score
const LiveKey = "live"

// LiveOptions describes how the watched log file is scored.
type LiveOptions struct {
	LogFile     string
	Power       int
	Delimiter   string
	SkipInvalid bool
	Interval    time.Duration
}

// LiveScorer periodically re-scores the operator's log file while the contest runs
type LiveScorer struct {
	loader        *logfile.Loader
	opts          LiveOptions
	store         *redisstore.Store
	index         *index.ResultIndex
	logger        logger.Logger
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewLiveScorer creates a new live scorer
func NewLiveScorer(
	opts LiveOptions,
	store *redisstore.Store,
	idx *index.ResultIndex,
	log logger.Logger,
	manualTrigger chan struct{},
) *LiveScorer {
	return &LiveScorer{
		loader:        logfile.NewLoader(opts.LogFile),
		opts:          opts,
		store:         store,
		index:         idx,
		logger:        log,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start scores the log once, then keeps re-scoring it on every tick or manual trigger
func (ls *LiveScorer) Start(ctx context.Context) error {
	// The file may not exist yet when the station starts logging
	if err := ls.Reload(ctx); err != nil {
		ls.logger.Warn("initial live scoring failed",
			logger.String("file", ls.loader.Path()),
			logger.Error(err))
	}

	ticker := time.NewTicker(ls.opts.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ls.Reload(ctx); err != nil {
					ls.logger.Error("failed to re-score log file",
						logger.Error(err))
				}
			case <-ls.manualTrigger:
				ls.logger.Info("manual re-score triggered")
				if err := ls.Reload(ctx); err != nil {
					ls.logger.Error("failed to re-score log file",
						logger.Error(err))
				}
			case <-ls.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the scorer
func (ls *LiveScorer) Stop() {
	close(ls.stopCh)
}

// Reload loads, parses and scores the log file, then updates index + store.
// On error the previous live result is left untouched.
func (ls *LiveScorer) Reload(ctx context.Context) error {
	ls.logger.Debug("re-scoring log file", logger.String("file", ls.loader.Path()))

	lines, err := ls.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load log file: %w", err)
	}

	policy := logfile.PolicyFailFast
	if ls.opts.SkipInvalid {
		policy = logfile.PolicySkipInvalid
	}

	parser := domain.NewLineParser(ls.opts.Delimiter, ls.now)
	rep, err := report.Score(ls.loader.Path(), lines, parser, policy, ls.opts.Power)
	if err != nil {
		return fmt.Errorf("failed to score log file: %w", err)
	}

	result := &report.Result{
		Key:      LiveKey,
		ScoredAt: ls.now(),
		Report:   rep,
	}

	ls.index.SetLive(result)

	ls.logger.Info("live score updated",
		logger.Int("entries", rep.Entries),
		logger.Int("skipped", len(rep.Skipped)),
		logger.Float64("score", rep.Score))

	// Update Redis store (best effort)
	if ls.store != nil {
		if err := ls.store.SaveLive(ctx, result); err != nil {
			ls.logger.Warn("failed to save live result to redis",
				logger.Error(err))
			// Don't fail - memory index is the primary source
		}
	}

	return nil
}
