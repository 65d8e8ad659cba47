package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
	redisstore "github.com/MrSnakeDoc/wfdscore/internal/store/redis"
)

// RedisSyncer restores results from Redis into the memory index on startup
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.ResultIndex
	live   *LiveOptions // nil when live scoring is disabled
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer.
// live describes the watched log file; pass nil when live scoring is disabled.
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.ResultIndex,
	live *LiveOptions,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		live:   live,
		logger: log,
	}
}

// Sync loads the live result and cached results from Redis into the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing results from redis to memory")

	if err := rs.syncLive(ctx); err != nil {
		return err
	}

	results, err := rs.store.GetAllResults(ctx)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		rs.logger.Info("no cached results found in redis")
		return nil
	}

	for _, result := range results {
		rs.index.Put(result)
	}

	rs.logger.Info("synced results from redis",
		logger.Int("count", len(results)))

	return nil
}

// syncLive restores the stored live result when it was scored from the
// configured file at the configured power, and drops it otherwise.
func (rs *RedisSyncer) syncLive(ctx context.Context) error {
	live, err := rs.store.GetLive(ctx)
	if err != nil {
		return err
	}
	if live == nil {
		return nil
	}

	if !liveMatches(live, rs.live) {
		var (
			storedFile  string
			storedPower int
		)
		if live.Report != nil {
			storedFile, storedPower = live.Report.Source, live.Report.Power
		}
		rs.logger.Info("discarding live result scored with another configuration",
			logger.String("stored_file", storedFile),
			logger.Int("stored_power", storedPower))

		if err := rs.store.DeleteLive(ctx); err != nil {
			rs.logger.Warn("failed to delete stale live result", logger.Error(err))
		}
		return nil
	}

	rs.index.SetLive(live)
	rs.logger.Info("restored live result from redis",
		logger.Float64("score", live.Report.Score))
	return nil
}

// liveMatches reports whether a stored live result belongs to the current live configuration
func liveMatches(result *report.Result, opts *LiveOptions) bool {
	if opts == nil || result == nil || result.Report == nil {
		return false
	}
	return result.Report.Source == opts.LogFile && result.Report.Power == opts.Power
}
