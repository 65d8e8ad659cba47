package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	redisstore "github.com/MrSnakeDoc/wfdscore/internal/store/redis"
)

const (
	// DefaultResultTTL is how long an ad-hoc result stays cached
	DefaultResultTTL = 24 * time.Hour
)

// GarbageCollector drops expired ad-hoc results from the memory index
// and removes them from Redis when a store is configured.
type GarbageCollector struct {
	index    *index.ResultIndex
	store    *redisstore.Store
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	idx *index.ResultIndex,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *GarbageCollector {
	if ttl == 0 {
		ttl = DefaultResultTTL
	}

	return &GarbageCollector{
		index:    idx,
		store:    store,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	gc.Collect()

	// Start periodic collection
	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect()
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes results scored longer ago than the TTL and returns how many went
func (gc *GarbageCollector) Collect() int {
	pruned := gc.index.Prune(gc.now().Add(-gc.ttl))

	if len(pruned) == 0 {
		gc.logger.Debug("no results to garbage collect")
		return 0
	}

	if gc.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, key := range pruned {
			if err := gc.store.DeleteResult(ctx, key); err != nil {
				gc.logger.Warn("failed to delete expired result from redis",
					logger.String("key", key),
					logger.Error(err))
			}
		}
	}

	gc.logger.Info("garbage collection completed",
		logger.Int("results_deleted", len(pruned)),
		logger.Int("results_left", gc.index.Count()))

	return len(pruned)
}
