package scheduler

import (
	"testing"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
)

func TestGarbageCollector_Collect(t *testing.T) {
	log := logger.New("error", false)
	memIndex := index.NewResultIndex()

	now := time.Now()
	memIndex.Put(&report.Result{Key: "fresh", ScoredAt: now, Report: &report.Report{}})
	memIndex.Put(&report.Result{Key: "recent", ScoredAt: now.Add(-10 * time.Hour), Report: &report.Report{}})
	memIndex.Put(&report.Result{Key: "expired", ScoredAt: now.Add(-30 * time.Hour), Report: &report.Report{}})
	memIndex.SetLive(&report.Result{Key: LiveKey, ScoredAt: now.Add(-72 * time.Hour), Report: &report.Report{}})

	// Create GC with 24 hour TTL
	gc := NewGarbageCollector(memIndex, nil, log, time.Hour, 24*time.Hour)

	if pruned := gc.Collect(); pruned != 1 {
		t.Errorf("Collect() = %d, want 1", pruned)
	}

	if memIndex.Count() != 2 {
		t.Errorf("Expected 2 results after GC, got %d", memIndex.Count())
	}

	if _, ok := memIndex.Get("expired"); ok {
		t.Error("Expired result was not removed")
	}

	if _, ok := memIndex.Get("recent"); !ok {
		t.Error("Recent result was incorrectly removed")
	}

	// The live result is never collected
	if _, ok := memIndex.Live(); !ok {
		t.Error("Live result was incorrectly removed")
	}
}

func TestGarbageCollector_DefaultTTL(t *testing.T) {
	gc := NewGarbageCollector(index.NewResultIndex(), nil, logger.New("error", false), time.Hour, 0)
	if gc.ttl != DefaultResultTTL {
		t.Errorf("ttl = %v, want %v", gc.ttl, DefaultResultTTL)
	}
}
