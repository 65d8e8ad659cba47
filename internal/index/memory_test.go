package index

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/wfdscore/internal/report"
)

func newResult(key string, scoredAt time.Time, score float64) *report.Result {
	return &report.Result{
		Key:      key,
		ScoredAt: scoredAt,
		Report:   &report.Report{Score: score},
	}
}

func TestNewResultIndex(t *testing.T) {
	index := NewResultIndex()
	if index == nil {
		t.Fatal("NewResultIndex() returned nil")
	}
	if index.Count() != 0 {
		t.Errorf("NewResultIndex() should start empty, got %v", index.Count())
	}
	if _, ok := index.Live(); ok {
		t.Error("NewResultIndex() should start without a live result")
	}
}

func TestPutGet(t *testing.T) {
	index := NewResultIndex()
	now := time.Now()

	index.Put(newResult("a", now, 12))
	index.Put(newResult("b", now, 6))

	got, ok := index.Get("a")
	if !ok || got.Report.Score != 12 {
		t.Fatalf("Get(a) = %v, %v; want score 12", got, ok)
	}

	// Same key replaces
	index.Put(newResult("a", now, 30))
	if got, _ := index.Get("a"); got.Report.Score != 30 {
		t.Errorf("Put() should replace, got score %v", got.Report.Score)
	}
	if index.Count() != 2 {
		t.Errorf("Count() = %v, want 2", index.Count())
	}
}

func TestAllMostRecentFirst(t *testing.T) {
	index := NewResultIndex()
	base := time.Date(2025, time.January, 25, 12, 0, 0, 0, time.UTC)

	index.Put(newResult("old", base, 1))
	index.Put(newResult("new", base.Add(2*time.Hour), 2))
	index.Put(newResult("mid", base.Add(time.Hour), 3))

	all := index.All()
	if len(all) != 3 {
		t.Fatalf("All() = %v results, want 3", len(all))
	}
	want := []string{"new", "mid", "old"}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("All()[%d] = %v, want %v", i, all[i].Key, key)
		}
	}
}

func TestPrune(t *testing.T) {
	index := NewResultIndex()
	now := time.Now()

	index.Put(newResult("expired", now.Add(-48*time.Hour), 1))
	index.Put(newResult("also-expired", now.Add(-30*time.Hour), 3))
	index.Put(newResult("fresh", now.Add(-time.Hour), 2))

	pruned := index.Prune(now.Add(-24 * time.Hour))
	if diff := cmp.Diff([]string{"also-expired", "expired"}, pruned); diff != "" {
		t.Errorf("Prune() mismatch (-want +got):\n%s", diff)
	}
	if pruned := index.Prune(now.Add(-24 * time.Hour)); len(pruned) != 0 {
		t.Errorf("second Prune() = %v, want none", pruned)
	}
	if _, ok := index.Get("expired"); ok {
		t.Error("expired result should be pruned")
	}
	if _, ok := index.Get("fresh"); !ok {
		t.Error("fresh result should be kept")
	}
}

func TestLive(t *testing.T) {
	index := NewResultIndex()

	index.SetLive(newResult("live", time.Now(), 12))

	live, ok := index.Live()
	if !ok || live.Report.Score != 12 {
		t.Fatalf("Live() = %v, %v; want score 12", live, ok)
	}
	if index.GetLastLive().IsZero() {
		t.Error("GetLastLive() should be set after SetLive()")
	}
	if index.Count() != 0 {
		t.Errorf("live result should not count as a cached result, Count() = %v", index.Count())
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewResultIndex()
	now := time.Now()

	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			index.Put(newResult(fmt.Sprintf("r%d", i), now, float64(i)))
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = index.All()
			_, _ = index.Live()
		}()
	}

	wg.Wait()

	if index.Count() != 100 {
		t.Errorf("Concurrent Put() count = %v, want 100", index.Count())
	}
}
