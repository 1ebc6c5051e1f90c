package usage

import (
	"sync"
	"testing"

	"keycalc/internal/calc"
)

func TestTracker_TrackAggregates(t *testing.T) {
	tracker := NewTracker("sess_1")

	acc := calc.New(nil)
	tracker.Track("append", acc.Append("4"))
	tracker.Track("square_root", acc.SquareRoot())
	tracker.Track("reciprocal", calc.New(nil).Reciprocal())
	tracker.Track("append", acc.Append("^"))

	stats := tracker.Stats()
	if stats.SessionID != "sess_1" {
		t.Fatalf("SessionID=%q", stats.SessionID)
	}
	if stats.Total.Runs != 4 || stats.Total.Failures != 1 {
		t.Fatalf("Total=%+v, want runs=4 failures=1", stats.Total)
	}
	if got := stats.ByAction["append"]; got.Runs != 2 || got.Failures != 0 {
		t.Fatalf("ByAction[append]=%+v, want runs=2 failures=0", got)
	}
	if got := stats.ByAction["reciprocal"]; got.Failures != 1 {
		t.Fatalf("ByAction[reciprocal]=%+v, want failures=1", got)
	}
	if stats.ByError["domain"] != 1 || stats.ByError["invalid_token"] != 1 {
		t.Fatalf("ByError=%v", stats.ByError)
	}
}

func TestTracker_StatsIsACopy(t *testing.T) {
	tracker := NewTracker("s")
	tracker.Track("clear", calc.Result{})

	stats := tracker.Stats()
	stats.ByAction["clear"] = Counts{Runs: 99}

	if got := tracker.Stats().ByAction["clear"].Runs; got != 1 {
		t.Fatalf("mutating a snapshot changed the tracker: runs=%d", got)
	}
}

func TestTracker_ConcurrentTrack(t *testing.T) {
	tracker := NewTracker("s")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Track("append", calc.Result{Display: "1"})
			}
		}()
	}
	wg.Wait()

	if got := tracker.Stats().Total.Runs; got != 800 {
		t.Fatalf("Total.Runs=%d, want 800", got)
	}
}

func TestStats_Summary(t *testing.T) {
	tracker := NewTracker("s")
	tracker.Track("evaluate", calc.Result{Display: "3"})
	tracker.Track("append", calc.Result{Display: "1"})
	tracker.Track("reciprocal", calc.Result{Display: calc.ErrorMarker, Err: calc.ErrDomain})

	want := "ops=3 failures=1 [append=1/0 evaluate=1/0 reciprocal=1/1]"
	if got := tracker.Stats().Summary(); got != want {
		t.Fatalf("Summary()=%q, want %q", got, want)
	}
}
