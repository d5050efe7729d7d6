package wizard

import (
	"sync"
	"testing"
	"time"
)

type tickRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (r *tickRecorder) record(v float64) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *tickRecorder) snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.values...)
}

func TestSimulatorNeverReachesHundredWhilePending(t *testing.T) {
	recorder := &tickRecorder{}
	sim := NewSimulator(time.Millisecond, 10, recorder.record)
	sim.randFn = func() float64 { return 1 } // full step every tick
	sim.Start()
	defer sim.Abort()

	deadline := time.Now().Add(50 * time.Millisecond)
	for time.Now().Before(deadline) {
		if v := sim.Value(); v >= 100 {
			t.Fatalf("simulated progress reached %v before the operation resolved", v)
		}
		time.Sleep(time.Millisecond)
	}

	for _, v := range recorder.snapshot() {
		if v > clampBelow {
			t.Fatalf("tick emitted %v, above the clamp", v)
		}
	}
	if sim.Value() != clampBelow {
		t.Fatalf("expected progress pinned at the clamp, got %v", sim.Value())
	}
}

func TestSimulatorFinishForcesHundredAndStops(t *testing.T) {
	recorder := &tickRecorder{}
	sim := NewSimulator(time.Millisecond, 10, recorder.record)
	sim.Start()

	time.Sleep(10 * time.Millisecond)
	sim.Finish()

	if sim.Value() != 100 {
		t.Fatalf("value after Finish = %v, want exactly 100", sim.Value())
	}

	// Give any queued tick time to run, then confirm no further emissions.
	time.Sleep(5 * time.Millisecond)
	before := len(recorder.snapshot())
	time.Sleep(20 * time.Millisecond)
	after := recorder.snapshot()
	if len(after) != before {
		t.Fatalf("ticks continued after Finish: %d -> %d", before, len(after))
	}
	if after[len(after)-1] != 100 {
		t.Fatalf("last emission = %v, want 100", after[len(after)-1])
	}
	if sim.Value() != 100 {
		t.Fatalf("value drifted after Finish: %v", sim.Value())
	}
}

func TestSimulatorAbortStopsWithoutCompletion(t *testing.T) {
	sim := NewSimulator(time.Millisecond, 10, nil)
	sim.randFn = func() float64 { return 1 }
	sim.Start()

	time.Sleep(10 * time.Millisecond)
	sim.Abort()
	v := sim.Value()
	if v == 100 {
		t.Fatal("abort must not force completion")
	}

	time.Sleep(10 * time.Millisecond)
	if sim.Value() != v {
		t.Fatalf("value advanced after Abort: %v -> %v", v, sim.Value())
	}
}

func TestSimulatorFinishIsIdempotentWithAbort(t *testing.T) {
	sim := NewSimulator(time.Millisecond, 10, nil)
	sim.Start()
	sim.Finish()
	sim.Abort()
	sim.Finish()

	if sim.Value() != 100 {
		t.Fatalf("value = %v, want 100", sim.Value())
	}
}
