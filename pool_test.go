package symbol

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-symbol/pkg/activity"
)

func TestPoolConcurrentInternConverges(t *testing.T) {
	pool := NewPool(WithKindName("converge"))
	const workers = 32

	var (
		wg      sync.WaitGroup
		handles = make([]Handle, workers)
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			<-start
			h, err := pool.Intern("contested")
			if err != nil {
				t.Errorf("intern failed: %v", err)
				return
			}
			handles[slot] = h
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		if !handles[0].Equal(handles[i]) {
			t.Fatalf("handles %d and 0 reference different entries", i)
		}
	}
	stats := pool.Stats()
	if stats.Entries != 1 {
		t.Fatalf("expected exactly one surviving entry, got %d", stats.Entries)
	}
	if stats.Live != workers {
		t.Fatalf("expected %d live handles, got %d", workers, stats.Live)
	}
	for _, h := range handles {
		h.Release()
	}
	if stats := pool.Stats(); stats.Entries != 0 {
		t.Fatalf("expected pool drained, got %+v", stats)
	}
}

func TestPoolConcurrentChurnKeepsSingleEntry(t *testing.T) {
	pool := NewPool(WithKindName("churn"), WithShardCount(4))
	const (
		workers    = 8
		iterations = 500
	)

	// Release-to-zero races a concurrent intern of the same text on every
	// iteration; the shard lock must never let two live entries coexist.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < iterations; it++ {
				h, err := pool.Intern("hot")
				if err != nil {
					t.Errorf("intern failed: %v", err)
					return
				}
				clone := h.Retain()
				clone.Release()
				h.Release()
			}
		}()
	}
	wg.Wait()

	if stats := pool.Stats(); stats.Entries != 0 || stats.Live != 0 {
		t.Fatalf("expected fully drained pool, got %+v", stats)
	}
}

func TestPoolDistinctTextsDistinctEntries(t *testing.T) {
	pool := NewPool(WithKindName("words"))
	var handles []Handle
	for i := 0; i < 100; i++ {
		h, err := pool.Intern(fmt.Sprintf("word-%03d", i))
		if err != nil {
			t.Fatalf("intern failed: %v", err)
		}
		handles = append(handles, h)
	}
	if stats := pool.Stats(); stats.Entries != 100 {
		t.Fatalf("expected 100 entries, got %+v", stats)
	}
	for _, h := range handles {
		h.Release()
	}
}

func TestReleasePastZeroPanicsWithInvariantViolation(t *testing.T) {
	pool := NewPool(WithKindName("underflow"))
	h, err := pool.Intern("once")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	h.Release()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected release past zero to panic")
		}
		violation, ok := r.(*InvariantViolationError)
		if !ok {
			t.Fatalf("expected *InvariantViolationError, got %T", r)
		}
		if violation.Op != "release" {
			t.Fatalf("unexpected op %q", violation.Op)
		}
	}()
	h.Release()
}

func TestRetainAfterReclaimPanicsWithInvariantViolation(t *testing.T) {
	pool := NewPool(WithKindName("resurrect"))
	h, err := pool.Intern("gone")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	h.Release()

	defer func() {
		if _, ok := recover().(*InvariantViolationError); !ok {
			t.Fatalf("expected retain of reclaimed entry to panic")
		}
	}()
	h.Retain()
}

func TestZeroHandleOperations(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Fatalf("expected zero handle to report IsZero")
	}
	if h.Text() != "" || h.Hash() != 0 {
		t.Fatalf("expected inert zero handle")
	}
	if got := h.Retain(); !got.IsZero() {
		t.Fatalf("expected retain of zero handle to stay zero")
	}
	h.Release() // no-op
}

func TestPoolEmitsLifecycleEvents(t *testing.T) {
	capture := &activity.CaptureHook{}
	pool := NewPool(
		WithKindName("events"),
		WithValidator(ValidatorFunc(func(text string) error {
			if text == "" {
				return errors.New("must not be empty")
			}
			return nil
		})),
		WithActivityHooks(activity.Hooks{capture}),
	)

	h, err := pool.Intern("alpha")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	clone := h.Retain()
	clone.Release()
	h.Release()
	if _, err := pool.Intern(""); err == nil {
		t.Fatalf("expected rejection")
	}

	verbs := make([]string, 0, 4)
	for _, event := range capture.Events() {
		verbs = append(verbs, event.Verb)
		if event.Kind != "events" {
			t.Fatalf("expected kind %q on event, got %q", "events", event.Kind)
		}
		if event.ID == "" || event.OccurredAt.IsZero() {
			t.Fatalf("expected normalized event, got %+v", event)
		}
	}
	want := []string{
		activity.VerbInterned,
		activity.VerbReleased,
		activity.VerbReclaimed,
		activity.VerbRejected,
	}
	if len(verbs) != len(want) {
		t.Fatalf("expected verbs %v, got %v", want, verbs)
	}
	for i, verb := range want {
		if verbs[i] != verb {
			t.Fatalf("expected verbs %v, got %v", want, verbs)
		}
	}

	rejected := capture.ByVerb(activity.VerbRejected)
	if len(rejected) != 1 || rejected[0].Err == nil {
		t.Fatalf("expected one rejected event carrying the reason, got %+v", rejected)
	}
}

func TestPoolLogsInternOperations(t *testing.T) {
	var events []InternLogEvent
	pool := NewPool(
		WithKindName("logged"),
		WithValidator(ValidatorFunc(func(text string) error {
			if text == "no" {
				return errors.New("refused")
			}
			return nil
		})),
		WithLogger(InternLoggerFunc(func(event InternLogEvent) {
			events = append(events, event)
		})),
	)

	h, err := pool.Intern("yes")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	defer h.Release()
	if _, err := pool.Intern("no"); err == nil {
		t.Fatalf("expected rejection")
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 log events, got %d", len(events))
	}
	if events[0].Op != "intern" || events[0].Err != nil || events[0].Kind != "logged" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Err == nil {
		t.Fatalf("expected second event to carry the rejection")
	}
	if events[0].Duration < 0 || events[0].Duration > time.Minute {
		t.Fatalf("implausible duration: %v", events[0].Duration)
	}
}

func TestShardCountRoundsUpToPowerOfTwo(t *testing.T) {
	for _, tc := range []struct{ in, want int }{
		{0, 1}, {1, 1}, {3, 4}, {16, 16}, {17, 32},
	} {
		pool := NewPool(WithShardCount(tc.in))
		if got := len(pool.shards); got != tc.want {
			t.Fatalf("shard count %d: expected %d shards, got %d", tc.in, tc.want, got)
		}
	}
}
