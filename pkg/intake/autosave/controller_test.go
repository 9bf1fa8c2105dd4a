package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

// short durations keep the tests fast; generous waits keep them stable
const (
	testDebounce = 20 * time.Millisecond
	testDisplay  = 40 * time.Millisecond
	settleWait   = 120 * time.Millisecond
)

type saveRecorder struct {
	mu        sync.Mutex
	calls     int
	snapshots []types.DraftState
	err       error
	delay     time.Duration
}

func (r *saveRecorder) save(ctx context.Context, snapshot types.DraftState) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.snapshots = append(r.snapshots, snapshot)
	return r.err
}

func (r *saveRecorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *saveRecorder) lastSnapshot() types.DraftState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

type statusRecorder struct {
	mu       sync.Mutex
	observed []Status
}

func (r *statusRecorder) listen(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed = append(r.observed, status)
}

func (r *statusRecorder) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status{}, r.observed...)
}

func newTestController(recorder *saveRecorder, statuses *statusRecorder) *Controller {
	config := ControllerConfig{
		DebounceDelay:        testDebounce,
		SavedDisplayDuration: testDisplay,
		ErrorDisplayDuration: testDisplay,
	}
	if statuses != nil {
		config.OnStatusChange = statuses.listen
	}
	return NewController(recorder.save, config)
}

func TestControllerDebouncesRapidChanges(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("h")})
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("he")})
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("hel")})
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("hello")})

	time.Sleep(settleWait)

	if calls := recorder.callCount(); calls != 1 {
		t.Errorf("expected 1 save for a rapid burst, got %d", calls)
	}
	snapshot := recorder.lastSnapshot()
	if snapshot == nil || snapshot["q1"] == nil || *snapshot["q1"].Text != "hello" {
		t.Errorf("expected the latest snapshot to be saved, got %+v", snapshot)
	}
}

func TestControllerIgnoresStructurallyEqualSnapshots(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("same")})
	time.Sleep(settleWait)

	if calls := recorder.callCount(); calls != 1 {
		t.Fatalf("expected 1 save, got %d", calls)
	}

	// a fresh but structurally identical snapshot must not start a new cycle
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("same")})
	time.Sleep(settleWait)

	if calls := recorder.callCount(); calls != 1 {
		t.Errorf("expected no extra save for an equal snapshot, got %d calls", calls)
	}
}

func TestControllerStatusSequence(t *testing.T) {
	recorder := &saveRecorder{}
	statuses := &statusRecorder{}
	controller := newTestController(recorder, statuses)
	defer controller.Teardown()

	if controller.Status() != STATUS_IDLE {
		t.Errorf("expected initial status idle, got %s", controller.Status())
	}

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})
	time.Sleep(settleWait + testDisplay)

	observed := statuses.statuses()
	expected := []Status{STATUS_SAVING, STATUS_SAVED, STATUS_IDLE}
	if len(observed) != len(expected) {
		t.Fatalf("expected status sequence %v, got %v", expected, observed)
	}
	for i := range expected {
		if observed[i] != expected[i] {
			t.Fatalf("expected status sequence %v, got %v", expected, observed)
		}
	}
}

func TestControllerErrorPath(t *testing.T) {
	recorder := &saveRecorder{err: errors.New("store unavailable")}
	statuses := &statusRecorder{}
	controller := newTestController(recorder, statuses)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})

	// the save fires after the debounce delay; the error indicator is shown
	// for the display duration after that
	time.Sleep(testDebounce + 10*time.Millisecond)
	if controller.Status() != STATUS_ERROR {
		t.Errorf("expected status error, got %s", controller.Status())
	}

	// the error indicator reverts to idle on its own
	time.Sleep(testDisplay + settleWait)
	if controller.Status() != STATUS_IDLE {
		t.Errorf("expected status idle after error display, got %s", controller.Status())
	}
}

func TestControllerFlush(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})

	// flush before the debounce delay elapsed
	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if calls := recorder.callCount(); calls != 1 {
		t.Errorf("expected 1 save after flush, got %d", calls)
	}

	// the cancelled debounce timer must not fire a second save
	time.Sleep(settleWait)
	if calls := recorder.callCount(); calls != 1 {
		t.Errorf("expected no extra save after flush, got %d calls", calls)
	}
}

func TestControllerFlushWaitsForInFlightSave(t *testing.T) {
	recorder := &saveRecorder{delay: 4 * testDebounce}
	controller := newTestController(recorder, nil)

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("first")})
	time.Sleep(testDebounce + 5*time.Millisecond)

	// save of "first" is in flight now; this change must survive the
	// flush-and-teardown that runs on the submit path
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("second")})
	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	controller.Teardown()

	if calls := recorder.callCount(); calls != 2 {
		t.Fatalf("expected 2 saves, got %d", calls)
	}
	snapshot := recorder.lastSnapshot()
	if snapshot == nil || snapshot["q1"] == nil || *snapshot["q1"].Text != "second" {
		t.Errorf("expected the latest change to be persisted, got %+v", snapshot)
	}
}

func TestControllerFlushSkipsAlreadyPersistedSnapshot(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})
	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if calls := recorder.callCount(); calls != 1 {
		t.Fatalf("expected 1 save, got %d", calls)
	}

	// repeated flushes, as issued on every page navigation, must not
	// rewrite an unchanged snapshot
	for i := 0; i < 3; i++ {
		if err := controller.Flush(context.Background()); err != nil {
			t.Fatalf("unexpected flush error: %s", err)
		}
	}
	if calls := recorder.callCount(); calls != 1 {
		t.Errorf("expected no extra save for an unchanged snapshot, got %d calls", calls)
	}

	// a real change makes the next flush save again
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("y")})
	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if calls := recorder.callCount(); calls != 2 {
		t.Errorf("expected 2 saves after a new change, got %d", calls)
	}
}

func TestControllerFlushRetriesAfterFailedSave(t *testing.T) {
	recorder := &saveRecorder{err: errors.New("store unavailable")}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})
	if err := controller.Flush(context.Background()); err == nil {
		t.Fatal("expected flush to report the save error")
	}

	// the snapshot was never persisted, so the next flush must try again
	recorder.mu.Lock()
	recorder.err = nil
	recorder.mu.Unlock()
	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if calls := recorder.callCount(); calls != 2 {
		t.Errorf("expected a retry after the failed save, got %d calls", calls)
	}
}

func TestControllerFlushWithoutPendingIsNoop(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	if err := controller.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if calls := recorder.callCount(); calls != 0 {
		t.Errorf("expected no saves, got %d", calls)
	}
}

func TestControllerDisabled(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.SetEnabled(false)
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})
	time.Sleep(settleWait)

	if calls := recorder.callCount(); calls != 0 {
		t.Errorf("expected no saves while disabled, got %d", calls)
	}
	if controller.Status() != STATUS_IDLE {
		t.Errorf("expected status idle, got %s", controller.Status())
	}
}

func TestControllerCancelDropsPendingTimer(t *testing.T) {
	recorder := &saveRecorder{}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})
	controller.Cancel()
	time.Sleep(settleWait)

	if calls := recorder.callCount(); calls != 0 {
		t.Errorf("expected no saves after cancel, got %d", calls)
	}
}

func TestControllerTeardownSuppressesInFlightTransition(t *testing.T) {
	recorder := &saveRecorder{delay: 30 * time.Millisecond}
	statuses := &statusRecorder{}
	controller := newTestController(recorder, statuses)

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("x")})

	// wait until the save is in flight, then tear down
	time.Sleep(testDebounce + 10*time.Millisecond)
	controller.Teardown()
	time.Sleep(settleWait)

	for _, status := range statuses.statuses() {
		if status == STATUS_SAVED || status == STATUS_ERROR {
			t.Errorf("observed %s after teardown", status)
		}
	}
}

func TestControllerStatusTransitionsStayOrdered(t *testing.T) {
	recorder := &saveRecorder{}
	statuses := &statusRecorder{}
	controller := NewController(recorder.save, ControllerConfig{
		DebounceDelay:        time.Millisecond,
		SavedDisplayDuration: time.Millisecond,
		ErrorDisplayDuration: time.Millisecond,
		OnStatusChange:       statuses.listen,
	})
	defer controller.Teardown()

	// tight timings make the idle revert race the next saving cycle
	for i := 0; i < 50; i++ {
		controller.OnChange(types.DraftState{"q1": types.TextAnswer(fmt.Sprintf("v%d", i))})
		time.Sleep(3 * time.Millisecond)
	}
	time.Sleep(settleWait)

	observed := statuses.statuses()
	for i := 1; i < len(observed); i++ {
		prev, cur := observed[i-1], observed[i]
		switch prev {
		case STATUS_SAVING:
			if cur != STATUS_SAVED && cur != STATUS_ERROR {
				t.Fatalf("invalid transition %s -> %s at %d: %v", prev, cur, i, observed)
			}
		case STATUS_IDLE:
			if cur != STATUS_SAVING {
				t.Fatalf("invalid transition %s -> %s at %d: %v", prev, cur, i, observed)
			}
		case STATUS_SAVED, STATUS_ERROR:
			if cur != STATUS_IDLE && cur != STATUS_SAVING {
				t.Fatalf("invalid transition %s -> %s at %d: %v", prev, cur, i, observed)
			}
		}
	}
}

func TestControllerChangeDuringSaveStartsNewCycle(t *testing.T) {
	recorder := &saveRecorder{delay: 2 * testDebounce}
	controller := newTestController(recorder, nil)
	defer controller.Teardown()

	controller.OnChange(types.DraftState{"q1": types.TextAnswer("first")})
	time.Sleep(testDebounce + 5*time.Millisecond)

	// save of "first" is in flight now
	controller.OnChange(types.DraftState{"q1": types.TextAnswer("second")})
	time.Sleep(6 * testDebounce)

	if calls := recorder.callCount(); calls != 2 {
		t.Fatalf("expected 2 saves, got %d", calls)
	}
	snapshot := recorder.lastSnapshot()
	if snapshot == nil || snapshot["q1"] == nil || *snapshot["q1"].Text != "second" {
		t.Errorf("expected the second snapshot to be saved, got %+v", snapshot)
	}
}
