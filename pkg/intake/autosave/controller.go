package autosave

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

type Status string

const (
	STATUS_IDLE   Status = "idle"
	STATUS_SAVING Status = "saving"
	STATUS_SAVED  Status = "saved"
	STATUS_ERROR  Status = "error"
)

const (
	DEFAULT_DEBOUNCE_DELAY         = 500 * time.Millisecond
	DEFAULT_SAVED_DISPLAY_DURATION = 2 * time.Second
	DEFAULT_ERROR_DISPLAY_DURATION = 3 * time.Second
)

// canonical encoding for structural equality of draft snapshots
var snapshotCodec = sonic.Config{SortMapKeys: true}.Froze()

type SaveFunc func(ctx context.Context, snapshot types.DraftState) error

type StatusListener func(status Status)

type ControllerConfig struct {
	DebounceDelay        time.Duration
	SavedDisplayDuration time.Duration
	ErrorDisplayDuration time.Duration
	SaveTimeout          time.Duration
	OnStatusChange       StatusListener
}

// Controller coalesces draft changes into debounced calls of the injected
// save operation and tracks a save status for UI feedback.
//
// Status observers see a monotonic sequence consistent with
// idle -> saving -> (saved | error) -> idle. Rapid edits collapse into one
// saving cycle; at most one save operation is in flight at a time. A change
// arriving during an in-flight save starts a new cycle once that save
// returns: the debounce timer reschedules itself, and Flush waits for the
// in-flight save before writing the newer snapshot. A snapshot that equals
// the last successfully persisted one is never saved again.
type Controller struct {
	mu       sync.Mutex
	saveDone *sync.Cond

	save                 SaveFunc
	debounceDelay        time.Duration
	savedDisplayDuration time.Duration
	errorDisplayDuration time.Duration
	saveTimeout          time.Duration
	onStatusChange       StatusListener

	status     Status
	generation uint64
	// lastSnapshot is the encoding of the most recently observed snapshot,
	// lastSaved the encoding of the one most recently persisted; they differ
	// exactly when a save is still owed
	lastSnapshot []byte
	lastSaved    []byte
	pending      types.DraftState

	debounceTimer *time.Timer
	revertTimer   *time.Timer

	// queued status changes in decision order; a single drainer delivers
	// them so observers never see transitions reordered
	notifyQueue []Status
	notifying   bool

	saving  bool
	enabled bool
	alive   bool
}

func NewController(save SaveFunc, config ControllerConfig) *Controller {
	controller := &Controller{
		save:                 save,
		debounceDelay:        config.DebounceDelay,
		savedDisplayDuration: config.SavedDisplayDuration,
		errorDisplayDuration: config.ErrorDisplayDuration,
		saveTimeout:          config.SaveTimeout,
		onStatusChange:       config.OnStatusChange,
		status:               STATUS_IDLE,
		enabled:              true,
		alive:                true,
	}
	controller.saveDone = sync.NewCond(&controller.mu)
	if controller.debounceDelay <= 0 {
		controller.debounceDelay = DEFAULT_DEBOUNCE_DELAY
	}
	if controller.savedDisplayDuration <= 0 {
		controller.savedDisplayDuration = DEFAULT_SAVED_DISPLAY_DURATION
	}
	if controller.errorDisplayDuration <= 0 {
		controller.errorDisplayDuration = DEFAULT_ERROR_DISPLAY_DURATION
	}
	return controller
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// OnChange observes a new draft snapshot. A snapshot structurally equal to
// the previously observed one neither restarts the timer nor causes a save.
func (c *Controller) OnChange(snapshot types.DraftState) {
	c.mu.Lock()
	if !c.alive || !c.enabled {
		c.mu.Unlock()
		return
	}

	encoded, err := snapshotCodec.Marshal(snapshot)
	if err != nil {
		// not reachable with well-formed answer values, treat as changed
		slog.Warn("could not encode draft snapshot", slog.String("error", err.Error()))
		encoded = nil
	}
	if encoded != nil && c.lastSnapshot != nil && bytes.Equal(encoded, c.lastSnapshot) {
		c.mu.Unlock()
		return
	}
	c.lastSnapshot = encoded
	c.pending = snapshot.Clone()

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounceDelay, c.fire)
	c.mu.Unlock()
}

// Flush saves the latest snapshot immediately, bypassing the debounce delay.
// Used before page navigation and before submit. A save currently in flight
// may be persisting an older snapshot, so Flush waits for it and runs one
// more cycle if the pending snapshot still differs from the persisted one.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	for {
		if c.debounceTimer != nil {
			c.debounceTimer.Stop()
			c.debounceTimer = nil
		}
		if !c.saving {
			break
		}
		c.saveDone.Wait()
	}
	if !c.alive || !c.enabled || c.pending == nil || c.pendingPersistedLocked() {
		c.mu.Unlock()
		return nil
	}
	cycle := c.beginSaveLocked()
	c.mu.Unlock()
	return c.finishSave(ctx, cycle)
}

// SetEnabled suppresses (or re-allows) all saves and status transitions.
// Disabling cancels a pending debounce timer.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled && c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
}

// Cancel drops a pending debounce timer without touching the status.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
}

// Teardown cancels all timers and suppresses every further status
// transition, including the one of a save currently in flight.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alive = false
	c.notifyQueue = nil
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	if c.revertTimer != nil {
		c.revertTimer.Stop()
		c.revertTimer = nil
	}
}

func (c *Controller) fire() {
	c.mu.Lock()
	c.debounceTimer = nil
	if !c.alive || !c.enabled {
		c.mu.Unlock()
		return
	}
	if c.saving {
		// save in flight, run a new cycle after the delay so the change
		// observed by this timer is not dropped
		c.debounceTimer = time.AfterFunc(c.debounceDelay, c.fire)
		c.mu.Unlock()
		return
	}
	if c.pending == nil || c.pendingPersistedLocked() {
		// a flush already wrote this snapshot
		c.mu.Unlock()
		return
	}
	cycle := c.beginSaveLocked()
	c.mu.Unlock()

	if err := c.finishSave(context.Background(), cycle); err != nil {
		slog.Warn("auto-save failed", slog.String("error", err.Error()))
	}
}

// pendingPersistedLocked reports whether the pending snapshot is already
// stored; caller holds c.mu.
func (c *Controller) pendingPersistedLocked() bool {
	return c.lastSnapshot != nil && c.lastSaved != nil && bytes.Equal(c.lastSnapshot, c.lastSaved)
}

type saveCycle struct {
	snapshot   types.DraftState
	encoded    []byte
	generation uint64
}

// beginSaveLocked claims the single save slot; caller holds c.mu and has
// checked alive, enabled and saving.
func (c *Controller) beginSaveLocked() saveCycle {
	c.saving = true
	c.generation++
	if c.revertTimer != nil {
		c.revertTimer.Stop()
		c.revertTimer = nil
	}
	c.status = STATUS_SAVING
	c.enqueueStatusLocked(STATUS_SAVING)
	return saveCycle{
		snapshot:   c.pending,
		encoded:    c.lastSnapshot,
		generation: c.generation,
	}
}

func (c *Controller) finishSave(ctx context.Context, cycle saveCycle) error {
	c.dispatchStatusNotifications()

	if c.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.saveTimeout)
		defer cancel()
	}
	err := c.save(ctx, cycle.snapshot)

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastSaved = cycle.encoded
	}
	c.saveDone.Broadcast()
	if !c.alive {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.status = STATUS_ERROR
		c.scheduleRevertLocked(cycle.generation, c.errorDisplayDuration)
	} else {
		c.status = STATUS_SAVED
		c.scheduleRevertLocked(cycle.generation, c.savedDisplayDuration)
	}
	c.enqueueStatusLocked(c.status)
	c.mu.Unlock()

	c.dispatchStatusNotifications()
	return err
}

// scheduleRevertLocked arms the auto-revert to idle. The generation check
// keeps a stale timer from overwriting the state of a newer save cycle.
func (c *Controller) scheduleRevertLocked(generation uint64, after time.Duration) {
	c.revertTimer = time.AfterFunc(after, func() {
		c.mu.Lock()
		if !c.alive || c.saving || c.generation != generation {
			c.mu.Unlock()
			return
		}
		if c.status != STATUS_SAVED && c.status != STATUS_ERROR {
			c.mu.Unlock()
			return
		}
		c.status = STATUS_IDLE
		c.enqueueStatusLocked(STATUS_IDLE)
		c.mu.Unlock()

		c.dispatchStatusNotifications()
	})
}

// enqueueStatusLocked records a status change for delivery; caller holds c.mu.
func (c *Controller) enqueueStatusLocked(status Status) {
	if c.onStatusChange == nil {
		return
	}
	c.notifyQueue = append(c.notifyQueue, status)
}

// dispatchStatusNotifications delivers queued status changes in the order
// they were decided. At most one goroutine drains at a time; a call that
// finds a drainer active returns, its entries are delivered by that drainer.
func (c *Controller) dispatchStatusNotifications() {
	c.mu.Lock()
	if c.notifying {
		c.mu.Unlock()
		return
	}
	c.notifying = true
	for len(c.notifyQueue) > 0 {
		status := c.notifyQueue[0]
		c.notifyQueue = c.notifyQueue[1:]
		listener := c.onStatusChange
		c.mu.Unlock()

		listener(status)

		c.mu.Lock()
	}
	c.notifying = false
	c.mu.Unlock()
}
