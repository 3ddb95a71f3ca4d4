package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"go.uber.org/multierr"
)

var (
	// ErrStockLimit is returned when an increment would push the quantity
	// past the variant's stock. No backend call is made.
	ErrStockLimit = pkgerrors.New(pkgerrors.CodeValidation, "quantity already at available stock")

	// ErrLineNotFound is returned for mutations against an unknown line id.
	ErrLineNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
)

// Confirmer gates destructive actions behind an explicit user decision.
type Confirmer interface {
	ConfirmRemoval(ctx context.Context, line Line) bool
}

// Notifier surfaces failure messages to the user. The engine calls it
// exactly once per failed mutation.
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

// Engine owns the reconciled cart for the lifetime of a cart screen. Every
// mutation is optimistic: local state changes first, the backend call
// follows, and a failure discards local state in favor of a fresh
// reconciled fetch. Mutations on the same line are serialized; distinct
// lines proceed independently.
type Engine struct {
	api     API
	confirm Confirmer
	notify  Notifier
	logg    *logger.Logger

	mu     sync.RWMutex
	lines  []Line
	states map[string]enums.LineSyncState

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewEngine(api API, confirm Confirmer, notify Notifier, logg *logger.Logger) (*Engine, error) {
	if api == nil {
		return nil, fmt.Errorf("cart api required")
	}
	if confirm == nil {
		return nil, fmt.Errorf("confirmer required")
	}
	if notify == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{
		api:     api,
		confirm: confirm,
		notify:  notify,
		logg:    logg,
		states:  map[string]enums.LineSyncState{},
		locks:   map[string]*sync.Mutex{},
	}, nil
}

// Refresh replaces local state with the reconciled backend view. Called on
// screen activation and after every failed mutation.
func (e *Engine) Refresh(ctx context.Context) error {
	raw, err := e.api.FetchLines(ctx)
	if err != nil {
		return err
	}
	merged := Reconcile(raw)

	e.mu.Lock()
	e.lines = merged
	e.states = make(map[string]enums.LineSyncState, len(merged))
	for _, line := range merged {
		e.states[line.ID] = enums.LineSyncStateSynced
	}
	e.locksMu.Lock()
	for id := range e.locks {
		if _, ok := e.states[id]; !ok {
			delete(e.locks, id)
		}
	}
	e.locksMu.Unlock()
	e.mu.Unlock()

	e.logg.Debug(e.logg.WithField(ctx, "lines", len(merged)), "cart refreshed")
	return nil
}

// Lines returns a copy of the reconciled cart.
func (e *Engine) Lines() []Line {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Line looks up a single line by id.
func (e *Engine) Line(lineID string) (Line, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if idx := e.indexOf(lineID); idx >= 0 {
		return e.lines[idx], true
	}
	return Line{}, false
}

// SyncState reports where a line sits in the optimistic update cycle.
func (e *Engine) SyncState(lineID string) enums.LineSyncState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if state, ok := e.states[lineID]; ok {
		return state
	}
	return enums.LineSyncStateSynced
}

// Add puts a variant into the cart. Quantity bounds are enforced locally
// against the given stock before any call is issued. The cart view is not
// updated optimistically; the next screen activation refetches.
func (e *Engine) Add(ctx context.Context, variantID string, quantity, stock int) error {
	if variantID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if quantity > stock {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds available stock")
	}
	return e.api.Add(ctx, variantID, quantity)
}

// Increase bumps a line's quantity by one, refusing locally once the
// variant's stock ceiling is reached.
func (e *Engine) Increase(ctx context.Context, lineID string) error {
	lock := e.lineLock(lineID)
	lock.Lock()
	defer lock.Unlock()

	e.mu.Lock()
	idx := e.indexOf(lineID)
	if idx < 0 {
		e.mu.Unlock()
		return ErrLineNotFound
	}
	if e.lines[idx].AtStockCeiling() {
		e.mu.Unlock()
		return ErrStockLimit
	}
	e.lines[idx].Quantity++
	e.states[lineID] = enums.LineSyncStatePending
	e.mu.Unlock()

	return e.settle(ctx, lineID, enums.LineMutationIncrease, func() error {
		return e.api.Increase(ctx, lineID)
	})
}

// Decrease lowers a line's quantity by one. A quantity-1 line routes to
// Remove instead; quantities below one are not representable.
func (e *Engine) Decrease(ctx context.Context, lineID string) error {
	lock := e.lineLock(lineID)
	lock.Lock()

	e.mu.Lock()
	idx := e.indexOf(lineID)
	if idx < 0 {
		e.mu.Unlock()
		lock.Unlock()
		return ErrLineNotFound
	}
	if e.lines[idx].Quantity <= 1 {
		e.mu.Unlock()
		lock.Unlock()
		return e.Remove(ctx, lineID)
	}
	e.lines[idx].Quantity--
	e.states[lineID] = enums.LineSyncStatePending
	e.mu.Unlock()

	err := e.settle(ctx, lineID, enums.LineMutationDecrease, func() error {
		return e.api.Decrease(ctx, lineID)
	})
	lock.Unlock()
	return err
}

// Remove deletes a line after explicit user confirmation. Declining leaves
// local state untouched and issues no call.
func (e *Engine) Remove(ctx context.Context, lineID string) error {
	lock := e.lineLock(lineID)
	lock.Lock()
	defer lock.Unlock()

	e.mu.RLock()
	idx := e.indexOf(lineID)
	if idx < 0 {
		e.mu.RUnlock()
		return ErrLineNotFound
	}
	line := e.lines[idx]
	e.mu.RUnlock()

	if !e.confirm.ConfirmRemoval(ctx, line) {
		return nil
	}

	e.mu.Lock()
	idx = e.indexOf(lineID)
	if idx < 0 {
		e.mu.Unlock()
		return ErrLineNotFound
	}
	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	delete(e.states, lineID)
	e.mu.Unlock()

	return e.settle(ctx, lineID, enums.LineMutationRemove, func() error {
		return e.api.Remove(ctx, lineID)
	})
}

// ToggleChecked flips a line's checkout selection flag.
func (e *Engine) ToggleChecked(ctx context.Context, lineID string) error {
	lock := e.lineLock(lineID)
	lock.Lock()
	defer lock.Unlock()

	e.mu.Lock()
	idx := e.indexOf(lineID)
	if idx < 0 {
		e.mu.Unlock()
		return ErrLineNotFound
	}
	e.lines[idx].Checked = !e.lines[idx].Checked
	e.states[lineID] = enums.LineSyncStatePending
	e.mu.Unlock()

	return e.settle(ctx, lineID, enums.LineMutationToggle, func() error {
		return e.api.ToggleChecked(ctx, lineID)
	})
}

// settle runs the backend call behind an already-applied optimistic
// mutation. Success makes local state authoritative without a refetch;
// failure discards it, refetches, and notifies the user once.
func (e *Engine) settle(ctx context.Context, lineID string, kind enums.LineMutation, call func() error) error {
	if err := call(); err != nil {
		return e.rollback(ctx, lineID, kind, err)
	}

	e.mu.Lock()
	if _, ok := e.states[lineID]; ok {
		e.states[lineID] = enums.LineSyncStateSynced
	}
	e.mu.Unlock()
	return nil
}

// setState writes a line's sync state only while the line is still part of
// the cart, so removed lines never re-enter the state map.
func (e *Engine) setState(lineID string, state enums.LineSyncState) {
	e.mu.Lock()
	if e.indexOf(lineID) >= 0 {
		e.states[lineID] = state
	}
	e.mu.Unlock()
}

func (e *Engine) rollback(ctx context.Context, lineID string, kind enums.LineMutation, cause error) error {
	e.setState(lineID, enums.LineSyncStateReverting)

	logCtx := e.logg.WithFields(ctx, map[string]any{"line_id": lineID, "mutation": kind.String()})
	e.logg.Error(logCtx, "cart mutation rejected, reverting", cause)

	err := cause
	if refreshErr := e.Refresh(ctx); refreshErr != nil {
		// The optimistic state is already discarded from the caller's point
		// of view; surface both failures.
		e.logg.Error(logCtx, "rollback refetch failed", refreshErr)
		err = multierr.Append(cause, refreshErr)
		e.setState(lineID, enums.LineSyncStateSynced)
	}

	e.notify.NotifyError(ctx, pkgerrors.UserMessage(cause))
	return err
}

func (e *Engine) indexOf(lineID string) int {
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (e *Engine) lineLock(lineID string) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	if lock, ok := e.locks[lineID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	e.locks[lineID] = lock
	return lock
}
