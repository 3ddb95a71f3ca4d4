package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	mu          sync.Mutex
	serverLines []Line
	calls       []string

	fetchErr    error
	increaseErr error
	decreaseErr error
	removeErr   error
	toggleErr   error
	addErr      error

	callDelay   time.Duration
	inFlight    int32
	maxInFlight int32
}

// trackInFlight records how many mutation calls overlap, holding each call
// open for callDelay so concurrent callers would be observed.
func (s *stubAPI) trackInFlight() func() {
	current := atomic.AddInt32(&s.inFlight, 1)
	for {
		max := atomic.LoadInt32(&s.maxInFlight)
		if current <= max || atomic.CompareAndSwapInt32(&s.maxInFlight, max, current) {
			break
		}
	}
	if s.callDelay > 0 {
		time.Sleep(s.callDelay)
	}
	return func() { atomic.AddInt32(&s.inFlight, -1) }
}

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAPI) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubAPI) FetchLines(ctx context.Context) ([]Line, error) {
	s.record("fetch")
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.serverLines))
	copy(out, s.serverLines)
	return out, nil
}

func (s *stubAPI) Add(ctx context.Context, variantID string, quantity int) error {
	s.record("add:" + variantID)
	return s.addErr
}

func (s *stubAPI) serverLine(lineID string) *Line {
	for i := range s.serverLines {
		if s.serverLines[i].ID == lineID {
			return &s.serverLines[i]
		}
	}
	return nil
}

func (s *stubAPI) Increase(ctx context.Context, lineID string) error {
	s.record("increase:" + lineID)
	defer s.trackInFlight()()
	if s.increaseErr != nil {
		return s.increaseErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.serverLine(lineID); line != nil {
		line.Quantity++
	}
	return nil
}

func (s *stubAPI) Decrease(ctx context.Context, lineID string) error {
	s.record("decrease:" + lineID)
	if s.decreaseErr != nil {
		return s.decreaseErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.serverLine(lineID); line != nil {
		line.Quantity--
	}
	return nil
}

func (s *stubAPI) Remove(ctx context.Context, lineID string) error {
	s.record("remove:" + lineID)
	if s.removeErr != nil {
		return s.removeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.serverLines {
		if s.serverLines[i].ID == lineID {
			s.serverLines = append(s.serverLines[:i], s.serverLines[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubAPI) ToggleChecked(ctx context.Context, lineID string) error {
	s.record("toggle:" + lineID)
	if s.toggleErr != nil {
		return s.toggleErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.serverLine(lineID); line != nil {
		line.Checked = !line.Checked
	}
	return nil
}

type stubConfirmer struct {
	answer bool
	asked  int
}

func (s *stubConfirmer) ConfirmRemoval(ctx context.Context, line Line) bool {
	s.asked++
	return s.answer
}

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) NotifyError(ctx context.Context, message string) {
	s.messages = append(s.messages, message)
}

func testEngine(t *testing.T, api *stubAPI, confirm *stubConfirmer, notify *stubNotifier) *Engine {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	engine, err := NewEngine(api, confirm, notify, logg)
	require.NoError(t, err)
	return engine
}

func seededAPI() *stubAPI {
	return &stubAPI{serverLines: []Line{
		{ID: "l1", Quantity: 2, Checked: true, Variant: &VariantSnapshot{ID: "var-a", Price: decimal.NewFromInt(10000), Stock: 5}},
		{ID: "l2", Quantity: 1, Checked: false, Variant: &VariantSnapshot{ID: "var-b", Price: decimal.NewFromInt(5000), Stock: 3}},
	}}
}

func TestRefreshReconcilesDuplicates(t *testing.T) {
	api := seededAPI()
	api.serverLines = append(api.serverLines, Line{
		ID: "l3", Quantity: 4,
		Variant: &VariantSnapshot{ID: "var-a", Price: decimal.NewFromInt(10000), Stock: 10},
	})
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})

	require.NoError(t, engine.Refresh(context.Background()))

	lines := engine.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 6, lines[0].Quantity)
}

func TestIncreaseSuccessKeepsLocalStateWithoutRefetch(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.Increase(context.Background(), "l1"))

	line, ok := engine.Line("l1")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, enums.LineSyncStateSynced, engine.SyncState("l1"))
	assert.Equal(t, []string{"fetch", "increase:l1"}, api.Calls(), "success must not trigger a refetch")
}

func TestIncreaseFailureRevertsToServerStateAndNotifiesOnce(t *testing.T) {
	api := seededAPI()
	api.increaseErr = pkgerrors.New(pkgerrors.CodeRejected, "stok tidak mencukupi")
	notify := &stubNotifier{}
	engine := testEngine(t, api, &stubConfirmer{}, notify)
	require.NoError(t, engine.Refresh(context.Background()))

	err := engine.Increase(context.Background(), "l1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRejected, pkgerrors.CodeOf(err))

	line, ok := engine.Line("l1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity, "quantity reverts to the server's last known value")
	assert.Equal(t, enums.LineSyncStateSynced, engine.SyncState("l1"))
	assert.Equal(t, []string{"stok tidak mencukupi"}, notify.messages, "exactly one notification per failure")
}

func TestIncreaseRefusedAtStockCeiling(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	for i := 0; i < 3; i++ {
		require.NoError(t, engine.Increase(context.Background(), "l1"))
	}
	line, _ := engine.Line("l1")
	require.Equal(t, 5, line.Quantity)

	callsBefore := len(api.Calls())
	err := engine.Increase(context.Background(), "l1")
	assert.ErrorIs(t, err, ErrStockLimit)

	line, _ = engine.Line("l1")
	assert.Equal(t, 5, line.Quantity, "quantity unchanged after refused increment")
	assert.Len(t, api.Calls(), callsBefore, "no network call for a guard-refused mutation")
}

func TestDecreaseAtQuantityOneRoutesToRemove(t *testing.T) {
	api := seededAPI()
	confirm := &stubConfirmer{answer: true}
	engine := testEngine(t, api, confirm, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.Decrease(context.Background(), "l2"))

	assert.Equal(t, 1, confirm.asked)
	_, ok := engine.Line("l2")
	assert.False(t, ok)
	assert.Contains(t, api.Calls(), "remove:l2")
	assert.NotContains(t, api.Calls(), "decrease:l2", "no decrease issued for a quantity-1 line")
}

func TestDeclinedRemovalLeavesStateUntouched(t *testing.T) {
	api := seededAPI()
	confirm := &stubConfirmer{answer: false}
	engine := testEngine(t, api, confirm, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.Decrease(context.Background(), "l2"))

	assert.Equal(t, 1, confirm.asked)
	line, ok := engine.Line("l2")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, []string{"fetch"}, api.Calls(), "declined confirmation issues no call")
}

func TestDecreaseAboveOneIsOptimistic(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.Decrease(context.Background(), "l1"))

	line, _ := engine.Line("l1")
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, []string{"fetch", "decrease:l1"}, api.Calls())
}

func TestRemoveFailureRestoresLine(t *testing.T) {
	api := seededAPI()
	api.removeErr = pkgerrors.New(pkgerrors.CodeNetwork, "")
	notify := &stubNotifier{}
	engine := testEngine(t, api, &stubConfirmer{answer: true}, notify)
	require.NoError(t, engine.Refresh(context.Background()))

	err := engine.Remove(context.Background(), "l1")
	require.Error(t, err)

	line, ok := engine.Line("l1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Len(t, notify.messages, 1)
}

func TestToggleCheckedFailureReverts(t *testing.T) {
	api := seededAPI()
	api.toggleErr = pkgerrors.New(pkgerrors.CodeRejected, "gagal mengubah status item")
	notify := &stubNotifier{}
	engine := testEngine(t, api, &stubConfirmer{}, notify)
	require.NoError(t, engine.Refresh(context.Background()))

	err := engine.ToggleChecked(context.Background(), "l2")
	require.Error(t, err)

	line, _ := engine.Line("l2")
	assert.False(t, line.Checked, "checked flag reverts on failure")
	assert.Equal(t, []string{"gagal mengubah status item"}, notify.messages)
}

func TestToggleCheckedSuccess(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.ToggleChecked(context.Background(), "l2"))
	line, _ := engine.Line("l2")
	assert.True(t, line.Checked)
}

func TestRollbackRefetchFailureSurfacesBothErrors(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	cause := pkgerrors.New(pkgerrors.CodeRejected, "nope")
	api.increaseErr = cause
	api.fetchErr = errors.New("backend down")

	err := engine.Increase(context.Background(), "l1")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "backend down")
}

func TestAddGuards(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})

	err := engine.Add(context.Background(), "var-a", 0, 5)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	err = engine.Add(context.Background(), "var-a", 6, 5)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	err = engine.Add(context.Background(), "", 1, 5)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	assert.Empty(t, api.Calls(), "guard violations never reach the network")

	require.NoError(t, engine.Add(context.Background(), "var-a", 2, 5))
	assert.Equal(t, []string{"add:var-a"}, api.Calls())
}

func TestSameLineMutationsAreSerialized(t *testing.T) {
	api := seededAPI()
	api.callDelay = 20 * time.Millisecond
	engine := testEngine(t, api, &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, engine.Increase(context.Background(), "l1"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.maxInFlight),
		"calls for one line never overlap")
	line, ok := engine.Line("l1")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)
}

func TestRollbackAfterFailedRemoveDoesNotResurrectState(t *testing.T) {
	api := seededAPI()
	api.removeErr = pkgerrors.New(pkgerrors.CodeNetwork, "")
	notify := &stubNotifier{}
	engine := testEngine(t, api, &stubConfirmer{answer: true}, notify)
	require.NoError(t, engine.Refresh(context.Background()))

	api.fetchErr = errors.New("backend down")
	err := engine.Remove(context.Background(), "l1")
	require.Error(t, err)

	_, ok := engine.Line("l1")
	require.False(t, ok, "line stays removed locally when the refetch fails")

	engine.mu.RLock()
	_, tracked := engine.states["l1"]
	engine.mu.RUnlock()
	assert.False(t, tracked, "no sync state entry for a line that is gone")
	assert.Len(t, notify.messages, 1)
}

func TestRefreshPrunesLocksForDepartedLines(t *testing.T) {
	api := seededAPI()
	engine := testEngine(t, api, &stubConfirmer{answer: true}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	require.NoError(t, engine.Remove(context.Background(), "l2"))
	require.NoError(t, engine.Refresh(context.Background()))

	engine.locksMu.Lock()
	_, held := engine.locks["l2"]
	engine.locksMu.Unlock()
	assert.False(t, held, "locks for departed lines are released on refresh")
}

func TestMutationOnUnknownLine(t *testing.T) {
	engine := testEngine(t, seededAPI(), &stubConfirmer{}, &stubNotifier{})
	require.NoError(t, engine.Refresh(context.Background()))

	assert.ErrorIs(t, engine.Increase(context.Background(), "ghost"), ErrLineNotFound)
	assert.ErrorIs(t, engine.Decrease(context.Background(), "ghost"), ErrLineNotFound)
	assert.ErrorIs(t, engine.Remove(context.Background(), "ghost"), ErrLineNotFound)
	assert.ErrorIs(t, engine.ToggleChecked(context.Background(), "ghost"), ErrLineNotFound)
}
