package countdown_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"hackclock/internal/core/countdown"
	"hackclock/internal/core/model"
	"hackclock/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPhaseSeconds = []int{10800, 10800, 10800, 21600, 21600, 10800, 7200}

type recordingPersister struct {
	mu     sync.Mutex
	value  int
	ok     bool
	saves  []int
	failOn error
}

func (persister *recordingPersister) Load() (int, bool) {
	persister.mu.Lock()
	defer persister.mu.Unlock()
	return persister.value, persister.ok
}

func (persister *recordingPersister) Save(seconds int) error {
	persister.mu.Lock()
	defer persister.mu.Unlock()
	if persister.failOn != nil {
		return persister.failOn
	}
	persister.value = seconds
	persister.ok = true
	persister.saves = append(persister.saves, seconds)
	return nil
}

func newTestStore(t *testing.T, persister countdown.Persister) (*countdown.Store, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock()
	store := countdown.New(persister, countdown.Config{Clock: clock, TickInterval: time.Second})
	t.Cleanup(store.Close)
	return store, clock
}

func TestNew_Defaults(t *testing.T) {
	store, _ := newTestStore(t, nil)

	snapshot := store.Snapshot()
	assert.Equal(t, 86400, snapshot.MainRemaining)
	assert.False(t, snapshot.MainRunning)
	assert.Equal(t, defaultPhaseSeconds, snapshot.PhaseRemaining)
	assert.Equal(t, make([]bool, 7), snapshot.PhaseRunning)
	assert.Len(t, store.Phases(), 7)
	assert.Empty(t, store.ActiveCountdowns())
}

func TestNew_LoadsPersistedMain(t *testing.T) {
	persister := &recordingPersister{value: 1234, ok: true}
	store, _ := newTestStore(t, persister)

	assert.Equal(t, 1234, store.Snapshot().MainRemaining)
	assert.Empty(t, persister.saves, "an unchanged startup value is not re-written")
}

func TestNew_IgnoresNegativePersistedMain(t *testing.T) {
	store, _ := newTestStore(t, &recordingPersister{value: -3, ok: true})
	assert.Equal(t, 86400, store.Snapshot().MainRemaining)
}

func TestToggleMain_TicksAndPersists(t *testing.T) {
	persister := &recordingPersister{}
	store, clock := newTestStore(t, persister)

	store.ToggleMain()
	assert.Equal(t, []countdown.CountdownID{countdown.MainCountdown}, store.ActiveCountdowns())
	clock.Advance(3 * time.Second)

	assert.Equal(t, 86397, store.Snapshot().MainRemaining)
	assert.Equal(t, []int{86399, 86398, 86397}, persister.saves)
}

func TestToggleMain_PauseTearsDownTask(t *testing.T) {
	store, clock := newTestStore(t, nil)

	store.ToggleMain()
	clock.Advance(2 * time.Second)
	store.ToggleMain()
	assert.Empty(t, store.ActiveCountdowns())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 86398, store.Snapshot().MainRemaining)
	assert.Zero(t, clock.Pending())
}

func TestToggle_EvenCountRestoresState(t *testing.T) {
	store, _ := newTestStore(t, nil)
	before := store.Snapshot()

	for i := 0; i < 4; i++ {
		store.ToggleMain()
		store.TogglePhase(5)
	}

	assert.Equal(t, before, store.Snapshot())
}

func TestTogglePhase_TicksIndependently(t *testing.T) {
	store, clock := newTestStore(t, nil)

	store.TogglePhase(2)
	clock.Advance(5 * time.Second)

	snapshot := store.Snapshot()
	want := append([]int(nil), defaultPhaseSeconds...)
	want[2] -= 5
	assert.Equal(t, want, snapshot.PhaseRemaining)
	assert.Equal(t, 86400, snapshot.MainRemaining)
	assert.True(t, snapshot.PhaseRunning[2])
	assert.False(t, snapshot.MainRunning)
}

func TestTogglePhase_AnySubsetRuns(t *testing.T) {
	store, clock := newTestStore(t, nil)

	store.TogglePhase(0)
	store.TogglePhase(6)
	store.ToggleMain()
	clock.Advance(10 * time.Second)
	store.TogglePhase(0)
	clock.Advance(5 * time.Second)

	snapshot := store.Snapshot()
	assert.Equal(t, 10800-10, snapshot.PhaseRemaining[0])
	assert.Equal(t, 7200-15, snapshot.PhaseRemaining[6])
	assert.Equal(t, 86400-15, snapshot.MainRemaining)
	assert.Equal(t, []countdown.CountdownID{countdown.MainCountdown, 6}, store.ActiveCountdowns())
}

func TestTogglePhase_OutOfRangePanics(t *testing.T) {
	store, _ := newTestStore(t, nil)

	assert.Panics(t, func() { store.TogglePhase(7) })
	assert.Panics(t, func() { store.TogglePhase(-1) })
}

func TestMain_SaturatesAtZeroAndKeepsRunning(t *testing.T) {
	persister := &recordingPersister{}
	store, clock := newTestStore(t, persister)

	store.ToggleMain()
	clock.Advance(86400 * time.Second)
	assert.Equal(t, 0, store.Snapshot().MainRemaining)

	clock.Advance(time.Second)
	snapshot := store.Snapshot()
	assert.Equal(t, 0, snapshot.MainRemaining)
	assert.True(t, snapshot.MainRunning)
	assert.True(t, snapshot.MainDone())
	assert.Equal(t, []countdown.CountdownID{countdown.MainCountdown}, store.ActiveCountdowns())
	assert.Len(t, persister.saves, 86400, "no-op ticks at zero are not persisted")
}

func TestPhase_SaturatesAtZero(t *testing.T) {
	clock := testutil.NewFakeClock()
	store := countdown.New(nil, countdown.Config{
		Phases: []model.Phase{{Name: "short", DurationHours: 0}, {Name: "other", DurationHours: 1}},
		Clock:  clock,
	})
	defer store.Close()

	store.TogglePhase(0)
	clock.Advance(3 * time.Second)

	snapshot := store.Snapshot()
	assert.Equal(t, []int{0, 3600}, snapshot.PhaseRemaining)
	assert.True(t, snapshot.PhaseDone(0))
	assert.True(t, snapshot.PhaseRunning[0])
}

func TestRemainingNeverNegative(t *testing.T) {
	clock := testutil.NewFakeClock()
	store := countdown.New(&recordingPersister{value: 3, ok: true}, countdown.Config{
		Phases: []model.Phase{{Name: "a", DurationHours: 0}, {Name: "b", DurationHours: 0}},
		Clock:  clock,
	})
	defer store.Close()

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 200; step++ {
		switch rng.Intn(4) {
		case 0:
			store.ToggleMain()
		case 1:
			store.TogglePhase(rng.Intn(2))
		default:
			clock.Advance(time.Duration(rng.Intn(3)) * time.Second)
		}
		snapshot := store.Snapshot()
		require.GreaterOrEqual(t, snapshot.MainRemaining, 0)
		for _, remaining := range snapshot.PhaseRemaining {
			require.GreaterOrEqual(t, remaining, 0)
		}
		require.Len(t, snapshot.PhaseRemaining, 2)
		require.Len(t, snapshot.PhaseRunning, 2)
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	persister := &recordingPersister{value: 500, ok: true}
	store, clock := newTestStore(t, persister)

	store.ToggleMain()
	store.TogglePhase(1)
	store.TogglePhase(4)
	clock.Advance(30 * time.Second)

	store.Reset()
	snapshot := store.Snapshot()
	assert.Equal(t, 86400, snapshot.MainRemaining)
	assert.Equal(t, defaultPhaseSeconds, snapshot.PhaseRemaining)
	assert.False(t, snapshot.MainRunning)
	assert.Equal(t, make([]bool, 7), snapshot.PhaseRunning)
	assert.Empty(t, store.ActiveCountdowns())
	assert.Equal(t, 86400, persister.saves[len(persister.saves)-1])

	clock.Advance(5 * time.Second)
	assert.Equal(t, snapshot, store.Snapshot(), "no ticks after reset")
}

func TestReset_EventSnapshotIsComplete(t *testing.T) {
	store, clock := newTestStore(t, nil)
	var events []countdown.Event
	store.Observe(func(event countdown.Event) {
		events = append(events, event)
	})

	store.TogglePhase(3)
	clock.Advance(time.Second)
	store.Reset()

	require.Len(t, events, 3)
	assert.Equal(t, countdown.EventStateChange, events[0].Type)
	assert.Equal(t, countdown.PhaseCountdown(3), events[0].Source)
	assert.Equal(t, countdown.EventTick, events[1].Type)
	assert.Equal(t, 21599, events[1].Snapshot.PhaseRemaining[3])
	assert.Equal(t, countdown.EventReset, events[2].Type)
	assert.Equal(t, defaultPhaseSeconds, events[2].Snapshot.PhaseRemaining)
	assert.False(t, events[2].Snapshot.PhaseRunning[3])
}

func TestPersistedRoundTrip(t *testing.T) {
	persister := &recordingPersister{}
	store, clock := newTestStore(t, persister)

	store.ToggleMain()
	clock.Advance(1234 * time.Second)
	want := store.Snapshot().MainRemaining
	store.Close()

	restarted := countdown.New(persister, countdown.Config{Clock: clock})
	defer restarted.Close()
	assert.Equal(t, want, restarted.Snapshot().MainRemaining)
	assert.Equal(t, 86400-1234, want)
	assert.False(t, restarted.Snapshot().MainRunning)
}

func TestPersistError_IsPublished(t *testing.T) {
	persister := &recordingPersister{failOn: errors.New("disk full")}
	store, _ := newTestStore(t, persister)
	var errs []error
	store.Observe(func(event countdown.Event) {
		if event.Type == countdown.EventPersistError {
			errs = append(errs, event.Err)
		}
	})

	store.Reset()

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "disk full")
	assert.Equal(t, 86400, store.Snapshot().MainRemaining)
}

func TestObserve_Cancel(t *testing.T) {
	store, _ := newTestStore(t, nil)
	calls := 0
	cancel := store.Observe(func(countdown.Event) { calls++ })

	store.ToggleMain()
	cancel()
	store.ToggleMain()

	assert.Equal(t, 1, calls)
}

func TestObserve_CanReadSnapshot(t *testing.T) {
	store, clock := newTestStore(t, nil)
	var seen []int
	store.Observe(func(countdown.Event) {
		seen = append(seen, store.Snapshot().MainRemaining)
	})

	store.ToggleMain()
	clock.Advance(2 * time.Second)

	assert.Equal(t, []int{86400, 86399, 86398}, seen)
}

func TestSubscribe_DeliversAndCloses(t *testing.T) {
	store, _ := newTestStore(t, nil)
	events := store.Subscribe(4)

	store.TogglePhase(0)
	event := <-events
	assert.Equal(t, countdown.EventStateChange, event.Type)
	assert.True(t, event.Snapshot.PhaseRunning[0])

	store.Close()
	_, open := <-events
	assert.False(t, open)

	store.ToggleMain()
	assert.False(t, store.Snapshot().MainRunning, "mutations after close are ignored")
}

func TestSubscribe_DropsWhenFull(t *testing.T) {
	store, _ := newTestStore(t, nil)
	events := store.Subscribe(1)

	store.ToggleMain()
	store.ToggleMain()
	store.ToggleMain()

	assert.Len(t, events, 1)
}

func TestStore_SystemClockTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("wall clock test")
	}
	store := countdown.New(nil, countdown.Config{TickInterval: 10 * time.Millisecond})
	defer store.Close()

	store.TogglePhase(6)
	require.Eventually(t, func() bool {
		return store.Snapshot().PhaseRemaining[6] <= 7200-3
	}, 2*time.Second, 5*time.Millisecond)

	store.TogglePhase(6)
	paused := store.Snapshot().PhaseRemaining[6]
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, paused, store.Snapshot().PhaseRemaining[6])
}
