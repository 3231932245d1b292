package countdown

import (
	"fmt"
	"sync"
	"time"

	"hackclock/internal/core/model"
)

// Persister stores the main countdown between sessions.
type Persister interface {
	Load() (int, bool)
	Save(seconds int) error
}

// Config contains runtime options for Store.
type Config struct {
	Phases       []model.Phase
	MainDuration time.Duration
	TickInterval time.Duration
	Clock        Clock
}

// Store is the single source of truth for every countdown and running flag.
//
// Mutations are published in order: the persisted value is written and
// observers are called synchronously before the next mutation starts.
// Observers may call Snapshot but must not mutate the Store.
type Store struct {
	publishMu sync.Mutex
	mu        sync.Mutex

	phases      []model.Phase
	mainDefault int
	persister   Persister
	clock       Clock
	scheduler   *Scheduler

	mainRemaining  int
	mainRunning    bool
	phaseRemaining []int
	phaseRunning   []bool

	observers    map[int]func(Event)
	nextObserver int
	subscribers  []chan Event
	closed       bool
}

// New creates a Store. The main countdown starts from the persisted value
// when one is available, otherwise from the configured main duration.
// A nil persister keeps the value in memory only.
func New(persister Persister, options Config) *Store {
	if options.Phases == nil {
		options.Phases = model.DefaultPhases()
	}
	if options.MainDuration <= 0 {
		options.MainDuration = model.DefaultMainDuration
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if persister == nil {
		persister = &memoryPersister{}
	}

	store := &Store{
		phases:      append([]model.Phase(nil), options.Phases...),
		mainDefault: int(options.MainDuration / time.Second),
		persister:   persister,
		clock:       options.Clock,
		observers:   make(map[int]func(Event)),
	}
	store.scheduler = NewScheduler(options.Clock, options.TickInterval, store.tick)
	store.resetLocked()

	if saved, ok := persister.Load(); ok && saved >= 0 {
		store.mainRemaining = saved
	}
	return store
}

// Phases returns the configured phase list.
func (store *Store) Phases() []model.Phase {
	return append([]model.Phase(nil), store.phases...)
}

// Snapshot returns a copy of the current state.
func (store *Store) Snapshot() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.snapshotLocked()
}

// ActiveCountdowns lists the countdowns that currently have a ticking task.
func (store *Store) ActiveCountdowns() []CountdownID {
	return store.scheduler.ActiveIDs()
}

// ToggleMain starts or pauses the main countdown.
func (store *Store) ToggleMain() {
	store.publishMu.Lock()
	defer store.publishMu.Unlock()

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return
	}
	store.mainRunning = !store.mainRunning
	store.syncTaskLocked(MainCountdown, store.mainRunning)
	event := store.eventLocked(EventStateChange, MainCountdown)
	store.mu.Unlock()

	store.publish(event, false)
}

// TogglePhase starts or pauses the phase at index. It panics if index is
// outside the phase list.
func (store *Store) TogglePhase(index int) {
	if index < 0 || index >= len(store.phases) {
		panic(fmt.Sprintf("countdown: phase index %d out of range [0,%d)", index, len(store.phases)))
	}

	store.publishMu.Lock()
	defer store.publishMu.Unlock()

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return
	}
	store.phaseRunning[index] = !store.phaseRunning[index]
	store.syncTaskLocked(PhaseCountdown(index), store.phaseRunning[index])
	event := store.eventLocked(EventStateChange, PhaseCountdown(index))
	store.mu.Unlock()

	store.publish(event, false)
}

// Reset stops every countdown and restores startup defaults, ignoring any
// persisted value, then persists the default main duration.
func (store *Store) Reset() {
	store.publishMu.Lock()
	defer store.publishMu.Unlock()

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return
	}
	store.scheduler.StopAll()
	store.resetLocked()
	event := store.eventLocked(EventReset, MainCountdown)
	store.mu.Unlock()

	store.publish(event, true)
}

// Observe registers fn to be called after every mutation. The returned
// function removes it.
func (store *Store) Observe(fn func(Event)) func() {
	store.mu.Lock()
	defer store.mu.Unlock()

	id := store.nextObserver
	store.nextObserver++
	store.observers[id] = fn

	return func() {
		store.mu.Lock()
		delete(store.observers, id)
		store.mu.Unlock()
	}
}

// Subscribe registers a new observer channel. Events are dropped when the
// channel buffer is full. The channel is closed by Close.
func (store *Store) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		close(ch)
		return ch
	}
	store.subscribers = append(store.subscribers, ch)
	store.mu.Unlock()

	store.Observe(func(event Event) {
		select {
		case ch <- event:
		default:
		}
	})
	return ch
}

// Close stops every task and closes subscriber channels. Later mutations
// are ignored.
func (store *Store) Close() {
	store.publishMu.Lock()
	defer store.publishMu.Unlock()

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return
	}
	store.closed = true
	store.scheduler.StopAll()
	subscribers := store.subscribers
	store.subscribers = nil
	store.observers = make(map[int]func(Event))
	store.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

func (store *Store) tick(tick Tick) {
	store.publishMu.Lock()
	defer store.publishMu.Unlock()

	store.mu.Lock()
	if store.closed || !store.scheduler.Current(tick) {
		store.mu.Unlock()
		return
	}

	changed := false
	if tick.ID.IsMain() {
		changed = decrement(&store.mainRemaining)
	} else {
		changed = decrement(&store.phaseRemaining[int(tick.ID)])
	}
	if !changed {
		store.mu.Unlock()
		return
	}
	event := store.eventLocked(EventTick, tick.ID)
	store.mu.Unlock()

	store.publish(event, tick.ID.IsMain())
}

func (store *Store) syncTaskLocked(id CountdownID, running bool) {
	if running {
		store.scheduler.Start(id)
		return
	}
	store.scheduler.Stop(id)
}

func (store *Store) resetLocked() {
	store.mainRemaining = store.mainDefault
	store.mainRunning = false
	store.phaseRemaining = make([]int, len(store.phases))
	store.phaseRunning = make([]bool, len(store.phases))
	for index, phase := range store.phases {
		store.phaseRemaining[index] = phase.Seconds()
	}
}

func (store *Store) snapshotLocked() Snapshot {
	return Snapshot{
		MainRemaining:  store.mainRemaining,
		MainRunning:    store.mainRunning,
		PhaseRemaining: append([]int(nil), store.phaseRemaining...),
		PhaseRunning:   append([]bool(nil), store.phaseRunning...),
	}
}

func (store *Store) eventLocked(eventType EventType, source CountdownID) Event {
	return Event{
		Type:     eventType,
		Source:   source,
		Snapshot: store.snapshotLocked(),
		At:       store.clock.Now(),
	}
}

// publish must be called with publishMu held and mu released.
func (store *Store) publish(event Event, persist bool) {
	var saveErr error
	if persist {
		saveErr = store.persister.Save(event.Snapshot.MainRemaining)
	}

	store.deliver(event)
	if saveErr != nil {
		store.deliver(Event{
			Type:     EventPersistError,
			Source:   MainCountdown,
			Snapshot: event.Snapshot,
			Err:      fmt.Errorf("persist main countdown: %w", saveErr),
			At:       event.At,
		})
	}
}

func (store *Store) deliver(event Event) {
	store.mu.Lock()
	observers := make([]func(Event), 0, len(store.observers))
	for id := 0; id < store.nextObserver; id++ {
		if fn, ok := store.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	store.mu.Unlock()

	for _, fn := range observers {
		fn(event)
	}
}

func decrement(remaining *int) bool {
	if *remaining <= 0 {
		*remaining = 0
		return false
	}
	*remaining--
	return true
}

type memoryPersister struct {
	mu    sync.Mutex
	value int
	set   bool
}

func (persister *memoryPersister) Load() (int, bool) {
	persister.mu.Lock()
	defer persister.mu.Unlock()
	return persister.value, persister.set
}

func (persister *memoryPersister) Save(seconds int) error {
	persister.mu.Lock()
	defer persister.mu.Unlock()
	persister.value = seconds
	persister.set = true
	return nil
}
