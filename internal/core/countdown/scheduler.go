package countdown

import (
	"sort"
	"sync"
	"time"
)

// Tick is one firing of a scheduled countdown task.
type Tick struct {
	ID         CountdownID
	Generation uint64
	At         time.Time
}

type task struct {
	id         CountdownID
	generation uint64
	due        time.Time
	timer      Timer
}

// Scheduler keeps one periodic task per active countdown.
type Scheduler struct {
	mu         sync.Mutex
	clock      Clock
	interval   time.Duration
	onTick     func(Tick)
	tasks      map[CountdownID]*task
	generation uint64
}

// NewScheduler creates an empty task table. onTick is called from the clock's
// callback context for every firing of every task.
func NewScheduler(clock Clock, interval time.Duration, onTick func(Tick)) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		tasks:    make(map[CountdownID]*task),
	}
}

// Start registers a periodic task for id. It returns false if one is
// already active.
func (scheduler *Scheduler) Start(id CountdownID) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if _, ok := scheduler.tasks[id]; ok {
		return false
	}
	scheduler.generation++
	entry := &task{
		id:         id,
		generation: scheduler.generation,
		due:        scheduler.clock.Now().Add(scheduler.interval),
	}
	entry.timer = scheduler.clock.AfterFunc(scheduler.interval, func() {
		scheduler.fire(entry)
	})
	scheduler.tasks[id] = entry
	return true
}

// Stop cancels and removes the task for id. It returns false if none was
// active.
func (scheduler *Scheduler) Stop(id CountdownID) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopLocked(id)
}

// StopAll cancels every task.
func (scheduler *Scheduler) StopAll() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	for id := range scheduler.tasks {
		scheduler.stopLocked(id)
	}
}

// Active reports whether a task is registered for id.
func (scheduler *Scheduler) Active(id CountdownID) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	_, ok := scheduler.tasks[id]
	return ok
}

// ActiveIDs lists registered countdowns, main first then phases by index.
func (scheduler *Scheduler) ActiveIDs() []CountdownID {
	scheduler.mu.Lock()
	ids := make([]CountdownID, 0, len(scheduler.tasks))
	for id := range scheduler.tasks {
		ids = append(ids, id)
	}
	scheduler.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Current reports whether tick belongs to the task still registered for its
// countdown. A tick from a stopped or replaced task is stale.
func (scheduler *Scheduler) Current(tick Tick) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	entry, ok := scheduler.tasks[tick.ID]
	return ok && entry.generation == tick.Generation
}

func (scheduler *Scheduler) stopLocked(id CountdownID) bool {
	entry, ok := scheduler.tasks[id]
	if !ok {
		return false
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	delete(scheduler.tasks, id)
	return true
}

func (scheduler *Scheduler) fire(entry *task) {
	if scheduler.onTick != nil {
		scheduler.onTick(Tick{ID: entry.id, Generation: entry.generation, At: entry.due})
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.tasks[entry.id] != entry {
		return
	}

	// Reschedule against the task's own due time so the cadence does not
	// accumulate callback latency. A stalled task skips missed ticks.
	now := scheduler.clock.Now()
	entry.due = entry.due.Add(scheduler.interval)
	if !entry.due.After(now) {
		entry.due = now.Add(scheduler.interval)
	}
	entry.timer = scheduler.clock.AfterFunc(entry.due.Sub(now), func() {
		scheduler.fire(entry)
	})
}
