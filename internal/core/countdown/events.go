package countdown

import "time"

// EventType defines the type of Store event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventTick         EventType = "tick"
	EventReset        EventType = "reset"
	EventPersistError EventType = "persist_error"
)

// CountdownID identifies one countdown in the scheduler table.
// MainCountdown is the event clock; phases use their index.
type CountdownID int

// MainCountdown identifies the overall event countdown.
const MainCountdown CountdownID = -1

// PhaseCountdown returns the identifier for the phase at index.
func PhaseCountdown(index int) CountdownID {
	return CountdownID(index)
}

// IsMain reports whether id refers to the main countdown.
func (id CountdownID) IsMain() bool {
	return id == MainCountdown
}

// Snapshot is a consistent copy of every countdown value and running flag.
type Snapshot struct {
	MainRemaining  int
	MainRunning    bool
	PhaseRemaining []int
	PhaseRunning   []bool
}

// MainDone reports whether the main countdown has reached zero.
func (snapshot Snapshot) MainDone() bool {
	return snapshot.MainRemaining == 0
}

// PhaseDone reports whether the phase at index has reached zero.
func (snapshot Snapshot) PhaseDone(index int) bool {
	return snapshot.PhaseRemaining[index] == 0
}

// Event represents a Store update for observers.
type Event struct {
	Type     EventType
	Source   CountdownID
	Snapshot Snapshot
	Err      error
	At       time.Time
}
