package display

import (
	"testing"

	"hackclock/internal/core/countdown"

	"github.com/stretchr/testify/assert"
)

func TestTexts(t *testing.T) {
	snapshot := countdown.Snapshot{
		MainRemaining:  3661,
		PhaseRemaining: []int{0, 59},
		PhaseRunning:   []bool{true, false},
	}

	assert.Equal(t, "01:01:01", MainText(snapshot))
	assert.Equal(t, PhaseDoneMessage, PhaseText(snapshot, 0))
	assert.Equal(t, "00:00:59", PhaseText(snapshot, 1))

	snapshot.MainRemaining = 0
	assert.Equal(t, MainDoneMessage, MainText(snapshot))

	assert.Equal(t, "Pause", ToggleLabel(true))
	assert.Equal(t, "Start", ToggleLabel(false))
}
