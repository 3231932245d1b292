// Package display holds the texts every renderer shows for a snapshot.
package display

import "hackclock/internal/core/countdown"

const (
	Title            = "Hackathon Timer"
	MainDoneMessage  = "Congratulations! You have completed all tasks 🎉"
	PhaseDoneMessage = "This task should be completed by now"
)

// MainText is the main clock face: the formatted remainder, or the
// completion message at zero.
func MainText(snapshot countdown.Snapshot) string {
	if snapshot.MainDone() {
		return MainDoneMessage
	}
	return countdown.FormatTime(snapshot.MainRemaining)
}

// PhaseText is the face for the phase at index.
func PhaseText(snapshot countdown.Snapshot, index int) string {
	if snapshot.PhaseDone(index) {
		return PhaseDoneMessage
	}
	return countdown.FormatTime(snapshot.PhaseRemaining[index])
}

// ToggleLabel names the action a start/pause control performs.
func ToggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}
