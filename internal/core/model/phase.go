package model

import "time"

// Phase is one named sub-task of the event with a fixed duration.
type Phase struct {
	Name          string
	DurationHours int
}

// Duration returns the phase length.
func (phase Phase) Duration() time.Duration {
	return time.Duration(phase.DurationHours) * time.Hour
}

// Seconds returns the phase length in whole seconds.
func (phase Phase) Seconds() int {
	return phase.DurationHours * 3600
}

// DefaultMainDuration is the overall event length.
const DefaultMainDuration = 24 * time.Hour

// DefaultPhases returns the hackathon phases in display order.
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "Problem Understanding", DurationHours: 3},
		{Name: "Backend & Database Setup", DurationHours: 3},
		{Name: "Frontend UI Design", DurationHours: 3},
		{Name: "Core Functionality Development", DurationHours: 6},
		{Name: "Testing & Debugging", DurationHours: 6},
		{Name: "PPT & Demo Preparation", DurationHours: 3},
		{Name: "Final Fixes & Submission", DurationHours: 2},
	}
}

// TotalHours sums the configured phase durations.
func TotalHours(phases []Phase) int {
	total := 0
	for _, phase := range phases {
		total += phase.DurationHours
	}
	return total
}
