// Package alpha imports Alpha Progression CSV exports into Liftium sessions
// and sets.
package alpha

import "time"

// Session is one workout in an export.
type Session struct {
	Name      string
	Start     time.Time
	Duration  time.Duration
	Exercises []Exercise
}

// DayName is the first segment of the session title, e.g. "Legs" for
// "Legs · Day 2 · Week 4 · Push-Pull-Legs".
func (s Session) DayName() string {
	name, _, _ := cutDot(s.Name)
	return name
}

// Exercise is one exercise block with its warmup and working sets.
type Exercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []Set
}

// WorkingSets drops warmups.
func (e Exercise) WorkingSets() []Set {
	var out []Set
	for _, s := range e.Sets {
		if !s.Warmup {
			out = append(out, s)
		}
	}
	return out
}

// Set is a single logged set. Weight is added load for bodyweight-plus
// exercises.
type Set struct {
	Number         int
	Weight         float64
	BodyweightPlus bool
	Reps           int
	RIR            float64
	Warmup         bool
}
