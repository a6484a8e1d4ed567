package models

import "strings"

// Weekday follows the 0 (Sunday) .. 6 (Saturday) convention, which matches
// time.Weekday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayFromInt converts v to a Weekday, falling back to Sunday when v is
// outside 0..6.
func WeekdayFromInt(v int) Weekday {
	if v < int(Sunday) || v > int(Saturday) {
		return Sunday
	}
	return Weekday(v)
}

// Valid reports whether d is within 0..6.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the display name, e.g. "Monday".
func (d Weekday) String() string {
	return weekdayNames[WeekdayFromInt(int(d))]
}

// MuscleGroup is a closed set of muscle group labels.
type MuscleGroup int

const (
	MuscleChest MuscleGroup = iota
	MuscleBack
	MuscleShoulders
	MuscleBiceps
	MuscleTriceps
	MuscleLegs
	MuscleQuads
	MuscleHamstrings
	MuscleGlutes
	MuscleCalves
	MuscleCore
	MuscleFullBody
)

var muscleGroupNames = [...]string{
	"Chest", "Back", "Shoulders", "Biceps", "Triceps", "Legs",
	"Quadriceps", "Hamstrings", "Glutes", "Calves", "Core", "Full Body",
}

// MuscleGroupFromInt converts v to a MuscleGroup, falling back to Chest when
// v is out of range.
func MuscleGroupFromInt(v int) MuscleGroup {
	if v < 0 || v >= len(muscleGroupNames) {
		return MuscleChest
	}
	return MuscleGroup(v)
}

// AllMuscleGroups returns every muscle group in declaration order.
func AllMuscleGroups() []MuscleGroup {
	out := make([]MuscleGroup, len(muscleGroupNames))
	for i := range out {
		out[i] = MuscleGroup(i)
	}
	return out
}

// String returns the display name, e.g. "Full Body".
func (g MuscleGroup) String() string {
	return muscleGroupNames[MuscleGroupFromInt(int(g))]
}

// muscleGroupAliases maps lowercased labels to their muscle group. Display
// names are added in init.
var muscleGroupAliases = map[string]MuscleGroup{
	"pecs":      MuscleChest,
	"lats":      MuscleBack,
	"delts":     MuscleShoulders,
	"bis":       MuscleBiceps,
	"tris":      MuscleTriceps,
	"quads":     MuscleQuads,
	"hams":      MuscleHamstrings,
	"glute":     MuscleGlutes,
	"abs":       MuscleCore,
	"full-body": MuscleFullBody,
	"fullbody":  MuscleFullBody,
}

func init() {
	for i, name := range muscleGroupNames {
		muscleGroupAliases[strings.ToLower(name)] = MuscleGroup(i)
	}
}

// ParseMuscleGroup maps a display name or common alias to its MuscleGroup.
func ParseMuscleGroup(raw string) (MuscleGroup, bool) {
	g, ok := muscleGroupAliases[strings.ToLower(strings.TrimSpace(raw))]
	return g, ok
}

// ParseMuscleGroups splits a free-text label such as "Hamstrings, Glutes"
// and returns the recognized groups in label order. Unknown parts are
// skipped.
func ParseMuscleGroups(label string) []MuscleGroup {
	var out []MuscleGroup
	for _, part := range strings.FieldsFunc(label, func(r rune) bool { return r == ',' || r == '/' || r == ';' }) {
		if g, ok := ParseMuscleGroup(part); ok {
			out = append(out, g)
		}
	}
	return out
}

// JoinMuscleGroups renders groups as the free-text label stored on exercises.
func JoinMuscleGroups(groups ...MuscleGroup) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.String()
	}
	return strings.Join(names, ", ")
}

// Targets reports whether the exercise's label includes g.
func (e Exercise) Targets(g MuscleGroup) bool {
	for _, got := range ParseMuscleGroups(e.MuscleGroups) {
		if got == g {
			return true
		}
	}
	return false
}
