package tracker

import (
	"time"

	"github.com/claude/liftium/internal/models"
)

var motivationalMessages = []string{
	"Today is a great day for a workout!",
	"Your only limit is your mind!",
	"Strong is the new beautiful!",
	"Every workout counts!",
	"Push your limits today!",
	"Consistency is key!",
	"You're stronger than yesterday!",
}

// TodaysSplitDay returns the active split's day scheduled for ref's weekday,
// evaluated in ref's location.
func (t *Tracker) TodaysSplitDay(ref time.Time) (models.SplitDay, bool) {
	split, ok := t.ActiveSplit()
	if !ok {
		return models.SplitDay{}, false
	}
	weekday := models.Weekday(ref.Weekday())
	for _, sd := range t.daysBySplit[split.ID] {
		if sd.DayOfWeek == weekday {
			return sd, true
		}
	}
	return models.SplitDay{}, false
}

// HasWorkoutToday reports whether ref falls on a scheduled non-rest day.
func (t *Tracker) HasWorkoutToday(ref time.Time) bool {
	sd, ok := t.TodaysSplitDay(ref)
	return ok && !sd.IsRestDay
}

// WorkoutStatusLabel returns StatusAvailable or StatusRestDay.
func (t *Tracker) WorkoutStatusLabel(ref time.Time) string {
	if t.HasWorkoutToday(ref) {
		return StatusAvailable
	}
	return StatusRestDay
}

// TodaysWorkoutName returns the scheduled day's name, or NoWorkoutName.
func (t *Tracker) TodaysWorkoutName(ref time.Time) string {
	if sd, ok := t.TodaysSplitDay(ref); ok {
		return sd.Name
	}
	return NoWorkoutName
}

// Today bundles the home screen's view of ref's date.
func (t *Tracker) Today(ref time.Time) models.TodayView {
	v := models.TodayView{
		Date:        models.Day(ref),
		HasWorkout:  t.HasWorkoutToday(ref),
		Status:      t.WorkoutStatusLabel(ref),
		WorkoutName: t.TodaysWorkoutName(ref),
	}
	if sd, ok := t.TodaysSplitDay(ref); ok {
		v.SplitDay = &sd
	}
	return v
}

// MotivationalMessage picks a message for ref's date. The same date always
// yields the same message.
func MotivationalMessage(ref time.Time) string {
	return motivationalMessages[ref.YearDay()%len(motivationalMessages)]
}
