package tracker

import (
	"math"
	"time"

	"github.com/claude/liftium/internal/models"
)

// ProgressStats derives the current user's aggregate counters from their
// session history as of ref.
//
// A streak counts calendar days with at least one session. Days that the
// active split does not schedule for training (rest days and unplanned
// weekdays) neither extend nor break a streak, and neither does ref's own day
// while it has no session yet. Without an active split every day is a
// training day. Sessions dated after ref are ignored for streaks.
//
// The favorite exercise is the one with the most logged sets; ties go to the
// larger volume, then to the name that sorts first.
//
// Average duration covers sessions with a finish time after their start,
// rounded to whole minutes.
func (t *Tracker) ProgressStats(ref time.Time) models.ProgressStats {
	stats := models.ProgressStats{TotalWorkouts: len(t.userSessions)}

	type exerciseTally struct {
		sets   int
		volume float64
	}
	tallies := make(map[string]*exerciseTally)
	var totalMinutes float64
	var timed int
	for _, s := range t.userSessions {
		for _, ws := range t.setsBySession[s.ID] {
			stats.TotalVolume += ws.Volume()
			tl, ok := tallies[ws.ExerciseID]
			if !ok {
				tl = &exerciseTally{}
				tallies[ws.ExerciseID] = tl
			}
			tl.sets++
			tl.volume += ws.Volume()
		}
		if s.FinishedAt != nil && s.FinishedAt.After(s.CreatedAt) {
			totalMinutes += s.FinishedAt.Sub(s.CreatedAt).Minutes()
			timed++
		}
	}
	if timed > 0 {
		stats.AverageWorkoutDuration = int(math.Round(totalMinutes / float64(timed)))
	}

	var best *exerciseTally
	for id, tl := range tallies {
		e, ok := t.exercises[id]
		if !ok {
			continue
		}
		switch {
		case best == nil,
			tl.sets > best.sets,
			tl.sets == best.sets && tl.volume > best.volume,
			tl.sets == best.sets && tl.volume == best.volume && e.Name < stats.FavoriteExercise:
			best = tl
			stats.FavoriteExercise = e.Name
		}
	}

	stats.CurrentStreak, stats.LongestStreak = t.streaks(ref)
	return stats
}

// streaks walks every day from the first session up to ref.
func (t *Tracker) streaks(ref time.Time) (current, longest int) {
	today := civilDay(ref)
	logged := make(map[time.Time]bool)
	var first time.Time
	for _, s := range t.userSessions {
		d := civilDay(s.Date)
		if d.After(today) {
			continue
		}
		logged[d] = true
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	if len(logged) == 0 {
		return 0, 0
	}

	scheduled := t.trainingWeekdays()
	run := 0
	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		switch {
		case logged[d]:
			run++
			longest = max(longest, run)
		case d.Equal(today):
			// today is still open
		case scheduled[models.Weekday(d.Weekday())]:
			run = 0
		}
	}
	return run, longest
}

// trainingWeekdays returns the weekdays the active split schedules for
// training. Every weekday counts when there is no active split or it has no
// training days.
func (t *Tracker) trainingWeekdays() map[models.Weekday]bool {
	out := make(map[models.Weekday]bool)
	if split, ok := t.ActiveSplit(); ok {
		for _, sd := range t.daysBySplit[split.ID] {
			if !sd.IsRestDay {
				out[sd.DayOfWeek] = true
			}
		}
	}
	if len(out) == 0 {
		for d := models.Sunday; d <= models.Saturday; d++ {
			out[d] = true
		}
	}
	return out
}
