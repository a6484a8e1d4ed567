// Package tracker answers read-only queries over a user's training data:
// today's workout, split and session breakdowns, and progress statistics.
//
// A Tracker never performs I/O. Every method is a pure function of the Source
// it was built from, so callers may share one Tracker across goroutines or
// build a fresh one per request.
package tracker

import (
	"slices"
	"sort"
	"time"

	"github.com/claude/liftium/internal/models"
)

// Workout status labels returned by WorkoutStatusLabel.
const (
	StatusAvailable = "Available"
	StatusRestDay   = "Rest Day"
)

// NoWorkoutName is returned by TodaysWorkoutName when no split day matches.
const NoWorkoutName = "No Workout"

// Source supplies the base collections. *models.Dataset satisfies it.
type Source interface {
	ListUsers() []models.User
	ListSplits() []models.Split
	ListSplitDays() []models.SplitDay
	ListExercises() []models.Exercise
	ListSessions() []models.Session
	ListSets() []models.WorkoutSet
}

var _ Source = (*models.Dataset)(nil)

// Tracker is a query view over a Source, scoped to one current user.
type Tracker struct {
	userID string

	users     map[string]models.User
	splits    map[string]models.Split
	splitDays map[string]models.SplitDay
	exercises map[string]models.Exercise
	sessions  map[string]models.Session

	daysBySplit    map[string][]models.SplitDay
	exercisesByDay map[string][]models.Exercise
	setsByExercise map[string][]models.WorkoutSet
	setsBySession  map[string][]models.WorkoutSet
	userSplits     []models.Split
	userSessions   []models.Session
}

// New indexes src for queries on behalf of userID.
func New(src Source, userID string) *Tracker {
	t := &Tracker{
		userID:         userID,
		users:          make(map[string]models.User),
		splits:         make(map[string]models.Split),
		splitDays:      make(map[string]models.SplitDay),
		exercises:      make(map[string]models.Exercise),
		sessions:       make(map[string]models.Session),
		daysBySplit:    make(map[string][]models.SplitDay),
		exercisesByDay: make(map[string][]models.Exercise),
		setsByExercise: make(map[string][]models.WorkoutSet),
		setsBySession:  make(map[string][]models.WorkoutSet),
	}
	for _, u := range src.ListUsers() {
		t.users[u.ID] = u
	}
	for _, s := range src.ListSplits() {
		t.splits[s.ID] = s
		if s.UserID == userID {
			t.userSplits = append(t.userSplits, s)
		}
	}
	for _, sd := range src.ListSplitDays() {
		t.splitDays[sd.ID] = sd
		t.daysBySplit[sd.SplitID] = append(t.daysBySplit[sd.SplitID], sd)
	}
	for _, e := range src.ListExercises() {
		t.exercises[e.ID] = e
		t.exercisesByDay[e.SplitDayID] = append(t.exercisesByDay[e.SplitDayID], e)
	}
	for _, s := range src.ListSessions() {
		t.sessions[s.ID] = s
		if s.UserID == userID {
			t.userSessions = append(t.userSessions, s)
		}
	}
	for _, ws := range src.ListSets() {
		t.setsByExercise[ws.ExerciseID] = append(t.setsByExercise[ws.ExerciseID], ws)
		t.setsBySession[ws.SessionID] = append(t.setsBySession[ws.SessionID], ws)
	}

	for id, days := range t.daysBySplit {
		sort.Slice(days, func(i, j int) bool {
			if days[i].DayOfWeek != days[j].DayOfWeek {
				return days[i].DayOfWeek < days[j].DayOfWeek
			}
			return days[i].ID < days[j].ID
		})
		t.daysBySplit[id] = days
	}
	for id, exs := range t.exercisesByDay {
		sortExercises(exs)
		t.exercisesByDay[id] = exs
	}
	return t
}

// CurrentUser returns the user the tracker is scoped to.
func (t *Tracker) CurrentUser() (models.User, bool) {
	u, ok := t.users[t.userID]
	return u, ok
}

// ActiveSplit returns the current user's most recently created split.
// Ties on created_at go to the larger id.
func (t *Tracker) ActiveSplit() (models.Split, bool) {
	var best models.Split
	found := false
	for _, s := range t.userSplits {
		if !found || s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && s.ID > best.ID) {
			best = s
			found = true
		}
	}
	return best, found
}

// SplitOverview assembles a split with its days ordered by weekday, each
// carrying its exercises ordered by exercise_order.
func (t *Tracker) SplitOverview(splitID string) (models.SplitWithDays, bool) {
	split, ok := t.splits[splitID]
	if !ok {
		return models.SplitWithDays{}, false
	}
	days := t.daysBySplit[splitID]
	out := models.SplitWithDays{
		Split:     split,
		SplitDays: make([]models.SplitDayWithExercises, 0, len(days)),
	}
	for _, sd := range days {
		exs := slices.Clone(t.exercisesByDay[sd.ID])
		if exs == nil {
			exs = []models.Exercise{}
		}
		out.SplitDays = append(out.SplitDays, models.SplitDayWithExercises{
			SplitDay:  sd,
			Exercises: exs,
		})
	}
	return out, true
}

// SessionDetails assembles a session with its split day, split, and sets
// grouped per exercise. Groups follow exercise_order; sets follow set_number.
// A session whose split day or split cannot be resolved is reported absent.
func (t *Tracker) SessionDetails(sessionID string) (models.SessionWithDetails, bool) {
	session, ok := t.sessions[sessionID]
	if !ok {
		return models.SessionWithDetails{}, false
	}
	sd, ok := t.splitDays[session.SplitDayID]
	if !ok {
		return models.SessionWithDetails{}, false
	}
	split, ok := t.splits[sd.SplitID]
	if !ok {
		return models.SessionWithDetails{}, false
	}

	grouped := make(map[string][]models.WorkoutSet)
	var exs []models.Exercise
	for _, ws := range t.setsBySession[sessionID] {
		e, ok := t.exercises[ws.ExerciseID]
		if !ok {
			continue
		}
		if _, seen := grouped[e.ID]; !seen {
			exs = append(exs, e)
		}
		grouped[e.ID] = append(grouped[e.ID], ws)
	}
	sortExercises(exs)

	out := models.SessionWithDetails{
		Session:   session,
		SplitDay:  sd,
		Split:     split,
		Exercises: make([]models.ExerciseWithSets, 0, len(exs)),
	}
	for _, e := range exs {
		sets := grouped[e.ID]
		sort.SliceStable(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })
		out.Exercises = append(out.Exercises, models.ExerciseWithSets{Exercise: e, Sets: sets})
	}
	return out, true
}

// RecentSessions returns the current user's sessions with details, newest
// first. A limit of zero or less returns all of them.
func (t *Tracker) RecentSessions(limit int) []models.SessionWithDetails {
	sessions := append([]models.Session(nil), t.userSessions...)
	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	out := make([]models.SessionWithDetails, 0, len(sessions))
	for _, s := range sessions {
		if limit > 0 && len(out) == limit {
			break
		}
		if d, ok := t.SessionDetails(s.ID); ok {
			out = append(out, d)
		}
	}
	return out
}

// HasRecentWorkouts reports whether the current user has logged any session.
func (t *Tracker) HasRecentWorkouts() bool {
	return len(t.userSessions) > 0
}

// ExerciseProgress summarises all recorded sets of an exercise. It reports
// absent when the exercise is unknown or has no sets.
func (t *Tracker) ExerciseProgress(exerciseID string) (models.ExerciseProgress, bool) {
	e, ok := t.exercises[exerciseID]
	if !ok {
		return models.ExerciseProgress{}, false
	}
	sets := t.setsByExercise[exerciseID]
	if len(sets) == 0 {
		return models.ExerciseProgress{}, false
	}

	p := models.ExerciseProgress{
		ExerciseID:   e.ID,
		ExerciseName: e.Name,
		MaxWeight:    sets[0].Weight,
		MaxReps:      sets[0].Reps,
	}
	var last *models.Session
	for _, ws := range sets {
		p.MaxWeight = max(p.MaxWeight, ws.Weight)
		p.MaxReps = max(p.MaxReps, ws.Reps)
		p.TotalVolume += ws.Volume()

		s, ok := t.sessions[ws.SessionID]
		if !ok {
			continue
		}
		if last == nil || s.Date.After(last.Date) || (s.Date.Equal(last.Date) && s.ID > last.ID) {
			last = &s
		}
	}
	if last != nil {
		d := last.Date
		p.LastPerformed = &d
	}
	return p, true
}

// AllExerciseProgress returns progress for every exercise with recorded sets,
// ordered by exercise name.
func (t *Tracker) AllExerciseProgress() []models.ExerciseProgress {
	var out []models.ExerciseProgress
	for id := range t.setsByExercise {
		if p, ok := t.ExerciseProgress(id); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExerciseName != out[j].ExerciseName {
			return out[i].ExerciseName < out[j].ExerciseName
		}
		return out[i].ExerciseID < out[j].ExerciseID
	})
	return out
}

// Exercise looks up an exercise by id.
func (t *Tracker) Exercise(id string) (models.Exercise, bool) {
	e, ok := t.exercises[id]
	return e, ok
}

func sortExercises(exs []models.Exercise) {
	sort.Slice(exs, func(i, j int) bool {
		if exs[i].ExerciseOrder != exs[j].ExerciseOrder {
			return exs[i].ExerciseOrder < exs[j].ExerciseOrder
		}
		return exs[i].ID < exs[j].ID
	})
}

// civilDay maps t to UTC midnight of its calendar date in t's own location,
// so dates from different zones compare by calendar day.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
