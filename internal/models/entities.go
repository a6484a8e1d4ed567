package models

import "time"

// User is an account that owns splits and sessions.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	CreatedAt        time.Time `json:"created_at"`
	UserName         string    `json:"user_name"`
	RememberMeDevice *string   `json:"remember_me_device,omitempty"`
}

// Split is a named weekly training program, e.g. "Push/Pull/Legs".
type Split struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SplitDay is one weekday's role within a split.
type SplitDay struct {
	ID        string  `json:"id"`
	SplitID   string  `json:"split_id"`
	DayOfWeek Weekday `json:"day_of_week"` // 0 (Sunday) to 6 (Saturday)
	Name      string  `json:"name"`
	IsRestDay bool    `json:"is_rest_day"`
}

// Exercise is a movement prescribed within a split day.
type Exercise struct {
	ID            string  `json:"id"`
	SplitDayID    string  `json:"split_day_id"`
	Name          string  `json:"name"`
	DefaultSets   int     `json:"default_sets"`
	RestTimeSec   int     `json:"rest_time_sec"`
	Note          *string `json:"note,omitempty"`
	ExerciseOrder int     `json:"exercise_order"`
	MuscleGroups  string  `json:"muscle_groups"`
}

// Session is one logged workout tied to a split day and a calendar date.
// FinishedAt is nil while the workout is still open or when the client never
// reported an end time.
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	SplitDayID string     `json:"split_day_id"`
	Date       time.Time  `json:"date"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// WorkoutSet is one completed set within a session. SetNumber is 1-based.
type WorkoutSet struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	ExerciseID string  `json:"exercise_id"`
	SetNumber  int     `json:"set_number"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
}

// Volume returns reps × weight for the set.
func (s WorkoutSet) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

// Day truncates t to its calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
