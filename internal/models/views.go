package models

import "time"

// SplitWithDays is a split with its days, each carrying its ordered exercises.
type SplitWithDays struct {
	Split     Split                   `json:"split"`
	SplitDays []SplitDayWithExercises `json:"split_days"`
}

// SplitDayWithExercises is a split day with its exercises in exercise_order.
type SplitDayWithExercises struct {
	SplitDay  SplitDay   `json:"split_day"`
	Exercises []Exercise `json:"exercises"`
}

// SessionWithDetails is a session with its day, split and grouped sets.
type SessionWithDetails struct {
	Session   Session            `json:"session"`
	SplitDay  SplitDay           `json:"split_day"`
	Split     Split              `json:"split"`
	Exercises []ExerciseWithSets `json:"exercises"`
}

// ExerciseWithSets is one exercise's sets within a session, by set_number.
type ExerciseWithSets struct {
	Exercise Exercise     `json:"exercise"`
	Sets     []WorkoutSet `json:"sets"`
}

// ExerciseProgress summarises every recorded set of one exercise.
type ExerciseProgress struct {
	ExerciseID    string     `json:"exercise_id"`
	ExerciseName  string     `json:"exercise_name"`
	MaxWeight     float64    `json:"max_weight"`
	MaxReps       int        `json:"max_reps"`
	TotalVolume   float64    `json:"total_volume"`
	LastPerformed *time.Time `json:"last_performed,omitempty"`
}

// ProgressStats holds aggregate counters derived from session history.
type ProgressStats struct {
	TotalWorkouts          int     `json:"total_workouts"`
	CurrentStreak          int     `json:"current_streak"`
	LongestStreak          int     `json:"longest_streak"`
	TotalVolume            float64 `json:"total_volume"`
	FavoriteExercise       string  `json:"favorite_exercise"`
	AverageWorkoutDuration int     `json:"average_workout_duration_min"`
}

// TodayView is what the home screen needs to render the current day.
type TodayView struct {
	Date        time.Time `json:"date"`
	SplitDay    *SplitDay `json:"split_day,omitempty"`
	HasWorkout  bool      `json:"has_workout"`
	Status      string    `json:"status"`
	WorkoutName string    `json:"workout_name"`
}
