package tracker

import (
	"testing"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/seed"
)

// TestProgressStatsSample checks the derived counters for the sample data on
// Wednesday 2025-04-16.
func TestProgressStatsSample(t *testing.T) {
	got := seeded(t).ProgressStats(wednesday)

	if got.TotalWorkouts != 2 {
		t.Errorf("TotalWorkouts = %d, want 2", got.TotalWorkouts)
	}
	// rows 2590 + curls 790 + squats 6945 + deadlifts 5070; pull-ups are bodyweight.
	if got.TotalVolume != 15395 {
		t.Errorf("TotalVolume = %v, want 15395", got.TotalVolume)
	}
	// Every exercise has three sets; squats lead on volume.
	if got.FavoriteExercise != "Squats" {
		t.Errorf("FavoriteExercise = %q, want %q", got.FavoriteExercise, "Squats")
	}
	if got.AverageWorkoutDuration != 65 {
		t.Errorf("AverageWorkoutDuration = %d, want 65", got.AverageWorkoutDuration)
	}
	// Sat 12 (legs) and Mon 14 (pull) with Sunday unscheduled make a run of
	// two; the missed Tuesday 15 pull day breaks it.
	if got.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", got.LongestStreak)
	}
	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", got.CurrentStreak)
	}
}

// TestProgressStatsEmpty verifies a user without history gets zero values.
func TestProgressStatsEmpty(t *testing.T) {
	got := New(seed.Dataset(wednesday), "nobody").ProgressStats(wednesday)
	if got != (models.ProgressStats{}) {
		t.Errorf("ProgressStats = %+v, want zero value", got)
	}
}

// streakFixture has a Mon/Wed/Fri split with a Sunday rest day and sessions
// on the given dates.
func streakFixture(dates ...time.Time) *models.Dataset {
	ds := &models.Dataset{
		Users:  []models.User{{ID: "u"}},
		Splits: []models.Split{{ID: "s", UserID: "u"}},
		SplitDays: []models.SplitDay{
			{ID: "mon", SplitID: "s", DayOfWeek: models.Monday, Name: "A"},
			{ID: "wed", SplitID: "s", DayOfWeek: models.Wednesday, Name: "B"},
			{ID: "fri", SplitID: "s", DayOfWeek: models.Friday, Name: "C"},
			{ID: "sun", SplitID: "s", DayOfWeek: models.Sunday, Name: "Rest", IsRestDay: true},
		},
	}
	for i, d := range dates {
		ds.Sessions = append(ds.Sessions, models.Session{
			ID: string(rune('a' + i)), UserID: "u", SplitDayID: "mon", Date: d, CreatedAt: d,
		})
	}
	return ds
}

// TestProgressStatsStreaks covers streak edge cases against a Mon/Wed/Fri
// split. 2025-04-14 is a Monday.
func TestProgressStatsStreaks(t *testing.T) {
	tests := []struct {
		name        string
		dates       []time.Time
		ref         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "training days only",
			dates:       []time.Time{date(2025, 4, 14), date(2025, 4, 16), date(2025, 4, 18)},
			ref:         date(2025, 4, 18),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "today not yet logged keeps streak",
			dates:       []time.Time{date(2025, 4, 14), date(2025, 4, 16)},
			ref:         date(2025, 4, 18),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "missed training day resets",
			dates:       []time.Time{date(2025, 4, 7), date(2025, 4, 9), date(2025, 4, 11), date(2025, 4, 16)},
			ref:         date(2025, 4, 16),
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "extra session on a rest day counts",
			dates:       []time.Time{date(2025, 4, 11), date(2025, 4, 13), date(2025, 4, 14)},
			ref:         date(2025, 4, 15),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "two sessions on one day count once",
			dates:       []time.Time{date(2025, 4, 14), date(2025, 4, 14)},
			ref:         date(2025, 4, 14),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "future sessions ignored",
			dates:       []time.Time{date(2025, 4, 14), date(2025, 4, 30)},
			ref:         date(2025, 4, 14),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "stale history",
			dates:       []time.Time{date(2025, 3, 3), date(2025, 3, 5)},
			ref:         date(2025, 4, 14),
			wantCurrent: 0,
			wantLongest: 2,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := New(streakFixture(tc.dates...), "u").ProgressStats(tc.ref)
			if got.CurrentStreak != tc.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tc.wantCurrent)
			}
			if got.LongestStreak != tc.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tc.wantLongest)
			}
			if got.TotalWorkouts != len(tc.dates) {
				t.Errorf("TotalWorkouts = %d, want %d", got.TotalWorkouts, len(tc.dates))
			}
		})
	}
}

// TestProgressStatsWithoutSplitCountsEveryDay verifies that without an active
// split every calendar day is a training day.
func TestProgressStatsWithoutSplitCountsEveryDay(t *testing.T) {
	ds := streakFixture(date(2025, 4, 14), date(2025, 4, 16))
	ds.Splits = nil
	got := New(ds, "u").ProgressStats(date(2025, 4, 16))
	if got.CurrentStreak != 1 || got.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", got.CurrentStreak, got.LongestStreak)
	}
}

// TestProgressStatsFavoriteTieBreak verifies equal set counts and volumes
// fall back to the alphabetically first name.
func TestProgressStatsFavoriteTieBreak(t *testing.T) {
	d := date(2025, 4, 14)
	ds := &models.Dataset{
		Users:    []models.User{{ID: "u"}},
		Sessions: []models.Session{{ID: "s1", UserID: "u", Date: d, CreatedAt: d}},
		Exercises: []models.Exercise{
			{ID: "z", Name: "Zercher Squat"},
			{ID: "a", Name: "Arnold Press"},
		},
		Sets: []models.WorkoutSet{
			{ID: "1", SessionID: "s1", ExerciseID: "z", SetNumber: 1, Reps: 5, Weight: 100},
			{ID: "2", SessionID: "s1", ExerciseID: "a", SetNumber: 1, Reps: 10, Weight: 50},
		},
	}
	got := New(ds, "u").ProgressStats(d)
	if got.FavoriteExercise != "Arnold Press" {
		t.Errorf("FavoriteExercise = %q, want %q", got.FavoriteExercise, "Arnold Press")
	}
	if got.TotalVolume != 1000 {
		t.Errorf("TotalVolume = %v, want 1000", got.TotalVolume)
	}
}

// TestProgressStatsAverageDuration verifies unfinished sessions are skipped
// and the mean is rounded to whole minutes.
func TestProgressStatsAverageDuration(t *testing.T) {
	d := date(2025, 4, 14)
	end1 := d.Add(40 * time.Minute)
	end2 := d.Add(61 * time.Minute)
	ds := &models.Dataset{
		Users: []models.User{{ID: "u"}},
		Sessions: []models.Session{
			{ID: "1", UserID: "u", Date: d, CreatedAt: d, FinishedAt: &end1},
			{ID: "2", UserID: "u", Date: d, CreatedAt: d, FinishedAt: &end2},
			{ID: "3", UserID: "u", Date: d, CreatedAt: d},
		},
	}
	got := New(ds, "u").ProgressStats(d)
	if got.AverageWorkoutDuration != 51 {
		t.Errorf("AverageWorkoutDuration = %d, want 51", got.AverageWorkoutDuration)
	}
}
