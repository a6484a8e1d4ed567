// Package seed provides the sample Push/Pull/Legs dataset used for demos,
// local development and tests.
package seed

import (
	"fmt"
	"time"

	"github.com/claude/liftium/internal/models"
)

// Well-known ids in the sample dataset.
const (
	UserID  = "550e8400-e29b-41d4-a716-446655440000"
	SplitID = "550e8400-e29b-41d4-a716-446655440001"

	PushDayID = "550e8400-e29b-41d4-a716-446655440002"
	PullDayID = "550e8400-e29b-41d4-a716-446655440003"
	LegDayID  = "550e8400-e29b-41d4-a716-446655440004"
	RestDayID = "550e8400-e29b-41d4-a716-446655440005"

	BenchPressID    = "550e8400-e29b-41d4-a716-446655440010"
	OverheadPressID = "550e8400-e29b-41d4-a716-446655440011"
	TricepDipsID    = "550e8400-e29b-41d4-a716-446655440012"
	PullUpsID       = "550e8400-e29b-41d4-a716-446655440020"
	BarbellRowsID   = "550e8400-e29b-41d4-a716-446655440021"
	BicepCurlsID    = "550e8400-e29b-41d4-a716-446655440022"
	SquatsID        = "550e8400-e29b-41d4-a716-446655440030"
	DeadliftsID     = "550e8400-e29b-41d4-a716-446655440031"

	PullSessionID = "550e8400-e29b-41d4-a716-446655440100"
	LegSessionID  = "550e8400-e29b-41d4-a716-446655440101"
)

// sessionMinutes is how long each sample session lasted.
const sessionMinutes = 65

// Dataset builds the sample data. Session dates are relative to now: the pull
// session happened two days earlier, the leg session four.
func Dataset(now time.Time) *models.Dataset {
	loc := now.Location()
	today := models.Day(now)

	user := models.User{
		ID:        UserID,
		Email:     "isaac@example.com",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, loc),
		UserName:  "Isaac",
	}
	split := models.Split{
		ID:        SplitID,
		UserID:    UserID,
		Name:      "Push/Pull/Legs",
		CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, loc),
	}
	days := []models.SplitDay{
		{ID: PushDayID, SplitID: SplitID, DayOfWeek: models.Monday, Name: "Push"},
		{ID: PullDayID, SplitID: SplitID, DayOfWeek: models.Tuesday, Name: "Pull"},
		{ID: LegDayID, SplitID: SplitID, DayOfWeek: models.Wednesday, Name: "Legs"},
		{ID: RestDayID, SplitID: SplitID, DayOfWeek: models.Thursday, Name: "Rest", IsRestDay: true},
	}
	exercises := []models.Exercise{
		exercise(BenchPressID, PushDayID, "Bench Press", 180, 1, "Keep shoulders retracted and feet planted", models.MuscleChest),
		exercise(OverheadPressID, PushDayID, "Overhead Press", 120, 2, "", models.MuscleShoulders),
		exercise(TricepDipsID, PushDayID, "Tricep Dips", 90, 3, "Lean forward slightly for chest emphasis", models.MuscleTriceps),
		exercise(PullUpsID, PullDayID, "Pull-ups", 120, 1, "Full range of motion, control the negative", models.MuscleBack),
		exercise(BarbellRowsID, PullDayID, "Barbell Rows", 120, 2, "Pull to lower chest, squeeze shoulder blades", models.MuscleBack),
		exercise(BicepCurlsID, PullDayID, "Bicep Curls", 90, 3, "", models.MuscleBiceps),
		exercise(SquatsID, LegDayID, "Squats", 180, 1, "Go to parallel or below, drive through heels", models.MuscleLegs),
		exercise(DeadliftsID, LegDayID, "Deadlifts", 180, 2, "Keep bar close to body, neutral spine", models.MuscleHamstrings, models.MuscleGlutes),
	}
	sessions := []models.Session{
		session(PullSessionID, PullDayID, today.AddDate(0, 0, -2), 14, 30),
		session(LegSessionID, LegDayID, today.AddDate(0, 0, -4), 16, 0),
	}

	ds := &models.Dataset{
		Users:     []models.User{user},
		Splits:    []models.Split{split},
		SplitDays: days,
		Exercises: exercises,
		Sessions:  sessions,
	}

	// Sets are numbered 200.. in the order listed.
	n := 200
	add := func(sessionID, exerciseID string, sets ...[2]float64) {
		for i, s := range sets {
			ds.Sets = append(ds.Sets, models.WorkoutSet{
				ID:         setID(n),
				SessionID:  sessionID,
				ExerciseID: exerciseID,
				SetNumber:  i + 1,
				Reps:       int(s[0]),
				Weight:     s[1],
			})
			n++
		}
	}
	add(PullSessionID, PullUpsID, [2]float64{12, 0}, [2]float64{10, 0}, [2]float64{8, 0})
	add(PullSessionID, BarbellRowsID, [2]float64{8, 115}, [2]float64{8, 115}, [2]float64{6, 125})
	add(PullSessionID, BicepCurlsID, [2]float64{12, 25}, [2]float64{10, 25}, [2]float64{8, 30})
	n = 210
	add(LegSessionID, SquatsID, [2]float64{15, 185}, [2]float64{12, 185}, [2]float64{10, 195})
	add(LegSessionID, DeadliftsID, [2]float64{8, 225}, [2]float64{8, 225}, [2]float64{6, 245})

	return ds
}

func exercise(id, dayID, name string, restSec, order int, note string, groups ...models.MuscleGroup) models.Exercise {
	e := models.Exercise{
		ID:            id,
		SplitDayID:    dayID,
		Name:          name,
		DefaultSets:   3,
		RestTimeSec:   restSec,
		ExerciseOrder: order,
		MuscleGroups:  models.JoinMuscleGroups(groups...),
	}
	if note != "" {
		e.Note = &note
	}
	return e
}

func session(id, dayID string, date time.Time, hour, minute int) models.Session {
	start := date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	end := start.Add(sessionMinutes * time.Minute)
	return models.Session{
		ID:         id,
		UserID:     UserID,
		SplitDayID: dayID,
		Date:       date,
		CreatedAt:  start,
		FinishedAt: &end,
	}
}

func setID(n int) string {
	return fmt.Sprintf("550e8400-e29b-41d4-a716-446655440%03d", n)
}
