package alpha

import (
	"fmt"
	"strings"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/tracker"
	"github.com/google/uuid"
)

// idSpace namespaces the name-based ids of imported rows, so importing the
// same export twice yields the same ids.
var idSpace = uuid.MustParse("7b2f8e4a-5c1d-4e7b-9a3f-0d6c2e8b1a94")

// Report describes what Convert did with an export.
type Report struct {
	Sessions         int
	Sets             int
	AlreadyImported  int
	WarmupsSkipped   int
	SkippedSessions  []string
	SkippedExercises []string
}

// Convert maps parsed sessions onto userID's active split in existing. A
// session matches the split day whose name equals its DayName, and each
// exercise the day's exercise of the same name, both case-insensitively.
// Warmups are dropped and working sets numbered from 1 per exercise. The
// result holds only the new sessions and sets; sessions imported before are
// counted in AlreadyImported.
func Convert(sessions []Session, existing *models.Dataset, userID string) (*models.Dataset, Report, error) {
	var rep Report
	t := tracker.New(existing, userID)
	split, ok := t.ActiveSplit()
	if !ok {
		return nil, rep, fmt.Errorf("user %s has no split to import into", userID)
	}
	overview, _ := t.SplitOverview(split.ID)

	known := make(map[string]bool, len(existing.Sessions))
	for _, s := range existing.Sessions {
		known[s.ID] = true
	}

	out := &models.Dataset{}
	for _, s := range sessions {
		day, ok := findDay(overview, s.DayName())
		if !ok {
			rep.SkippedSessions = append(rep.SkippedSessions, s.Name)
			continue
		}

		sessionID := uuid.NewSHA1(idSpace, []byte(userID+"|"+day.SplitDay.ID+"|"+s.Start.UTC().Format("2006-01-02T15:04"))).String()
		if known[sessionID] {
			rep.AlreadyImported++
			continue
		}
		known[sessionID] = true
		session := models.Session{
			ID:         sessionID,
			UserID:     userID,
			SplitDayID: day.SplitDay.ID,
			Date:       models.Day(s.Start),
			CreatedAt:  s.Start,
		}
		if s.Duration > 0 {
			end := s.Start.Add(s.Duration)
			session.FinishedAt = &end
		}

		var sets []models.WorkoutSet
		// Set numbers continue across blocks of the same exercise.
		numbered := make(map[string]int)
		for _, ex := range s.Exercises {
			target, ok := findExercise(day, ex.Name)
			if !ok {
				rep.SkippedExercises = append(rep.SkippedExercises, s.DayName()+": "+ex.Name)
				continue
			}
			working := ex.WorkingSets()
			rep.WarmupsSkipped += len(ex.Sets) - len(working)
			for _, ws := range working {
				numbered[target.ID]++
				n := numbered[target.ID]
				sets = append(sets, models.WorkoutSet{
					ID:         uuid.NewSHA1(idSpace, fmt.Appendf(nil, "%s|%s|%d", sessionID, target.ID, n)).String(),
					SessionID:  sessionID,
					ExerciseID: target.ID,
					SetNumber:  n,
					Reps:       ws.Reps,
					Weight:     ws.Weight,
				})
			}
		}
		if len(sets) == 0 {
			rep.SkippedSessions = append(rep.SkippedSessions, s.Name)
			continue
		}

		out.Sessions = append(out.Sessions, session)
		out.Sets = append(out.Sets, sets...)
		rep.Sessions++
		rep.Sets += len(sets)
	}
	return out, rep, nil
}

func findDay(overview models.SplitWithDays, name string) (models.SplitDayWithExercises, bool) {
	for _, d := range overview.SplitDays {
		if !d.SplitDay.IsRestDay && strings.EqualFold(d.SplitDay.Name, name) {
			return d, true
		}
	}
	return models.SplitDayWithExercises{}, false
}

func findExercise(day models.SplitDayWithExercises, name string) (models.Exercise, bool) {
	for _, e := range day.Exercises {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return models.Exercise{}, false
}
