package models

import (
	"errors"
	"fmt"
)

// Dataset holds the base collections for one or more users. Stores load it,
// the tracker reads it.
type Dataset struct {
	Users     []User       `json:"users"`
	Splits    []Split      `json:"splits"`
	SplitDays []SplitDay   `json:"split_days"`
	Exercises []Exercise   `json:"exercises"`
	Sessions  []Session    `json:"sessions"`
	Sets      []WorkoutSet `json:"sets"`
}

func (d *Dataset) ListUsers() []User { return d.Users }
func (d *Dataset) ListSplits() []Split { return d.Splits }
func (d *Dataset) ListSplitDays() []SplitDay { return d.SplitDays }
func (d *Dataset) ListExercises() []Exercise { return d.Exercises }
func (d *Dataset) ListSessions() []Session { return d.Sessions }
func (d *Dataset) ListSets() []WorkoutSet { return d.Sets }

// ForUser returns the subset of d reachable from userID: the user, their
// splits with days and exercises, and their sessions with sets.
func (d *Dataset) ForUser(userID string) *Dataset {
	out := &Dataset{}
	for _, u := range d.Users {
		if u.ID == userID {
			out.Users = append(out.Users, u)
		}
	}

	splitIDs := make(map[string]bool)
	for _, s := range d.Splits {
		if s.UserID == userID {
			out.Splits = append(out.Splits, s)
			splitIDs[s.ID] = true
		}
	}
	dayIDs := make(map[string]bool)
	for _, sd := range d.SplitDays {
		if splitIDs[sd.SplitID] {
			out.SplitDays = append(out.SplitDays, sd)
			dayIDs[sd.ID] = true
		}
	}
	for _, e := range d.Exercises {
		if dayIDs[e.SplitDayID] {
			out.Exercises = append(out.Exercises, e)
		}
	}

	sessionIDs := make(map[string]bool)
	for _, s := range d.Sessions {
		if s.UserID == userID {
			out.Sessions = append(out.Sessions, s)
			sessionIDs[s.ID] = true
		}
	}
	for _, ws := range d.Sets {
		if sessionIDs[ws.SessionID] {
			out.Sets = append(out.Sets, ws)
		}
	}
	return out
}

// Validate checks the dataset's invariants and referential integrity. All
// violations are reported together; nil means the dataset is consistent.
func (d *Dataset) Validate() error {
	var errs []error

	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		users[u.ID] = true
	}
	splits := make(map[string]bool, len(d.Splits))
	for _, s := range d.Splits {
		splits[s.ID] = true
		if !users[s.UserID] {
			errs = append(errs, fmt.Errorf("split %s: unknown user %s", s.ID, s.UserID))
		}
	}

	days := make(map[string]SplitDay, len(d.SplitDays))
	type splitWeekday struct {
		splitID string
		day     Weekday
	}
	seenDay := make(map[splitWeekday]string)
	for _, sd := range d.SplitDays {
		days[sd.ID] = sd
		if !splits[sd.SplitID] {
			errs = append(errs, fmt.Errorf("split day %s: unknown split %s", sd.ID, sd.SplitID))
		}
		if !sd.DayOfWeek.Valid() {
			errs = append(errs, fmt.Errorf("split day %s: day_of_week %d out of range", sd.ID, sd.DayOfWeek))
		}
		key := splitWeekday{sd.SplitID, sd.DayOfWeek}
		if other, ok := seenDay[key]; ok {
			errs = append(errs, fmt.Errorf("split day %s: %s already scheduled by %s", sd.ID, sd.DayOfWeek, other))
		}
		seenDay[key] = sd.ID
	}

	exercises := make(map[string]bool, len(d.Exercises))
	type dayOrder struct {
		dayID string
		order int
	}
	seenOrder := make(map[dayOrder]string)
	for _, e := range d.Exercises {
		exercises[e.ID] = true
		sd, ok := days[e.SplitDayID]
		if !ok {
			errs = append(errs, fmt.Errorf("exercise %s: unknown split day %s", e.ID, e.SplitDayID))
		} else if sd.IsRestDay {
			errs = append(errs, fmt.Errorf("exercise %s: split day %s is a rest day", e.ID, sd.ID))
		}
		key := dayOrder{e.SplitDayID, e.ExerciseOrder}
		if other, ok := seenOrder[key]; ok {
			errs = append(errs, fmt.Errorf("exercise %s: order %d already used by %s", e.ID, e.ExerciseOrder, other))
		}
		seenOrder[key] = e.ID
	}

	sessions := make(map[string]bool, len(d.Sessions))
	for _, s := range d.Sessions {
		sessions[s.ID] = true
		if !users[s.UserID] {
			errs = append(errs, fmt.Errorf("session %s: unknown user %s", s.ID, s.UserID))
		}
		if _, ok := days[s.SplitDayID]; !ok {
			errs = append(errs, fmt.Errorf("session %s: unknown split day %s", s.ID, s.SplitDayID))
		}
	}

	type setKey struct {
		sessionID, exerciseID string
		number                int
	}
	seenSet := make(map[setKey]string)
	for _, ws := range d.Sets {
		if !sessions[ws.SessionID] {
			errs = append(errs, fmt.Errorf("set %s: unknown session %s", ws.ID, ws.SessionID))
		}
		if !exercises[ws.ExerciseID] {
			errs = append(errs, fmt.Errorf("set %s: unknown exercise %s", ws.ID, ws.ExerciseID))
		}
		if ws.SetNumber < 1 {
			errs = append(errs, fmt.Errorf("set %s: set_number %d is not 1-based", ws.ID, ws.SetNumber))
		}
		key := setKey{ws.SessionID, ws.ExerciseID, ws.SetNumber}
		if other, ok := seenSet[key]; ok {
			errs = append(errs, fmt.Errorf("set %s: set_number %d duplicates %s", ws.ID, ws.SetNumber, other))
		}
		seenSet[key] = ws.ID
	}

	return errors.Join(errs...)
}
