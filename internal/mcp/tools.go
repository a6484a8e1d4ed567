package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultRecentSessions = 5

// tracker loads the request user's dataset. A dataset holding exactly one
// user answers for that user when no id is known.
func (h *handlers) tracker(ctx context.Context) (*tracker.Tracker, error) {
	uid := UserIDFromContext(ctx)
	if uid == "" {
		uid = h.userID
	}
	ds, err := h.ds.LoadDataset(ctx, uid)
	if err != nil {
		return nil, err
	}
	if uid == "" && len(ds.Users) == 1 {
		uid = ds.Users[0].ID
	}
	return tracker.New(ds, uid), nil
}

// referenceDate parses an optional YYYY-MM-DD in the configured location,
// defaulting to now.
func (h *handlers) referenceDate(s string) (time.Time, error) {
	if s == "" {
		return h.now().In(h.loc), nil
	}
	return time.ParseInLocation("2006-01-02", s, h.loc)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool definitions ---

var toolGetToday = mcp.NewTool("get_today",
	mcp.WithDescription("Today's planned workout: the scheduled split day (if any), whether it is a training day, the status label ('Available' or 'Rest Day'), the workout name, and a motivational message."),
	mcp.WithString("date", mcp.Description("Reference date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetSplit = mcp.NewTool("get_split",
	mcp.WithDescription("A training split with its days in weekday order, each with its exercises in training order."),
	mcp.WithString("split_id", mcp.Description("Split UUID. Defaults to the active (most recently created) split.")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("Most recent workout sessions, newest first, each with its split day and the sets logged per exercise."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions. Defaults to 5.")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("One workout session with its split day, split, and the sets logged per exercise in training order."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Overall training statistics (total workouts, current and longest streak, total volume, favorite exercise, average duration) plus max weight, max reps and total volume per exercise."),
	mcp.WithString("date", mcp.Description("Reference date for streaks (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("muscle", mcp.Description("Only include exercises targeting this muscle group (e.g. 'Chest', 'Back', 'Legs').")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Max weight, max reps, total volume and last performed date for one exercise."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise UUID or name (case-insensitive, e.g. 'barbell rows')")),
)

// --- Tool handlers ---

func (h *handlers) getToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := h.referenceDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_today", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return jsonResult(todaySummary(t, ref))
}

func (h *handlers) getSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	splitID := strings.TrimSpace(req.GetString("split_id", ""))

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_split", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if splitID == "" {
		split, ok := t.ActiveSplit()
		if !ok {
			return mcp.NewToolResultError("no split configured"), nil
		}
		splitID = split.ID
	}
	overview, ok := t.SplitOverview(splitID)
	if !ok {
		return mcp.NewToolResultError("split not found: " + splitID), nil
	}
	return jsonResult(overview)
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultRecentSessions)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return jsonResult(t.RecentSessions(limit))
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	details, ok := t.SessionDetails(sessionID)
	if !ok {
		return mcp.NewToolResultError("session not found: " + sessionID), nil
	}
	return jsonResult(details)
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := h.referenceDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	var muscles []models.MuscleGroup
	if label := req.GetString("muscle", ""); label != "" {
		muscles = models.ParseMuscleGroups(label)
		if len(muscles) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown muscle group %q", label)), nil
		}
	}

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	exercises := []models.ExerciseProgress{}
	for _, p := range t.AllExerciseProgress() {
		ex, _ := t.Exercise(p.ExerciseID)
		if len(muscles) > 0 && !targetsAny(ex, muscles) {
			continue
		}
		exercises = append(exercises, p)
	}

	return jsonResult(map[string]any{
		"stats":     t.ProgressStats(ref),
		"exercises": exercises,
	})
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	t, err := h.tracker(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	id := strings.TrimSpace(query)
	if _, known := t.Exercise(id); !known {
		name := id
		id = ""
		for _, p := range t.AllExerciseProgress() {
			if strings.EqualFold(p.ExerciseName, name) {
				id = p.ExerciseID
				break
			}
		}
	}

	progress, ok := t.ExerciseProgress(id)
	if !ok {
		return mcp.NewToolResultError("exercise not found: " + query), nil
	}
	return jsonResult(progress)
}

func targetsAny(ex models.Exercise, groups []models.MuscleGroup) bool {
	for _, g := range groups {
		if ex.Targets(g) {
			return true
		}
	}
	return false
}
