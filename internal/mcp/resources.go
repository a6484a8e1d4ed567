package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

type todayResult struct {
	models.TodayView
	Message           string                     `json:"message"`
	HasRecentWorkouts bool                       `json:"has_recent_workouts"`
	Exercises         []models.Exercise          `json:"exercises,omitempty"`
	LastSession       *models.SessionWithDetails `json:"last_session,omitempty"`
}

func todaySummary(t *tracker.Tracker, ref time.Time) todayResult {
	res := todayResult{
		TodayView:         t.Today(ref),
		Message:           tracker.MotivationalMessage(ref),
		HasRecentWorkouts: t.HasRecentWorkouts(),
	}
	if sd, ok := t.TodaysSplitDay(ref); ok && !sd.IsRestDay {
		if overview, ok := t.SplitOverview(sd.SplitID); ok {
			for _, d := range overview.SplitDays {
				if d.SplitDay.ID == sd.ID {
					res.Exercises = d.Exercises
				}
			}
		}
	}
	if recent := t.RecentSessions(1); len(recent) == 1 {
		res.LastSession = &recent[0]
	}
	return res
}

func (h *handlers) today(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	t, err := h.tracker(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(todaySummary(t, h.now().In(h.loc)))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
