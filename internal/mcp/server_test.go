package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/seed"
	"github.com/mark3labs/mcp-go/mcp"
)

var wednesday = time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)

func testHandlers(t *testing.T, ds *models.Dataset) *handlers {
	t.Helper()
	h := newHandlers(seed.NewStore(ds), Options{UserID: seed.UserID, Location: time.UTC}, slog.Default())
	h.now = func() time.Time { return wednesday }
	return h
}

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, fn toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	return callContext(t, context.Background(), fn, args)
}

func callContext(t *testing.T, ctx context.Context, fn toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(ctx, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var text strings.Builder
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			text.WriteString(tc.Text)
		case *mcp.TextContent:
			text.WriteString(tc.Text)
		}
	}
	return text.String(), res.IsError
}

// TestUserIDFromContextDefault verifies that no user is reported when the
// transport set none.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != "" {
		t.Errorf("UserIDFromContext(empty) = %q, want empty", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), "u-42")
	if id := UserIDFromContext(ctx); id != "u-42" {
		t.Errorf("UserIDFromContext = %q, want %q", id, "u-42")
	}
}

// TestGetToday verifies the today tool on a training day and a rest day.
func TestGetToday(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	text, isErr := call(t, h.getToday, nil)
	if isErr {
		t.Fatalf("get_today error: %s", text)
	}
	var got todayResult
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.WorkoutName != "Legs" || got.Status != "Available" {
		t.Errorf("today = %q/%q, want Legs/Available", got.WorkoutName, got.Status)
	}
	if len(got.Exercises) != 2 {
		t.Errorf("exercises = %d, want 2", len(got.Exercises))
	}
	if got.LastSession == nil || got.LastSession.Session.ID != seed.PullSessionID {
		t.Errorf("last session = %+v, want pull session", got.LastSession)
	}

	text, _ = call(t, h.getToday, map[string]any{"date": "2025-04-17"})
	got = todayResult{}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.HasWorkout || got.Status != "Rest Day" {
		t.Errorf("thursday = %v/%q, want false/Rest Day", got.HasWorkout, got.Status)
	}

	if _, isErr := call(t, h.getToday, map[string]any{"date": "tomorrow"}); !isErr {
		t.Error("expected error for invalid date")
	}
}

// TestGetSplit verifies the active split default and lookups by id.
func TestGetSplit(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	text, isErr := call(t, h.getSplit, nil)
	if isErr {
		t.Fatalf("get_split error: %s", text)
	}
	var got models.SplitWithDays
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.Split.Name != "Push/Pull/Legs" {
		t.Errorf("split = %q, want Push/Pull/Legs", got.Split.Name)
	}

	tests := []struct {
		id      string
		wantErr bool
	}{
		{seed.SplitID, false},
		{"550e8400-e29b-41d4-a716-446655449999", true},
		{"nope", true},
	}
	for _, tt := range tests {
		if _, isErr := call(t, h.getSplit, map[string]any{"split_id": tt.id}); isErr != tt.wantErr {
			t.Errorf("split_id %q: error = %v, want %v", tt.id, isErr, tt.wantErr)
		}
	}

	empty := testHandlers(t, &models.Dataset{})
	if text, isErr := call(t, empty.getSplit, nil); !isErr || !strings.Contains(text, "no split") {
		t.Errorf("empty dataset = %q (error %v), want no split error", text, isErr)
	}
}

// TestGetRecentSessions verifies ordering and the limit argument.
func TestGetRecentSessions(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	text, _ := call(t, h.getRecentSessions, map[string]any{"limit": 1})
	var got []models.SessionWithDetails
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got) != 1 || got[0].Session.ID != seed.PullSessionID {
		t.Errorf("sessions = %+v, want only the pull session", got)
	}

	if _, isErr := call(t, h.getRecentSessions, map[string]any{"limit": 0}); !isErr {
		t.Error("expected error for limit 0")
	}
}

// TestGetSession verifies grouping and absent sessions.
func TestGetSession(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	text, isErr := call(t, h.getSession, map[string]any{"session_id": seed.LegSessionID})
	if isErr {
		t.Fatalf("get_session error: %s", text)
	}
	var got models.SessionWithDetails
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got.Exercises) != 2 || got.Exercises[0].Exercise.Name != "Squats" {
		t.Errorf("exercises = %+v, want Squats first", got.Exercises)
	}

	if _, isErr := call(t, h.getSession, nil); !isErr {
		t.Error("expected error without session_id")
	}
	if text, isErr := call(t, h.getSession, map[string]any{"session_id": seed.SplitID}); !isErr || !strings.Contains(text, "not found") {
		t.Errorf("unknown session = %q (error %v), want not found", text, isErr)
	}
}

// TestGetExerciseProgress verifies lookups by id and by name.
func TestGetExerciseProgress(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	for _, q := range []string{seed.BarbellRowsID, "barbell rows"} {
		text, isErr := call(t, h.getExerciseProgress, map[string]any{"exercise": q})
		if isErr {
			t.Fatalf("%q: %s", q, text)
		}
		var got models.ExerciseProgress
		if err := json.Unmarshal([]byte(text), &got); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if got.MaxWeight != 125 || got.MaxReps != 8 || got.TotalVolume != 2590 {
			t.Errorf("%q: progress = %+v, want 125/8/2590", q, got)
		}
	}

	if _, isErr := call(t, h.getExerciseProgress, map[string]any{"exercise": "Bench Press"}); !isErr {
		t.Error("expected not found for an exercise without sets")
	}
}

// TestGetProgress verifies stats and the muscle filter.
func TestGetProgress(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))

	text, isErr := call(t, h.getProgress, map[string]any{"muscle": "legs"})
	if isErr {
		t.Fatalf("get_progress error: %s", text)
	}
	var got struct {
		Stats     models.ProgressStats      `json:"stats"`
		Exercises []models.ExerciseProgress `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.Stats.TotalVolume != 15395 {
		t.Errorf("total volume = %v, want 15395", got.Stats.TotalVolume)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].ExerciseName != "Squats" {
		t.Errorf("legs exercises = %+v, want Squats", got.Exercises)
	}

	if _, isErr := call(t, h.getProgress, map[string]any{"muscle": "elbows"}); !isErr {
		t.Error("expected error for unknown muscle group")
	}
}

// TestTodayResource verifies the resource renders JSON under its URI.
func TestTodayResource(t *testing.T) {
	h := testHandlers(t, seed.Dataset(wednesday))
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "liftium://today"

	contents, err := h.today(context.Background(), req)
	if err != nil {
		t.Fatalf("today resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type = %T, want TextResourceContents", contents[0])
	}
	if tc.URI != "liftium://today" || !strings.Contains(tc.Text, `"workout_name":"Legs"`) {
		t.Errorf("resource = %+v", tc)
	}
}

// TestNewRegistersTools verifies the server builds with every tool.
func TestNewRegistersTools(t *testing.T) {
	s := New(seed.NewStore(seed.Dataset(wednesday)), Options{UserID: seed.UserID}, slog.Default())
	if s == nil {
		t.Fatal("New returned nil")
	}
}

// TestToolsAcceptOpaqueIDs verifies lookups work for ids that are not UUIDs.
func TestToolsAcceptOpaqueIDs(t *testing.T) {
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	ds := &models.Dataset{
		Users:     []models.User{{ID: "U1"}},
		Splits:    []models.Split{{ID: "S1", UserID: "U1", Name: "Upper/Lower"}},
		SplitDays: []models.SplitDay{{ID: "D2", SplitID: "S1", DayOfWeek: models.Monday, Name: "Upper"}},
		Exercises: []models.Exercise{{ID: "E1", SplitDayID: "D2", Name: "Bench Press", ExerciseOrder: 1}},
		Sessions:  []models.Session{{ID: "X1", UserID: "U1", SplitDayID: "D2", Date: day, CreatedAt: day}},
		Sets:      []models.WorkoutSet{{ID: "W1", SessionID: "X1", ExerciseID: "E1", SetNumber: 1, Reps: 5, Weight: 100}},
	}
	h := newHandlers(seed.NewStore(ds), Options{UserID: "U1", Location: time.UTC}, slog.Default())
	h.now = func() time.Time { return wednesday }

	if text, isErr := call(t, h.getSplit, map[string]any{"split_id": "S1"}); isErr {
		t.Errorf("get_split S1: %s", text)
	}
	if text, isErr := call(t, h.getSession, map[string]any{"session_id": "X1"}); isErr {
		t.Errorf("get_session X1: %s", text)
	}
	for _, q := range []string{"E1", "bench press"} {
		text, isErr := call(t, h.getExerciseProgress, map[string]any{"exercise": q})
		if isErr {
			t.Errorf("get_exercise_progress %q: %s", q, text)
			continue
		}
		var got models.ExerciseProgress
		if err := json.Unmarshal([]byte(text), &got); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if got.ExerciseID != "E1" || got.TotalVolume != 500 {
			t.Errorf("%q: progress = %+v, want E1 with volume 500", q, got)
		}
	}
	if text, isErr := call(t, h.getSplit, map[string]any{"split_id": "S9"}); !isErr || !strings.Contains(text, "not found") {
		t.Errorf("get_split S9 = %q (error %v), want not found", text, isErr)
	}
}

// TestRequestUserScopesTools verifies tool calls answer for the user the HTTP
// layer resolved, and for the configured user when it resolved none.
func TestRequestUserScopesTools(t *testing.T) {
	ds := seed.Dataset(wednesday)
	ds.Users = append(ds.Users, models.User{ID: "other", Email: "other@example.com", UserName: "Other"})
	h := testHandlers(t, ds)

	r := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	tests := []struct {
		name     string
		resolved string
		want     int
	}{
		{"tailnet user", "other", 0},
		{"configured user", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := requestUser(func(*http.Request) string { return tt.resolved })(context.Background(), r)
			if got := UserIDFromContext(ctx); got != tt.resolved {
				t.Errorf("UserIDFromContext = %q, want %q", got, tt.resolved)
			}
			text, isErr := callContext(t, ctx, h.getRecentSessions, nil)
			if isErr {
				t.Fatalf("get_recent_sessions: %s", text)
			}
			var got []models.SessionWithDetails
			if err := json.Unmarshal([]byte(text), &got); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("sessions = %d, want %d", len(got), tt.want)
			}
		})
	}
}

// TestNewHTTPHandler verifies the streamable HTTP handler builds.
func TestNewHTTPHandler(t *testing.T) {
	s := New(seed.NewStore(seed.Dataset(wednesday)), Options{UserID: seed.UserID}, slog.Default())
	if NewHTTPHandler(s, func(*http.Request) string { return "" }) == nil {
		t.Fatal("NewHTTPHandler returned nil")
	}
}
