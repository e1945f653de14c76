package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(NewServer(svc, log, 10*time.Second).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "ok" {
		t.Fatalf("body=%v, want status ok", body)
	}
}

func TestCreateAndListHabits(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/habits", map[string]string{
		"title":     "Read",
		"identity":  "I am a reader",
		"easy_step": "Open the book",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d, want 201", resp.StatusCode)
	}
	var created storage.Habit
	decode(t, resp, &created)
	if created.ID == 0 || created.Title != "Read" {
		t.Fatalf("created=%+v", created)
	}
	if created.Schedule != "daily" {
		t.Fatalf("schedule=%q, want daily default", created.Schedule)
	}

	resp, err := http.Get(ts.URL + "/api/habits")
	if err != nil {
		t.Fatalf("GET habits: %v", err)
	}
	var list struct {
		Habits []storage.Habit `json:"habits"`
	}
	decode(t, resp, &list)
	if len(list.Habits) != 1 {
		t.Fatalf("habits=%d, want 1", len(list.Habits))
	}
}

func TestCreateHabitValidationError(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/habits", map[string]string{"title": "Read"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestGetHabitNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/habits/42")
	if err != nil {
		t.Fatalf("GET habit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", resp.StatusCode)
	}
}

func TestCheckinAwardsOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/habits", map[string]string{
		"title":     "Read",
		"identity":  "I am a reader",
		"easy_step": "Open the book",
	})
	var habit storage.Habit
	decode(t, resp, &habit)

	day := engine.DateKey(time.Now())
	resp = postJSON(t, fmt.Sprintf("%s/api/habits/%d/checkin", ts.URL, habit.ID), map[string]any{
		"date":   day,
		"status": "done",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkin status=%d, want 200", resp.StatusCode)
	}
	var res struct {
		Streak       int
		XPAwarded    int
		GoldAwarded  int
		DailyCleared bool
	}
	decode(t, resp, &res)
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Streak)
	}
	// Single habit cleared the day: base 10 + streak 1 + clear 5 / gold 25.
	if res.XPAwarded != 16 || res.GoldAwarded != 25 {
		t.Fatalf("awarded=%d/%d, want 16/25", res.XPAwarded, res.GoldAwarded)
	}
	if !res.DailyCleared {
		t.Fatalf("expected a cleared day")
	}
}

func TestCheckinUnknownHabitIs404(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/habits/99/checkin", map[string]any{
		"status": "done",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", resp.StatusCode)
	}
}

func TestProfileEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/profile")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
	var st struct {
		Rank     string
		XPNeeded int
		Profile  struct {
			Level int
		}
	}
	decode(t, resp, &st)
	if st.Profile.Level != 1 {
		t.Fatalf("level=%d, want 1 for a fresh profile", st.Profile.Level)
	}
	if st.Rank != "E" {
		t.Fatalf("rank=%q, want E for a fresh profile", st.Rank)
	}
	if st.XPNeeded != 75 {
		t.Fatalf("xp needed=%d, want 75 at level 1", st.XPNeeded)
	}
}

func TestQuestsEndpointGeneratesBatch(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/quests")
	if err != nil {
		t.Fatalf("GET quests: %v", err)
	}
	var res struct {
		Quests    []storage.DailyQuest
		Generated bool
	}
	decode(t, resp, &res)
	if !res.Generated {
		t.Fatalf("first fetch must generate the batch")
	}
	if len(res.Quests) != engine.QuestsPerDay {
		t.Fatalf("batch=%d, want %d", len(res.Quests), engine.QuestsPerDay)
	}

	resp, err = http.Get(ts.URL + "/api/quests")
	if err != nil {
		t.Fatalf("GET quests again: %v", err)
	}
	decode(t, resp, &res)
	if res.Generated {
		t.Fatalf("second fetch must reuse the stored batch")
	}
}

func TestBadIDIs400(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/habits/abc")
	if err != nil {
		t.Fatalf("GET habit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message == "" {
		t.Fatalf("error body missing message")
	}
}
