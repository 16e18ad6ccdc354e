package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tradewarsim/tradewar"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer() http.Handler {
	return NewServer(tradewar.DefaultProfiles(), nil).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func validGameRequest() map[string]interface{} {
	moves := []map[string]interface{}{
		{"name": "open_dialogue", "type": "cooperative", "probability": 0.5},
		{"name": "raise_tariffs", "type": "defective", "probability": 0.5},
	}
	payoffs := []map[string]interface{}{
		{"user_move_name": "open_dialogue", "computer_move_name": "open_dialogue", "payoff": map[string]float64{"user": 3, "computer": 3}},
		{"user_move_name": "open_dialogue", "computer_move_name": "raise_tariffs", "payoff": map[string]float64{"user": 0, "computer": 5}},
		{"user_move_name": "raise_tariffs", "computer_move_name": "open_dialogue", "payoff": map[string]float64{"user": 5, "computer": 0}},
		{"user_move_name": "raise_tariffs", "computer_move_name": "raise_tariffs", "payoff": map[string]float64{"user": 1, "computer": 1}},
	}
	return map[string]interface{}{
		"user_moves":       moves,
		"computer_moves":   moves,
		"payoff_matrix":    payoffs,
		"user_strategy":    "tit_for_tat",
		"first_move":       "open_dialogue",
		"computer_profile": "Balanced",
		"num_rounds":       20,
		"seed":             int64(1),
	}
}

func createTestGame(t *testing.T, handler http.Handler) string {
	t.Helper()
	w := doJSON(t, handler, http.MethodPost, "/games", validGameRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		GameID string `json:"game_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.GameID == "" {
		t.Fatal("no game id in response")
	}
	return resp.GameID
}

func TestCreateAndPlayGame(t *testing.T) {
	handler := testServer()
	id := createTestGame(t, handler)

	// Step one round with the strategy engine.
	w := doJSON(t, handler, http.MethodPost, "/games/"+id+"/rounds", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("play round: status %d, body %s", w.Code, w.Body.String())
	}
	var roundResp struct {
		Round tradewar.RoundResult `json:"round"`
		Done  bool                 `json:"done"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &roundResp); err != nil {
		t.Fatal(err)
	}
	if roundResp.Round.UserMove != "open_dialogue" {
		t.Errorf("round 0 user move = %s, want the configured first move", roundResp.Round.UserMove)
	}

	// Step one round with an explicit user move override.
	w = doJSON(t, handler, http.MethodPost, "/games/"+id+"/rounds", map[string]string{"user_move": "raise_tariffs"})
	if w.Code != http.StatusOK {
		t.Fatalf("play round with override: status %d, body %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &roundResp); err != nil {
		t.Fatal(err)
	}
	if roundResp.Round.UserMove != "raise_tariffs" {
		t.Errorf("override round user move = %s, want raise_tariffs", roundResp.Round.UserMove)
	}

	// Game state reflects the two played rounds.
	w = doJSON(t, handler, http.MethodGet, "/games/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get game: status %d", w.Code)
	}
	var stateResp struct {
		Round   int                   `json:"round"`
		History []tradewar.RoundResult `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stateResp); err != nil {
		t.Fatal(err)
	}
	if stateResp.Round != 2 || len(stateResp.History) != 2 {
		t.Errorf("state = round %d with %d history entries, want 2/2", stateResp.Round, len(stateResp.History))
	}
}

func TestPlayFullGame(t *testing.T) {
	handler := testServer()
	id := createTestGame(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/games/"+id+"/play", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("play full: status %d, body %s", w.Code, w.Body.String())
	}
	var result tradewar.GameResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Rounds) != 20 {
		t.Errorf("played %d rounds, want 20", len(result.Rounds))
	}
	if result.WinnerName == "" {
		t.Error("no winner in result")
	}
}

func TestCreateGameValidation(t *testing.T) {
	handler := testServer()

	mutations := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"unknown strategy", func(r map[string]interface{}) { r["user_strategy"] = "always_win" }},
		{"unknown profile", func(r map[string]interface{}) { r["computer_profile"] = "Nonexistent" }},
		{"unknown first move", func(r map[string]interface{}) { r["first_move"] = "surrender" }},
		{"missing moves", func(r map[string]interface{}) { delete(r, "user_moves") }},
		{"bad move type", func(r map[string]interface{}) {
			r["user_moves"] = []map[string]interface{}{{"name": "x", "type": "sneaky"}}
		}},
	}
	for _, tc := range mutations {
		req := validGameRequest()
		tc.mutate(req)
		if w := doJSON(t, handler, http.MethodPost, "/games", req); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", tc.name, w.Code)
		}
	}
}

func TestUnknownGameID(t *testing.T) {
	handler := testServer()
	if w := doJSON(t, handler, http.MethodGet, "/games/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("get: status %d, want 404", w.Code)
	}
	if w := doJSON(t, handler, http.MethodPost, "/games/nope/rounds", nil); w.Code != http.StatusNotFound {
		t.Errorf("play: status %d, want 404", w.Code)
	}
	if w := doJSON(t, handler, http.MethodDelete, "/games/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete: status %d, want 404", w.Code)
	}
}

func TestDeleteGame(t *testing.T) {
	handler := testServer()
	id := createTestGame(t, handler)

	if w := doJSON(t, handler, http.MethodDelete, "/games/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d, want 204", w.Code)
	}
	if w := doJSON(t, handler, http.MethodGet, "/games/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", w.Code)
	}
}

func TestListProfiles(t *testing.T) {
	handler := testServer()
	w := doJSON(t, handler, http.MethodGet, "/profiles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Profiles   []string `json:"profiles"`
		Strategies []string `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Profiles) == 0 || len(resp.Strategies) == 0 {
		t.Errorf("empty catalog response: %+v", resp)
	}
}

func TestRunSuiteEndpoint(t *testing.T) {
	handler := testServer()
	req := validGameRequest()
	delete(req, "user_strategy")
	delete(req, "num_rounds")
	req["user_strategies"] = []string{"random"}
	req["num_simulations"] = 20
	req["rounds_mean"] = 20.0
	req["rounds_std"] = 5.0
	req["rounds_min"] = 10
	req["rounds_max"] = 30

	w := doJSON(t, handler, http.MethodPost, "/simulations", req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Results []struct {
			Strategy string  `json:"user_strategy"`
			WinRate  float64 `json:"win_rate"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Strategy != "random" {
		t.Fatalf("unexpected suite results: %s", w.Body.String())
	}
	if wr := resp.Results[0].WinRate; wr < 0 || wr > 100 {
		t.Errorf("win rate %v outside [0, 100]", wr)
	}
}
