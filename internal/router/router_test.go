package router

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stellar-pets-go/internal/api"
	"stellar-pets-go/internal/database"
	"stellar-pets-go/internal/metrics"
	"stellar-pets-go/internal/models"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	petStore, err := database.NewServiceWithDB(context.Background(), db)
	require.NoError(t, err)

	m := metrics.New()
	svc := api.NewPetService(petStore, models.DefaultPetCatalog(), nil).WithRecorder(m)
	cfg := models.ServerConfig{Env: "test", AllowedOrigins: []string{"*"}}
	return Setup(cfg, svc, m), db
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "sqlite", body["historyBackend"])
}

func TestGoalDepositWithdrawFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/goal/create",
		`{"walletAddress":"GABC","goalAmount":5000,"depositAmount":50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["userId"])
	pet := data["petState"].(map[string]any)
	assert.Equal(t, float64(50), pet["health"])
	assert.Equal(t, "My Pet", pet["petName"])
	assert.NotContains(t, pet, "version")

	w, body = do(t, r, http.MethodPost, "/pet/calculate",
		`{"walletAddress":"GABC","depositAmount":"50","scheduledAmount":50,"onTime":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Pet is happy!", body["message"])
	newState := body["newState"].(map[string]any)
	assert.Equal(t, float64(55), newState["health"])
	assert.Equal(t, float64(60), newState["happiness"])
	assert.Equal(t, float64(1), newState["streakDays"])
	assert.Equal(t, float64(50), newState["totalSaved"])
	changes := body["changes"].(map[string]any)
	assert.Equal(t, float64(5), changes["healthChange"])

	w, body = do(t, r, http.MethodPost, "/withdraw/process", `{"walletAddress":"GABC","amount":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Withdrawal successful, but pet is very sad!", body["message"])
	penalty := body["penalty"].(map[string]any)
	assert.Equal(t, float64(-30), penalty["healthChange"])
	assert.Equal(t, float64(-40), penalty["happinessChange"])

	w, body = do(t, r, http.MethodGet, "/pet/state?wallet=GABC", "")
	require.Equal(t, http.StatusOK, w.Code)
	state := body["petState"].(map[string]any)
	assert.Equal(t, float64(25), state["health"])
	assert.Equal(t, float64(30), state["totalSaved"])
	assert.Equal(t, float64(5000), state["goalAmount"])

	w, body = do(t, r, http.MethodGet, "/deposits?wallet=GABC&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["deposits"], 2)

	w, body = do(t, r, http.MethodGet, "/leaderboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	board := body["leaderboard"].([]any)
	require.Len(t, board, 1)
	assert.Equal(t, "GABC", board[0].(map[string]any)["user"])
}

func TestErrorMapping(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing goal fields", http.MethodPost, "/goal/create", `{"walletAddress":"GABC"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/goal/create", `{"walletAddress":`, http.StatusBadRequest},
		{"unknown pet type", http.MethodPost, "/goal/create", `{"walletAddress":"G","petType":"cat","goalAmount":1,"depositAmount":1}`, http.StatusBadRequest},
		{"deposit unknown wallet", http.MethodPost, "/pet/calculate", `{"walletAddress":"GNOPE","depositAmount":5}`, http.StatusNotFound},
		{"withdraw missing amount", http.MethodPost, "/withdraw/process", `{"walletAddress":"GABC"}`, http.StatusBadRequest},
		{"state missing wallet", http.MethodGet, "/pet/state", "", http.StatusBadRequest},
		{"state unknown wallet", http.MethodGet, "/pet/state?wallet=GNOPE", "", http.StatusNotFound},
		{"history bad limit", http.MethodGet, "/deposits?wallet=GABC&limit=abc", "", http.StatusBadRequest},
		{"leaderboard limit too large", http.MethodGet, "/leaderboard?limit=1000", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := do(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestPersistenceErrorCarriesDetails(t *testing.T) {
	r, db := newTestRouter(t)
	_, err := db.Exec("DROP TABLE pet_states")
	require.NoError(t, err)

	w, body := do(t, r, http.MethodPost, "/goal/create",
		`{"walletAddress":"GABC","goalAmount":5000,"depositAmount":50}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create goal", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestListPetTypesAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/pets/types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["petTypes"], 3)

	w, _ = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stellar_pets_http_requests_total")
}
