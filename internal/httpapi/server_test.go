package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrosim/backend/internal/bus"
	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/engine"
	"github.com/laundrosim/backend/internal/journal"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	eng := engine.New(config.Default(), journal.NewMemory())
	b := bus.NewLocal()
	t.Cleanup(func() { b.Close() })
	return NewServer(eng, b)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createAgent(t *testing.T, s *Server, id string) {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/agents",
		`{"agent_id":"`+id+`","name":"Suds & Duds"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestMetricsEndpointServes(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAgent(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/agents", `{"agent_id":"a1","name":"Suds"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])

	// Same id again conflicts.
	rec = do(t, s, http.MethodPost, "/api/v1/agents", `{"agent_id":"a1","name":"Again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "INVALID_STATE", body["error_kind"])
}

func TestCreateAgentRequiresID(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/v1/agents", `{"name":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommandAcceptedAndRejected(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodPost, "/api/v1/agents/a1/commands", `{
		"command_kind": "SET_PRICE",
		"payload": {"location_id": "LOC_001", "service_type": "StandardWash", "new_price": 4.25}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["events"])

	// A command the engine rejects surfaces as 422 with the rejection kind.
	rec = do(t, s, http.MethodPost, "/api/v1/agents/a1/commands", `{
		"command_kind": "BUY_EQUIPMENT",
		"payload": {"location_id": "LOC_001", "machine_kind": "WASHER", "quantity": 100}
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "INSUFFICIENT_FUNDS", body["error_kind"])
}

func TestCommandRequiresKind(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodPost, "/api/v1/agents/a1/commands", `{"payload":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownCommandKind(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodPost, "/api/v1/agents/a1/commands",
		`{"command_kind":"TELEPORT"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "UNKNOWN_COMMAND", decode(t, rec)["error_kind"])
}

func TestAdvance(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodPost, "/api/v1/agents/a1/advance", `{"days":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["ok"])

	rec = do(t, s, http.MethodGet, "/api/v1/agents/a1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode(t, rec)
	assert.Equal(t, float64(1), state["week"])
	assert.Equal(t, float64(0), state["day"])
}

func TestAdvanceRejectsZeroDays(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodPost, "/api/v1/agents/a1/advance", `{"days":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStateUnknownAgentIs404(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/api/v1/agents/ghost/state", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodGet, "/api/v1/agents/a1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Events []struct {
			Seq   uint64                 `json:"seq"`
			Event map[string]interface{} `json:"event"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Events, 1)
	assert.Equal(t, "AgentCreated", out.Events[0].Event["event_kind"])
}

func TestHistoryLimitValidation(t *testing.T) {
	s := testServer(t)
	createAgent(t, s, "a1")

	rec := do(t, s, http.MethodGet, "/api/v1/agents/a1/history?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/agents/a1/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
