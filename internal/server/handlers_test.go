package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/engine"
	"github.com/user/hunter-idle/internal/store"
	"github.com/user/hunter-idle/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	processor := engine.NewProcessor(store.NewMemoryStore(), content.DefaultCatalog(), zap.NewNop())
	handler := NewHandler(processor, zap.NewNop())
	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, userID string, body interface{}) (*http.Response, actionResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set(userHeader, userID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded actionResponse
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMissingUserHeader(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doRequest(t, server, http.MethodGet, "/api/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodPost, "/api/actions/gatherResource", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetStateEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, http.MethodGet, "/api/state", "user-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	require.NotNil(t, body.State)
	assert.Equal(t, 1, body.State.Hunter.Level)
	assert.Equal(t, 100.0, body.State.ResourceCaps[types.ResourceEssence])
}

func TestActionEndpoint(t *testing.T) {
	server := newTestServer(t)
	doRequest(t, server, http.MethodGet, "/api/state", "user-1", nil)

	resp, body := doRequest(t, server, http.MethodPost, "/api/actions/gatherResource", "user-1", map[string]string{
		"clientTransactionId": "tx-1",
		"resource":            types.ResourceEssence,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	require.NotNil(t, body.State)
	assert.Equal(t, 1.0, body.State.Resources[types.ResourceEssence])
}

func TestActionEndpointErrorMapping(t *testing.T) {
	server := newTestServer(t)
	doRequest(t, server, http.MethodGet, "/api/state", "user-1", nil)

	// Test case 1: validation failures are 400
	resp, body := doRequest(t, server, http.MethodPost, "/api/actions/gatherResource", "user-1", map[string]string{
		"clientTransactionId": "tx-1",
		"resource":            "stardust",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)

	// Test case 2: unaffordable purchases are 400 with the shortfall
	resp, body = doRequest(t, server, http.MethodPost, "/api/actions/purchaseBuilding", "user-1", map[string]string{
		"clientTransactionId": "tx-2",
		"buildingId":          "essence_well",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, types.ResourceMap{types.ResourceEssence: 10}, body.Missing)

	// Test case 3: unknown content is 404
	resp, _ = doRequest(t, server, http.MethodPost, "/api/actions/purchaseBuilding", "user-1", map[string]string{
		"clientTransactionId": "tx-3",
		"buildingId":          "wizard_tower",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Test case 4: locked content is 409
	resp, _ = doRequest(t, server, http.MethodPost, "/api/actions/startDungeon", "user-1", map[string]string{
		"clientTransactionId": "tx-4",
		"dungeonId":           "ice_caverns",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownAction(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doRequest(t, server, http.MethodPost, "/api/actions/timeTravel", "user-1", map[string]string{
		"clientTransactionId": "tx-1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidBody(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/actions/gatherResource", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set(userHeader, "user-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
