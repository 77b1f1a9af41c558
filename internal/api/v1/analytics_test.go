package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsBuckets(t *testing.T) {
	app := newTestApp()
	email := registerUser(t, app, "analyst")
	cookie, _ := loginUser(t, app, email)

	createTask(t, app, cookie, map[string]string{"title": "p1", "status": "pending"})
	createTask(t, app, cookie, map[string]string{"title": "p2", "status": "pending"})
	createTask(t, app, cookie, map[string]string{"title": "c1", "status": "completed"})
	// Custom statuses count toward the total but get no bucket.
	createTask(t, app, cookie, map[string]string{"title": "x1", "status": "blocked"})

	resp := doJSON(t, app, "GET", "/api/analytics", nil, withBearer(cookie.Value))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)

	assert.Equal(t, float64(4), result["total_tasks"])
	byStatus := result["tasks_by_status"].(map[string]interface{})
	assert.Equal(t, float64(2), byStatus["pending"])
	assert.Equal(t, float64(0), byStatus["in_progress"])
	assert.Equal(t, float64(1), byStatus["completed"])
}

func TestAnalyticsEmptyUser(t *testing.T) {
	app := newTestApp()
	email := registerUser(t, app, "idle")
	cookie, _ := loginUser(t, app, email)

	resp := doJSON(t, app, "GET", "/api/analytics", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)

	assert.Equal(t, float64(0), result["total_tasks"])
	byStatus := result["tasks_by_status"].(map[string]interface{})
	assert.Equal(t, float64(0), byStatus["pending"])
	assert.Equal(t, float64(0), byStatus["in_progress"])
	assert.Equal(t, float64(0), byStatus["completed"])
}

func TestAnalyticsCacheInvalidatedOnMutation(t *testing.T) {
	app := newTestApp()
	email := registerUser(t, app, "cached")
	cookie, _ := loginUser(t, app, email)

	createTask(t, app, cookie, map[string]string{"title": "first"})

	// Prime the cache.
	resp := doJSON(t, app, "GET", "/api/analytics", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	require.Equal(t, float64(1), result["total_tasks"])

	// A mutation must invalidate the cached entry.
	createTask(t, app, cookie, map[string]string{"title": "second"})

	resp = doJSON(t, app, "GET", "/api/analytics", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(2), result["total_tasks"])
}
