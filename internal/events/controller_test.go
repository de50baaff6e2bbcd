package events

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/shared/constants"
	"eventhub/pkg/logger"
)

// roleAuth authenticates every request with the role from X-Role.
func roleAuth(c *gin.Context) {
	role := c.GetHeader("X-Role")
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Set(constants.CtxUserID, int64(1))
	c.Set(constants.CtxUserRole, role)
	c.Next()
}

func newTestRouter(t *testing.T) (*gin.Engine, Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	SetupEventRoutes(r.Group("/api/v1"), NewController(svc, logger.Nop()), roleAuth)
	return r, svc
}

func request(t *testing.T, r http.Handler, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, into))
}

func TestCreateEventEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]interface{}{
		"title":      "Tech Conference",
		"date":       "2026-07-01",
		"time":       "09:00",
		"location":   "SMX Convention Center",
		"category":   "Technology",
		"price":      3500,
		"rows":       8,
		"totalSeats": 96,
		"featured":   true,
	}

	assert.Equal(t, http.StatusUnauthorized, request(t, r, http.MethodPost, "/api/v1/events", "", body).Code)
	assert.Equal(t, http.StatusForbidden, request(t, r, http.MethodPost, "/api/v1/events", constants.RoleUser, body).Code)

	w := request(t, r, http.MethodPost, "/api/v1/events", constants.RoleAdmin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created Event
	decodeData(t, w, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 96, created.TotalSeats)
	assert.Equal(t, 12, created.SeatMap.Cols())

	body["date"] = "01/07/2026"
	assert.Equal(t, http.StatusBadRequest, request(t, r, http.MethodPost, "/api/v1/events", constants.RoleAdmin, body).Code)
}

func TestBrowseEndpoints(t *testing.T) {
	r, svc := newTestRouter(t)
	req := createRequest("Summer Music Festival", "Music")
	req.Featured = true
	_, err := svc.CreateEvent(t.Context(), req)
	require.NoError(t, err)
	_, err = svc.CreateEvent(t.Context(), createRequest("Tech Conference", "Technology"))
	require.NoError(t, err)

	w := request(t, r, http.MethodGet, "/api/v1/events?search=tech", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Events []EventSummary `json:"events"`
		Count  int            `json:"count"`
	}
	decodeData(t, w, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Tech Conference", list.Events[0].Title)
	assert.Equal(t, StatusActive, list.Events[0].Status)

	w = request(t, r, http.MethodGet, "/api/v1/events/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var featured []EventSummary
	decodeData(t, w, &featured)
	require.Len(t, featured, 1)
	assert.Equal(t, int64(1), featured[0].ID)

	w = request(t, r, http.MethodGet, "/api/v1/events/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	decodeData(t, w, &categories)
	assert.Equal(t, []string{"Music", "Technology"}, categories)

	w = request(t, r, http.MethodGet, "/api/v1/events/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var event Event
	decodeData(t, w, &event)
	assert.Equal(t, 12, event.SeatMap.Capacity())

	assert.Equal(t, http.StatusNotFound, request(t, r, http.MethodGet, "/api/v1/events/9", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, request(t, r, http.MethodGet, "/api/v1/events/abc", "", nil).Code)
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.CreateEvent(t.Context(), createRequest("Summer Music Festival", "Music"))
	require.NoError(t, err)

	w := request(t, r, http.MethodPut, "/api/v1/events/1", constants.RoleAdmin, map[string]interface{}{"title": "Summer Fest"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated Event
	decodeData(t, w, &updated)
	assert.Equal(t, "Summer Fest", updated.Title)

	assert.Equal(t, http.StatusBadRequest,
		request(t, r, http.MethodPut, "/api/v1/events/1", constants.RoleAdmin, map[string]interface{}{"title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound,
		request(t, r, http.MethodPut, "/api/v1/events/5", constants.RoleAdmin, map[string]interface{}{"title": "Other"}).Code)

	assert.Equal(t, http.StatusForbidden, request(t, r, http.MethodDelete, "/api/v1/events/1", constants.RoleUser, nil).Code)
	assert.Equal(t, http.StatusOK, request(t, r, http.MethodDelete, "/api/v1/events/1", constants.RoleAdmin, nil).Code)
	assert.Equal(t, http.StatusNotFound, request(t, r, http.MethodDelete, "/api/v1/events/1", constants.RoleAdmin, nil).Code)
}
