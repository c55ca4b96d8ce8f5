package api

import (
	"bytes"
	"context"
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/api/handlers"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/logger"
	"crew-route-service/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

type stubRepo struct {
	schedules map[string][]domain.Location
	err       error
}

func (s stubRepo) ListScheduleLocations(_ context.Context, id string) ([]domain.Location, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.schedules[id], nil
}

var squareLocations = []domain.Location{
	{ID: "L0", Latitude: 0, Longitude: 0},
	{ID: "L1", Latitude: 0, Longitude: 1},
	{ID: "L2", Latitude: 1, Longitude: 1},
	{ID: "L3", Latitude: 1, Longitude: 0},
}

const squareBody = `{"locations":[
	{"id":"L0","latitude":0,"longitude":0},
	{"id":"L1","latitude":0,"longitude":1},
	{"id":"L2","latitude":1,"longitude":1},
	{"id":"L3","latitude":1,"longitude":0}
]}`

func newTestRouter(repo stubRepo) http.Handler {
	return NewRouter(Deps{
		Optimizer: services.NewOptimizer(nil, 0, 2),
		Locations: repo,
		Defaults:  handlers.RouteDefaults{MaxLocations: 5, MaxBatchSize: 2},
		Now:       func() time.Time { return fixedNow },
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(stubRepo{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOptimizeSquare(t *testing.T) {
	rec := do(t, newTestRouter(stubRepo{}), http.MethodPost, "/api/routes/optimize", squareBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.OptimizeRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	ids := make([]string, 0, len(res.Route.Points))
	for _, p := range res.Route.Points {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"L0", "L1", "L2", "L3"}, ids)
	assert.InDelta(t, 333567.84, res.Route.TotalDistance, 0.01)
	assert.True(t, res.Route.Points[0].ArrivalTime.Equal(fixedNow))

	assert.Equal(t, dto.RouteSummary{
		Stops:           4,
		TotalDistance:   "333.6 km",
		TotalDuration:   "11 h 7 min",
		TotalTravelTime: "11 h 7 min",
		StartsAt:        "8:00 AM",
		FinishesAt:      "7:07 PM",
	}, res.Summary)
}

func TestOptimizeExplicitOptions(t *testing.T) {
	body := `{
		"locations":[
			{"id":"a","name":"Office","latitude":33.45,"longitude":-112.07,"duration":15},
			{"id":"b","latitude":33.50,"longitude":-112.10,"duration":30},
			{"id":"c","latitude":33.42,"longitude":-111.94}
		],
		"startLocationIndex":1,
		"endLocationIndex":0,
		"startTime":"2026-03-02T09:30:00-07:00",
		"algorithm":"nearest",
		"averageSpeed":45,
		"maxIterations":10
	}`
	rec := do(t, newTestRouter(stubRepo{}), http.MethodPost, "/api/routes/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.OptimizeRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Route.Points, 3)
	assert.Equal(t, "b", res.Route.Points[0].ID)
	assert.Equal(t, "a", res.Route.Points[2].ID)
	assert.Equal(t, "Office", res.Route.Points[2].Name)
	assert.Equal(t, "9:30 AM", res.Summary.StartsAt)
	assert.InDelta(t, res.Route.TotalTravelTime+45, res.Route.TotalDuration, 1e-9)
}

func TestOptimizeRejectsBadRequests(t *testing.T) {
	router := newTestRouter(stubRepo{})

	cases := []struct {
		name    string
		body    string
		contain string
	}{
		{"empty body", ``, "invalid json"},
		{"malformed", `{"locations":`, "invalid json"},
		{"unknown field", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"vehicle":"van"}`, "invalid json"},
		{"two objects", `{"locations":[{"id":"a","latitude":1,"longitude":1}]}{}`, "only one JSON object"},
		{"no locations", `{"locations":[]}`, "locations"},
		{"missing id", `{"locations":[{"latitude":1,"longitude":1}]}`, "locations[0].id"},
		{"missing latitude", `{"locations":[{"id":"a","longitude":1}]}`, "locations[0].latitude"},
		{"latitude range", `{"locations":[{"id":"a","latitude":91,"longitude":1}]}`, "locations[0].latitude"},
		{"longitude range", `{"locations":[{"id":"a","latitude":1,"longitude":-180.5}]}`, "locations[0].longitude"},
		{"negative duration", `{"locations":[{"id":"a","latitude":1,"longitude":1,"duration":-1}]}`, "duration"},
		{"bad algorithm", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"algorithm":"genetic"}`, "algorithm"},
		{"algorithm case", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"algorithm":" NEAREST "}`, "algorithm"},
		{"zero speed", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"averageSpeed":0}`, "averageSpeed"},
		{"iterations cap", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"maxIterations":5000}`, "maxIterations"},
		{"start out of range", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"startLocationIndex":1}`, "startLocationIndex"},
		{"end out of range", `{"locations":[{"id":"a","latitude":1,"longitude":1},{"id":"b","latitude":2,"longitude":2}],"endLocationIndex":2}`, "endLocationIndex"},
		{"negative start", `{"locations":[{"id":"a","latitude":1,"longitude":1}],"startLocationIndex":-1}`, "startLocationIndex"},
		{"too many locations", `{"locations":[
			{"id":"a","latitude":1,"longitude":1},{"id":"b","latitude":1,"longitude":1},
			{"id":"c","latitude":1,"longitude":1},{"id":"d","latitude":1,"longitude":1},
			{"id":"e","latitude":1,"longitude":1},{"id":"f","latitude":1,"longitude":1}]}`, "at most 5 locations"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/routes/optimize", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			res := decodeError(t, rec)
			assert.Equal(t, handlers.CodeInvalidParameter, res.Code)
			assert.Contains(t, res.Error, tc.contain)
		})
	}
}

func TestOptimizeBatch(t *testing.T) {
	router := newTestRouter(stubRepo{})

	body := `{"routes":[` + squareBody + `,{"locations":[{"id":"solo","latitude":5,"longitude":5,"duration":20}]}]}`
	rec := do(t, router, http.MethodPost, "/api/routes/optimize/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.BatchOptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Routes, 2)
	assert.Len(t, res.Routes[0].Points, 4)
	require.Len(t, res.Routes[1].Points, 1)
	assert.Equal(t, "solo", res.Routes[1].Points[0].ID)
	assert.Equal(t, 20.0, res.Routes[1].TotalDuration)
}

func TestOptimizeBatchRejects(t *testing.T) {
	router := newTestRouter(stubRepo{})

	rec := do(t, router, http.MethodPost, "/api/routes/optimize/batch", `{"routes":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/routes/optimize/batch",
		`{"routes":[`+squareBody+`,`+squareBody+`,`+squareBody+`]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "at most 2 routes")

	rec = do(t, router, http.MethodPost, "/api/routes/optimize/batch",
		`{"routes":[`+squareBody+`,{"locations":[{"id":"a","latitude":1,"longitude":1}],"startLocationIndex":3}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "routes[1].startLocationIndex")
}

func TestOptimizeSchedule(t *testing.T) {
	router := newTestRouter(stubRepo{schedules: map[string][]domain.Location{"crew-a": squareLocations}})

	rec := do(t, router, http.MethodPost, "/api/schedules/crew-a/optimize", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.OptimizeRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Route.Points, 4)
	assert.Equal(t, "8:00 AM", res.Summary.StartsAt)

	rec = do(t, router, http.MethodPost, "/api/schedules/crew-a/optimize", `{"endLocationIndex":1,"algorithm":"nearest"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "L1", res.Route.Points[len(res.Route.Points)-1].ID)

	rec = do(t, router, http.MethodPost, "/api/schedules/crew-a/optimize", `{"endLocationIndex":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/schedules/crew-a/optimize", `{"locations":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeScheduleNotFound(t *testing.T) {
	rec := do(t, newTestRouter(stubRepo{}), http.MethodPost, "/api/schedules/ghost/optimize", "{}")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handlers.CodeNotFound, decodeError(t, rec).Code)
}

func TestOptimizeScheduleRepositoryFailure(t *testing.T) {
	rec := do(t, newTestRouter(stubRepo{err: errors.New("db down")}), http.MethodPost, "/api/schedules/crew-a/optimize", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	res := decodeError(t, rec)
	assert.Equal(t, handlers.CodeInternal, res.Code)
	assert.NotContains(t, res.Error, "db down")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	router := newTestRouter(stubRepo{})

	rec := do(t, router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handlers.CodeNotFound, decodeError(t, rec).Code)

	rec = do(t, router, http.MethodGet, "/api/routes/optimize", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(stubRepo{})

	rec := do(t, router, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(stubRepo{})
	do(t, router, http.MethodPost, "/api/routes/optimize", squareBody)

	rec := do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "route_optimizations_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRecoveryWritesInternalError(t *testing.T) {
	r := gin.New()
	r.Use(recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := do(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, handlers.CodeInternal, decodeError(t, rec).Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/routes/optimize", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	newTestRouter(stubRepo{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
