package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
	"climate-server/internal/modules/climate/views"
	"climate-server/tools/migrate"
	"climate-server/tools/seed"

	_ "github.com/mattn/go-sqlite3"
)

const measurementsCSV = `station,date,prcp,tobs
USC00519397,2010-01-01,0.08,65
USC00519397,2010-01-02,,63
USC00519397,2016-08-21,0.5,79
USC00519397,2016-08-22,0.1,80
USC00519397,2017-08-23,0.0,81
USC00516128,2017-08-23,0.45,76
`

const stationsCSV = `station,name,latitude,longitude,elevation
USC00519397,"WAIKIKI 717.2, HI US",21.2716,-157.8168,3
USC00516128,"MANOA LYON ARBO 785.2, HI US",21.3331,-157.8025,152.4
`

const spanSuffix = "between 2010-01-01 and 2017-08-23"

func openDB(t *testing.T, withData bool) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = migrate.Run(ctx, db)
	require.NoError(t, err)
	if withData {
		_, err = seed.Measurements(ctx, db, strings.NewReader(measurementsCSV))
		require.NoError(t, err)
		_, err = seed.Stations(ctx, db, strings.NewReader(stationsCSV))
		require.NoError(t, err)
	}
	return db
}

func newMux(t *testing.T, db *sql.DB) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	svc := service.NewService(repository.NewRepository(db), nil)
	NewClimateController(svc).RegisterRoutes(mux)
	return mux
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestPrecipitation(t *testing.T) {
	rec := get(t, newMux(t, openDB(t, true)), "/api/v1.0/precipitation")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	got := decode[map[string]*float64](t, rec)
	assert.Len(t, got, 5)
	assert.Contains(t, got, "2010-01-02")
	assert.Nil(t, got["2010-01-02"])
	require.NotNil(t, got["2017-08-23"])
	assert.Equal(t, 0.45, *got["2017-08-23"])
}

func TestStations(t *testing.T) {
	rec := get(t, newMux(t, openDB(t, true)), "/api/v1.0/stations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"USC00519397", "USC00516128"}, decode[[]string](t, rec))
}

func TestStations_EmptyTable(t *testing.T) {
	rec := get(t, newMux(t, openDB(t, false)), "/api/v1.0/stations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTemperatureObservations(t *testing.T) {
	rec := get(t, newMux(t, openDB(t, true)), "/api/v1.0/tobs")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[["2016-08-22", 80], ["2017-08-23", 81], ["2017-08-23", 76]]`, rec.Body.String())
}

func TestTemperatureObservations_EmptyDatasetIs500(t *testing.T) {
	rec := get(t, newMux(t, openDB(t, false)), "/api/v1.0/tobs")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, service.ErrEmptyDataset.Error(), body["message"])
}

func TestStatsRoutes(t *testing.T) {
	mux := newMux(t, openDB(t, true))

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "from known date",
			path: "/api/v1.0/2016-08-22",
			want: `[76, 79, 81]`,
		},
		{
			name: "from unknown date",
			path: "/api/v1.0/2016-08-23",
			want: `"error: 2016-08-23 start date not found in database; please enter date ` + spanSuffix + `"`,
		},
		{
			name: "between known dates",
			path: "/api/v1.0/2010-01-01/2010-01-02",
			want: `[63, 64, 65]`,
		},
		{
			name: "between same date",
			path: "/api/v1.0/2017-08-23/2017-08-23",
			want: `[76, 78.5, 81]`,
		},
		{
			name: "between reversed",
			path: "/api/v1.0/2017-08-23/2010-01-01",
			want: `"start date (2017-08-23) is greater than end date (2010-01-01), please choose a start date less than end date ` + spanSuffix + `"`,
		},
		{
			name: "between both unknown",
			path: "/api/v1.0/2011-01-01/2012-01-01",
			want: `"error: 2011-01-01 (start date) and 2012-01-01 (end date) not found in database; please enter dates ` + spanSuffix + `"`,
		},
		{
			name: "between start unknown",
			path: "/api/v1.0/2011-01-01/2016-08-22",
			want: `"error: 2011-01-01 (start date) not found in database; please enter date ` + spanSuffix + `"`,
		},
		{
			name: "between end unknown",
			path: "/api/v1.0/2010-01-01/2016-09-01",
			want: `"error: 2016-09-01 (end date) not found in database; please enter date ` + spanSuffix + `"`,
		},
		{
			name: "text from known date",
			path: "/api/v1.0/text/2016-08-22",
			want: `"date range: from 2016-08-22 (start) to 2017-08-23 (latest date), temperature results (Min, Avg, Max [Fahrenheit]): [(76.0, 79.0, 81.0)]"`,
		},
		{
			name: "text between known dates",
			path: "/api/v1.0/text/2010-01-01/2010-01-02",
			want: `"start date: 2010-01-01, end date: 2010-01-02, temperature results (Min, Avg, Max [Fahrenheit]): [(63.0, 64.0, 65.0)]"`,
		},
		{
			name: "text between reversed swaps",
			path: "/api/v1.0/text/2017-08-23/2016-08-22",
			want: `"Your start date 2017-08-23 was larger than your end date 2016-08-22, so we swapped them ;) Temperature results (Min, Avg, Max [Fahrenheit]): [(76.0, 79.0, 81.0)]"`,
		},
		{
			name: "text between end unknown",
			path: "/api/v1.0/text/2010-01-01/2016-09-01",
			want: `"error: 2016-09-01 (end date) not found in database; please enter date ` + spanSuffix + `"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, mux, tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, rec.Body.String())

			again := get(t, mux, tt.path)
			assert.Equal(t, rec.Body.String(), again.Body.String())
		})
	}
}

func TestStatsFrom_LatestDateIsSingleDay(t *testing.T) {
	mux := newMux(t, openDB(t, true))

	from := get(t, mux, "/api/v1.0/2017-08-23")
	between := get(t, mux, "/api/v1.0/2017-08-23/2017-08-23")
	assert.JSONEq(t, from.Body.String(), between.Body.String())
}

func TestDataSourceFailureIs500(t *testing.T) {
	db := openDB(t, true)
	mux := newMux(t, db)
	require.NoError(t, db.Close())

	for _, path := range []string{
		"/api/v1.0/precipitation",
		"/api/v1.0/stations",
		"/api/v1.0/2010-01-01",
		"/api/v1.0/text/2010-01-02/2010-01-01",
	} {
		rec := get(t, mux, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}
}

func TestWelcome(t *testing.T) {
	require.NoError(t, views.LoadTemplates())
	mux := newMux(t, openDB(t, true))

	req := httptest.NewRequest(http.MethodGet, "http://climate.example:8080/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "2010-01-01 to 2017-08-23")
	assert.Contains(t, body, `href="http://climate.example:8080/api/v1.0/tobs"`)
}

func TestRouting(t *testing.T) {
	mux := newMux(t, openDB(t, true))

	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/v1.0/2010-01-01/2010-01-02/extra").Code)
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/nope").Code)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1.0/stations", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost:5000/", nil)
	assert.Equal(t, "http://localhost:5000", baseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://localhost:5000", baseURL(req))

	req.Header.Set("X-Forwarded-Proto", "javascript")
	assert.Equal(t, "http://localhost:5000", baseURL(req))
}
