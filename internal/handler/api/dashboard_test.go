package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
	"github.com/kola-ootro/oura-ring-data-collector/internal/usecase"
	xlogger "github.com/kola-ootro/oura-ring-data-collector/pkg/logger"
)

var errInjected = errors.New("injected failure")

type stubSource struct {
	buckets map[models.MetricType]*models.Bucket
}

func (s *stubSource) Fetch(_ context.Context, mt models.MetricType, _, _ time.Time) (*models.Bucket, error) {
	return s.buckets[mt], nil
}

type stubArchive struct {
	store   models.Store
	stamp   string
	loadErr error
}

func (a *stubArchive) Load() (models.Store, error) {
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	if a.store == nil {
		return models.Store{}, nil
	}
	return a.store, nil
}

func (a *stubArchive) Save(store models.Store) error {
	a.store = store
	return nil
}

func (a *stubArchive) LastUpdated() string {
	if a.stamp == "" {
		return "Never"
	}
	return a.stamp
}

func (a *stubArchive) SetLastUpdated(t time.Time) error {
	a.stamp = t.Format("2006-01-02 15:04:05")
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRefresh()                   {}
func (noopMetrics) RecordFetchError(string)          {}
func (noopMetrics) RecordRecordsFetched(string, int) {}
func (noopMetrics) RecordRefreshDuration(float64)    {}

func newTestServer(t *testing.T, src *stubSource, arch *stubArchive, apiKey string) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if src == nil {
		src = &stubSource{}
	}
	ref := usecase.NewRefresher(src, arch, noopMetrics{}, l, 7)
	h := NewDashboardHandler(l, ref, arch, apiKey)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDashboardRedirectsWhenEmpty(t *testing.T) {
	e := newTestServer(t, nil, &stubArchive{}, "key")

	rec := get(e, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/fetch_initial_data" {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestDashboardRendersStore(t *testing.T) {
	arch := &stubArchive{
		store: models.Store{
			"daily_sleep": {Data: []models.Record{{"day": "2026-08-30", "score": float64(81)}}},
		},
		stamp: "2026-08-31 09:00:00",
	}
	e := newTestServer(t, nil, arch, "key")

	rec := get(e, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "daily_sleep") {
		t.Fatalf("metric type missing from page")
	}
	if !strings.Contains(body, "2026-08-31 09:00:00") {
		t.Fatalf("last updated missing from page")
	}
}

func TestDashboardLoadErrorReturns500(t *testing.T) {
	arch := &stubArchive{loadErr: errInjected}
	e := newTestServer(t, nil, arch, "key")

	rec := get(e, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRoutesFailWithoutAPIKey(t *testing.T) {
	e := newTestServer(t, nil, &stubArchive{}, "")

	for _, path := range []string{"/", "/update", "/fetch_initial_data", "/download_archive", "/api/data"} {
		rec := get(e, path)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "OURA_API_KEY") {
			t.Fatalf("%s: message should name the credential", path)
		}
	}
}

func TestUpdateRefreshesAndRedirects(t *testing.T) {
	src := &stubSource{
		buckets: map[models.MetricType]*models.Bucket{
			models.MetricDailyActivity: {Data: []models.Record{{"day": "2026-08-30"}}},
		},
	}
	arch := &stubArchive{}
	e := newTestServer(t, src, arch, "key")

	rec := get(e, "/update")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if _, ok := arch.store["daily_activity"]; !ok {
		t.Fatalf("refresh did not persist store: %v", arch.store)
	}
	if arch.stamp == "" {
		t.Fatalf("last updated not stamped")
	}
}

func TestUpdateRejectsBadDays(t *testing.T) {
	e := newTestServer(t, nil, &stubArchive{}, "key")

	rec := get(e, "/update?days=90")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadArchiveEmpty(t *testing.T) {
	e := newTestServer(t, nil, &stubArchive{}, "key")

	rec := get(e, "/download_archive")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDownloadArchiveStreamsWorkbook(t *testing.T) {
	arch := &stubArchive{
		store: models.Store{
			"daily_readiness": {Data: []models.Record{{"day": "2026-08-30"}}},
		},
	}
	e := newTestServer(t, nil, arch, "key")

	rec := get(e, "/download_archive")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "oura_archive.xlsx") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("empty workbook body")
	}
}

func TestDataFiltersByType(t *testing.T) {
	arch := &stubArchive{
		store: models.Store{
			"daily_sleep":    {Data: []models.Record{{"day": "s"}}},
			"daily_activity": {Data: []models.Record{{"day": "a"}}},
		},
	}
	e := newTestServer(t, nil, arch, "key")

	rec := get(e, "/api/data?type=daily_sleep")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Data map[string]json.RawMessage `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Data.Data) != 1 {
		t.Fatalf("expected 1 type, got %v", resp.Data.Data)
	}
	if _, ok := resp.Data.Data["daily_sleep"]; !ok {
		t.Fatalf("daily_sleep missing")
	}
}

func TestDataRejectsUnknownType(t *testing.T) {
	e := newTestServer(t, nil, &stubArchive{}, "key")

	rec := get(e, "/api/data?type=heart_rate")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
