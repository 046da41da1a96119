package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/pipeline"
)

type fakePipeline struct {
	status pipeline.Status
	report string
}

func (f *fakePipeline) Status() pipeline.Status { return f.status }
func (f *fakePipeline) ProgressReport() string  { return f.report }

func newTestServer() (*Server, *fakePipeline) {
	fake := &fakePipeline{
		status: pipeline.Status{
			ProjectName:  "acme",
			CurrentStage: "architecture_planning",
			Stages: []pipeline.StageStatus{
				{Name: "discovery", Status: "complete", CheckpointPassed: true, HasOutput: true},
				{Name: "architecture_planning", Status: "in_progress"},
			},
		},
		report: "# Pipeline Progress: acme\n",
	}
	return NewServer(fake, zap.NewNop()), fake
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	srv, fake := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pipeline/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got pipeline.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, fake.status, got)
}

func TestGetReport(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pipeline/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Pipeline Progress: acme")
}

func TestMetricsExposed(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
