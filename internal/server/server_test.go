package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/apicover/apicover/internal/models"
)

func stubRun() (*models.CoverageReport, models.TagMapping, error) {
	report := &models.CoverageReport{
		TotalEndpoints:     2,
		CoveredEndpoints:   1,
		UncoveredEndpoints: 1,
		CoveragePercentage: 50,
		CoveredOperations: []models.Operation{
			{OperationID: "getX", Path: "/x", Method: "GET", Tags: []string{"x"}},
		},
		UncoveredOperations: []models.Operation{
			{OperationID: "postX", Path: "/x", Method: "POST", Tags: []string{"x"}},
		},
		ByMethod: map[string]models.BucketStats{
			"GET":  {Total: 1, Covered: 1, Percentage: 100, Status: models.StatusGreen},
			"POST": {Total: 1, Covered: 0, Percentage: 0, Status: models.StatusRed},
		},
		ByTag: map[string]models.BucketStats{
			"x": {Total: 2, Covered: 1, Percentage: 50, Status: models.StatusRed},
		},
	}
	return report, models.TagMapping{"getX": {"f1.feature"}}, nil
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(stubRun)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := gjson.Get(w.Body.String(), "status").String(); got != "ok" {
		t.Errorf("Unexpected health payload: %s", w.Body.String())
	}
}

func TestJSONReportEndpoint(t *testing.T) {
	srv := New(stubRun)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if got := gjson.Get(body, "summary.totalEndpoints").Int(); got != 2 {
		t.Errorf("totalEndpoints = %d, want 2", got)
	}
	if got := gjson.Get(body, "summary.coveragePercentage").Float(); got != 50 {
		t.Errorf("coveragePercentage = %v, want 50", got)
	}
}

func TestHTMLReportEndpoint(t *testing.T) {
	srv := New(stubRun)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if !strings.Contains(w.Body.String(), "API Endpoint Coverage Report") {
		t.Error("Expected HTML report body")
	}
}

func TestReportEndpoint_PipelineError(t *testing.T) {
	srv := New(func() (*models.CoverageReport, models.TagMapping, error) {
		return nil, nil, errors.New("schema missing")
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "schema missing") {
		t.Errorf("Expected error payload, got %s", w.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := New(stubRun)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Error("Expected request id header to be set")
	}
}

func TestWebSocketReport(t *testing.T) {
	srv := New(stubRun)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/report"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer conn.Close()

	// A report is pushed on connect.
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read initial report: %v", err)
	}
	if got := gjson.GetBytes(msg, "summary.totalEndpoints").Int(); got != 2 {
		t.Errorf("totalEndpoints = %d, want 2", got)
	}

	// Any frame from the client triggers a refreshed report.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("refresh")); err != nil {
		t.Fatalf("Failed to send refresh: %v", err)
	}
	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read refreshed report: %v", err)
	}
	if got := gjson.GetBytes(msg, "summary.coveredEndpoints").Int(); got != 1 {
		t.Errorf("coveredEndpoints = %d, want 1", got)
	}
}
