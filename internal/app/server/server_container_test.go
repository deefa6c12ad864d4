//go:build container

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffpay/internal/platform/config"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/testhelpers"
)

func TestAttendancePayrollJourney(t *testing.T) {
	pool := testhelpers.StartPostgres(t)
	cfg := config.Defaults()
	cfg.FrontendDir = t.TempDir()
	router := NewRouter(cfg, pool, metrics.New())

	call := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := call(http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}

	rec := call(http.MethodPost, "/api/employees", `{"id":"EMP100","name":"Asha","age":30,"place":"Pune","salary":30000,"job_time_from":"09:00","job_time_to":"18:00","joining_date":"2023-01-02","total_leaves":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create employee: %d %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{
		`{"employee_id":"EMP100","date":"2024-03-04","status":"present","check_in":"09:00"}`,
		`{"employee_id":"EMP100","date":"2024-03-05","status":"half_day"}`,
		`{"employee_id":"EMP100","date":"2024-03-05","status":"half_day","notes":"FH"}`,
	} {
		if rec := call(http.MethodPost, "/api/attendance", body); rec.Code != http.StatusCreated {
			t.Fatalf("mark attendance: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec = call(http.MethodGet, "/api/salaries/EMP100?month=3&year=2024", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("salary: %d %s", rec.Code, rec.Body.String())
	}
	var salary struct {
		Data struct {
			PresentDays int     `json:"presentDays"`
			HalfDays    int     `json:"halfDays"`
			NetSalary   float64 `json:"netSalary"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&salary); err != nil {
		t.Fatalf("decode salary: %v", err)
	}
	if salary.Data.PresentDays != 1 || salary.Data.HalfDays != 1 || salary.Data.NetSalary != 2250 {
		t.Fatalf("unexpected salary %+v", salary.Data)
	}

	rec = call(http.MethodGet, "/api/attendance/export?startDate=2024-03-01&endDate=2024-03-31", "")
	if rec.Code != http.StatusOK || strings.Count(rec.Body.String(), "\r\n") != 3 {
		t.Fatalf("export: %d %q", rec.Code, rec.Body.String())
	}

	if rec := call(http.MethodDelete, "/api/employees/EMP100", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := call(http.MethodGet, "/api/attendance/export?startDate=2024-03-01&endDate=2024-03-31", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected cascade to empty export, got %d", rec.Code)
	}

	rec = call(http.MethodGet, "/api/audit/events?entityId=EMP100", "")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "2" {
		t.Fatalf("expected create and delete audit events, got %d total=%s", rec.Code, rec.Header().Get("X-Total-Count"))
	}
}
