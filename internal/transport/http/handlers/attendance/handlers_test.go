package attendancehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/export"
	"staffpay/internal/platform/metrics"
)

type memoryStore struct {
	mu        sync.Mutex
	employees map[string]string
	records   []attendance.Record
}

func (m *memoryStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	_, ok := m.employees[id]
	return ok, nil
}

func (m *memoryStore) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date == rec.Date {
			rec.ID = existing.ID
			m.records[i] = rec
			return rec, false, nil
		}
	}
	rec.ID = int64(len(m.records) + 1)
	m.records = append(m.records, rec)
	return rec, true, nil
}

func (m *memoryStore) ListByDate(_ context.Context, date string) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []attendance.Record{}
	for _, rec := range m.records {
		if rec.Date == date {
			rec.EmployeeName = m.employees[rec.EmployeeID]
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryStore) ListByRange(_ context.Context, start, end string) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []attendance.Record{}
	for _, rec := range m.records {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryStore) Summary(context.Context, string, string) ([]attendance.SummaryRow, error) {
	return []attendance.SummaryRow{}, nil
}

func (m *memoryStore) History(_ context.Context, q attendance.HistoryQuery) ([]attendance.Record, int, error) {
	out := []attendance.Record{}
	for _, rec := range m.records {
		if rec.EmployeeID == q.EmployeeID {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

func (m *memoryStore) AttendanceRows(_ context.Context, start, end string) ([]export.Row, error) {
	out := []export.Row{}
	for _, rec := range m.records {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, export.Row{EmployeeID: rec.EmployeeID, EmployeeName: m.employees[rec.EmployeeID], Date: rec.Date, Status: rec.Status, Notes: rec.Notes})
		}
	}
	return out, nil
}

type auditSpy struct {
	entries []audit.Entry
}

func (a *auditSpy) Record(_ context.Context, entry audit.Entry) error {
	a.entries = append(a.entries, entry)
	return nil
}

type fixture struct {
	router    chi.Router
	store     *memoryStore
	audit     *auditSpy
	collector *metrics.Collector
	calendar  *attendance.Calendar
}

func newFixture() *fixture {
	store := &memoryStore{employees: map[string]string{"EMP001": "Asha", "EMP002": "Ravi"}}
	collector := metrics.New()
	calendar := attendance.NewCalendar(store, 4, collector)
	svc := attendance.NewService(store)
	svc.OnChange = calendar.Invalidate
	spy := &auditSpy{}

	r := chi.NewRouter()
	NewHandler(svc, calendar, export.NewService(store), spy, collector).RegisterRoutes(r)
	return &fixture{router: r, store: store, audit: spy, collector: collector, calendar: calendar}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestMarkUpsertsAndRecords(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/attendance", `{"employeeId":"EMP001","date":"2024-03-04","status":"present","checkIn":"09:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = f.do(http.MethodPost, "/attendance", `{"employee_id":"EMP001","date":"2024-03-04","status":"absent","check_in":"09:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on overwrite, got %d", rec.Code)
	}

	var body struct {
		Data attendance.Record `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Status != attendance.StatusAbsent || body.Data.CheckIn != nil {
		t.Fatalf("expected absent record without times, got %+v", body.Data)
	}
	if len(f.store.records) != 1 {
		t.Fatalf("expected a single stored record, got %d", len(f.store.records))
	}

	snap := f.collector.Snapshot()
	if snap["attendanceCreatedTotal"] != uint64(1) || snap["attendanceUpdatedTotal"] != uint64(1) {
		t.Fatalf("unexpected metrics %v", snap)
	}
	if len(f.audit.entries) != 2 || f.audit.entries[0].Action != audit.ActionAttendanceMark {
		t.Fatalf("expected two attendance audit entries, got %+v", f.audit.entries)
	}
	if f.calendar.Generation() != 2 {
		t.Fatalf("expected calendar invalidated twice, got generation %d", f.calendar.Generation())
	}
}

func TestMarkErrors(t *testing.T) {
	f := newFixture()
	cases := []struct {
		body string
		code int
	}{
		{`{"employee_id":"EMP001","date":"2024-03-04","status":"sick"}`, http.StatusBadRequest},
		{`{"employee_id":"EMP001","date":"04/03/2024","status":"present"}`, http.StatusBadRequest},
		{`{"employee_id":"NOPE","date":"2024-03-04","status":"present"}`, http.StatusNotFound},
		{``, http.StatusBadRequest},
		{`[1,2]`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if rec := f.do(http.MethodPost, "/attendance", tc.body); rec.Code != tc.code {
			t.Fatalf("body %q: expected %d, got %d", tc.body, tc.code, rec.Code)
		}
	}
	if len(f.store.records) != 0 {
		t.Fatalf("expected no writes, got %d", len(f.store.records))
	}
}

func TestListByDateAndMonth(t *testing.T) {
	f := newFixture()
	f.do(http.MethodPost, "/attendance", `{"employee_id":"EMP001","date":"2024-03-04","status":"present"}`)
	f.do(http.MethodPost, "/attendance", `{"employee_id":"EMP002","date":"2024-03-05","status":"leave"}`)

	if rec := f.do(http.MethodGet, "/attendance?date=2024-03-04", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 by date, got %d", rec.Code)
	}
	rec := f.do(http.MethodGet, "/attendance?month=3&year=2024", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 by month, got %d", rec.Code)
	}
	var body struct {
		Data []attendance.Record `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || len(body.Data) != 2 {
		t.Fatalf("expected 2 records, got %d (%v)", len(body.Data), err)
	}
	if rec := f.do(http.MethodGet, "/attendance?month=13&year=2024", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/attendance", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without filters, got %d", rec.Code)
	}
}

func TestExportCSV(t *testing.T) {
	f := newFixture()
	f.do(http.MethodPost, "/attendance", `{"employee_id":"EMP001","date":"2024-03-04","status":"present","notes":"said \"hi\""}`)

	rec := f.do(http.MethodGet, "/attendance/export?startDate=2024-03-01&endDate=2024-03-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=attendance_2024-03-01_to_2024-03-31.csv" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "employee_id,employee_name,place,date,status,check_in,check_out,notes\r\n") {
		t.Fatalf("unexpected csv header %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"said \"hi\""`) {
		t.Fatalf("expected escaped notes, got %q", rec.Body.String())
	}

	if rec := f.do(http.MethodGet, "/attendance/export?startDate=2025-01-01&endDate=2025-01-31", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty range, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/attendance/export?startDate=2024-03-31&endDate=2024-03-01", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed range, got %d", rec.Code)
	}
}

func TestCalendarAndHistory(t *testing.T) {
	f := newFixture()
	f.do(http.MethodPost, "/attendance", `{"employee_id":"EMP001","date":"2024-02-01","status":"present"}`)

	rec := f.do(http.MethodGet, "/attendance/calendar?month=2&year=2024", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cal struct {
		Data attendance.MonthView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&cal); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cal.Data.Days) != 29 || cal.Data.Days[0].Status != attendance.StatusPresent {
		t.Fatalf("unexpected calendar %+v", cal.Data)
	}

	if rec := f.do(http.MethodGet, "/attendance/employee/EMP001?limit=10", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 history, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/attendance/employee/NOPE", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 history, got %d", rec.Code)
	}
}
