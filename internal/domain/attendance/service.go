package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staffpay/internal/apperr"
)

type Service struct {
	store StoreAPI
	// OnChange runs after every successful write.
	OnChange func()
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Mark creates or overwrites the record for (employee_id, date). Times are
// dropped for absent and leave days.
func (s *Service) Mark(ctx context.Context, in MarkInput) (MarkResult, error) {
	v := apperr.NewValidator()
	employeeID := strings.TrimSpace(in.EmployeeID)
	status := strings.TrimSpace(in.Status)
	v.Required("employee_id", employeeID, "is required")
	if v.Required("status", status, "is required") {
		v.Enum("status", status, Statuses, "must be one of present, absent, half_day, leave")
	}
	var date time.Time
	if v.Required("date", in.Date, "is required") {
		date, _ = v.Date("date", in.Date)
	}
	checkIn := timeField(v, "check_in", in.CheckIn)
	checkOut := timeField(v, "check_out", in.CheckOut)
	if err := v.Err(); err != nil {
		return MarkResult{}, err
	}

	if status == StatusAbsent || status == StatusLeave {
		checkIn, checkOut = nil, nil
	}

	exists, err := s.store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return MarkResult{}, err
	}
	if !exists {
		return MarkResult{}, apperr.NotFound(msgEmployeeNotFound)
	}

	rec, created, err := s.store.Upsert(ctx, Record{
		EmployeeID: employeeID,
		Date:       date.Format(apperr.DateLayout),
		Status:     status,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      trimmed(in.Notes),
	})
	if err != nil {
		return MarkResult{}, err
	}
	if s.OnChange != nil {
		s.OnChange()
	}
	return MarkResult{Record: rec, Created: created}, nil
}

func (s *Service) ByDate(ctx context.Context, raw string) ([]Record, error) {
	v := apperr.NewValidator()
	date, _ := v.Date("date", raw)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.store.ListByDate(ctx, date.Format(apperr.DateLayout))
}

func (s *Service) ByMonth(ctx context.Context, monthRaw, yearRaw string) ([]Record, error) {
	v := apperr.NewValidator()
	month, year, _ := v.MonthYear(monthRaw, yearRaw)
	if err := v.Err(); err != nil {
		return nil, err
	}
	start, end := MonthBounds(year, month)
	return s.store.ListByRange(ctx, start.Format(apperr.DateLayout), end.Format(apperr.DateLayout))
}

func (s *Service) Summary(ctx context.Context, startRaw, endRaw string) ([]SummaryRow, error) {
	start, end, err := ParseRange(startRaw, endRaw)
	if err != nil {
		return nil, err
	}
	return s.store.Summary(ctx, start.Format(apperr.DateLayout), end.Format(apperr.DateLayout))
}

func (s *Service) History(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	v := apperr.NewValidator()
	q.EmployeeID = strings.TrimSpace(q.EmployeeID)
	v.Required("employee_id", q.EmployeeID, "is required")
	var start, end time.Time
	if strings.TrimSpace(q.Start) != "" {
		start, _ = v.Date("startDate", q.Start)
		q.Start = start.Format(apperr.DateLayout)
	}
	if strings.TrimSpace(q.End) != "" {
		end, _ = v.Date("endDate", q.End)
		q.End = end.Format(apperr.DateLayout)
	}
	v.DateOrder("startDate", start, "endDate", end)
	if err := v.Err(); err != nil {
		return HistoryPage{}, err
	}
	if q.Limit <= 0 {
		q.Limit = defaultHistoryLimit
	}
	q.Limit = min(q.Limit, maxHistoryLimit)
	q.Offset = max(q.Offset, 0)

	exists, err := s.store.EmployeeExists(ctx, q.EmployeeID)
	if err != nil {
		return HistoryPage{}, err
	}
	if !exists {
		return HistoryPage{}, apperr.NotFound(msgEmployeeNotFound)
	}
	records, total, err := s.store.History(ctx, q)
	if err != nil {
		return HistoryPage{}, err
	}
	return HistoryPage{Records: records, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// ParseRange validates a required inclusive startDate..endDate pair.
func ParseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	v := apperr.NewValidator()
	var start, end time.Time
	if v.Required("startDate", startRaw, "is required") {
		start, _ = v.Date("startDate", startRaw)
	}
	if v.Required("endDate", endRaw, "is required") {
		end, _ = v.Date("endDate", endRaw)
	}
	v.DateOrder("startDate", start, "endDate", end)
	if err := v.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// MonthBounds returns the first and last day of the month in UTC.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// MonthScope is the cache scope for a month, e.g. 2024-03.
func MonthScope(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func timeField(v *apperr.Validator, field string, raw *string) *string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	normalized, ok := v.TimeOfDay(field, *raw)
	if !ok {
		return nil
	}
	return &normalized
}

func trimmed(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	return &value
}
