package attendancehandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/apperr"
	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/export"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Service  *attendance.Service
	Calendar *attendance.Calendar
	Export   *export.Service
	Audit    audit.Recorder
	Metrics  *metrics.Collector
}

func NewHandler(service *attendance.Service, calendar *attendance.Calendar, exportSvc *export.Service, auditSvc audit.Recorder, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Calendar: calendar, Export: exportSvc, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", h.handleMark)
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
		r.Get("/summary", h.handleSummary)
		r.Get("/calendar", h.handleCalendar)
		r.Get("/employee/{employeeID}", h.handleHistory)
	})
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload attendance.MarkInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}

	result, err := h.Service.Mark(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.Metrics.AttendanceMarked(result.Created)
	if h.Audit != nil {
		err := h.Audit.Record(r.Context(), audit.Entry{
			Action:     audit.ActionAttendanceMark,
			EntityType: audit.EntityAttendance,
			EntityID:   strconv.FormatInt(result.Record.ID, 10),
			RequestID:  requestID,
			IP:         shared.ClientIP(r),
			After:      result,
		})
		if err != nil {
			slog.Warn("audit attendance.mark failed", "err", err)
		}
	}
	api.Created(w, result.Record, requestID)
}

// handleList serves ?date= or ?month=&year=. date wins when both are given.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	var (
		records []attendance.Record
		err     error
	)
	switch {
	case strings.TrimSpace(query.Get("date")) != "":
		records, err = h.Service.ByDate(r.Context(), query.Get("date"))
	case query.Has("month") || query.Has("year"):
		records, err = h.Service.ByMonth(r.Context(), query.Get("month"), query.Get("year"))
	default:
		err = apperr.Validation(apperr.FieldIssue{Field: "date", Reason: "date or month and year is required"})
	}
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	file, err := h.Export.Attendance(r.Context(), query.Get("startDate"), query.Get("endDate"), query.Get("format"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.WriteAttachment(w, file.Name, file.ContentType, file.Body)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	rows, err := h.Service.Summary(r.Context(), query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	view, err := h.Calendar.Month(r.Context(), query.Get("month"), query.Get("year"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 500)
	query := r.URL.Query()
	result, err := h.Service.History(r.Context(), attendance.HistoryQuery{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Start:      query.Get("startDate"),
		End:        query.Get("endDate"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}
