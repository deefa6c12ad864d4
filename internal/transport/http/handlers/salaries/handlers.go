package salaryhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/payroll"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleMonthly)
		r.Get("/{employeeID}", h.handleEmployee)
		r.Get("/{employeeID}/slip", h.handleSlip)
	})
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	report, err := h.Service.MonthlySalaries(r.Context(), query.Get("month"), query.Get("year"), shared.QueryBool(r, "includeInactive"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	row, err := h.Service.EmployeeSalary(r.Context(), chi.URLParam(r, "employeeID"), query.Get("month"), query.Get("year"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, row, requestID)
}

func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	file, err := h.Service.Slip(r.Context(), chi.URLParam(r, "employeeID"), query.Get("month"), query.Get("year"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.WriteAttachment(w, file.Name, "application/pdf", file.Body)
}
