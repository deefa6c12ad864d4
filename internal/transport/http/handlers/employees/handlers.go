package employeehandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/employee"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Audit   audit.Recorder
}

func NewHandler(service *employee.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Patch("/{id}/status", h.handleSetStatus)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employee.Input
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}

	emp, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, audit.ActionEmployeeCreate, emp.ID, nil, emp)
	api.Created(w, emp, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employee.Input
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}

	id := chi.URLParam(r, "id")
	emp, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, audit.ActionEmployeeUpdate, id, payload, emp)
	api.Success(w, emp, requestID)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload struct {
		Status string `json:"status"`
	}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}

	id := chi.URLParam(r, "id")
	emp, err := h.Service.SetStatus(r.Context(), id, payload.Status)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, audit.ActionEmployeeStatus, id, nil, map[string]string{"status": emp.Status})
	api.Success(w, emp, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, audit.ActionEmployeeDelete, id, nil, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) record(r *http.Request, action, id string, before, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Entry{
		Action:     action,
		EntityType: audit.EntityEmployee,
		EntityID:   id,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		Before:     before,
		After:      after,
	})
	if err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
