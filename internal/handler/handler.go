// Package handler exposes the billing core over HTTP. The endpoints are
// thin adapters: all business rules live in the domain services.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/xenking/resto-billing/internal/domain/billing"
	"github.com/xenking/resto-billing/internal/domain/menu"
	"github.com/xenking/resto-billing/internal/domain/order"
	"github.com/xenking/resto-billing/internal/domain/report"
)

// Handler routes HTTP requests to the menu repository and the order and
// report services.
type Handler struct {
	menu    menu.Repository
	orders  *order.Service
	reports *report.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(menuRepo menu.Repository, orders *order.Service, reports *report.Service) *Handler {
	return &Handler{
		menu:    menuRepo,
		orders:  orders,
		reports: reports,
	}
}

// Register mounts all API routes under /api/v1 on the given router.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/menu", h.ListMenu).Methods(http.MethodGet)
	api.HandleFunc("/menu", h.CreateMenuItem).Methods(http.MethodPost)
	api.HandleFunc("/menu/{id:[0-9]+}", h.DeleteMenuItem).Methods(http.MethodDelete)

	api.HandleFunc("/orders", h.CommitOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}", h.GetOrder).Methods(http.MethodGet)

	api.HandleFunc("/reports/daily-revenue", h.DailyRevenue).Methods(http.MethodGet)
	api.HandleFunc("/reports/popular-items", h.PopularItems).Methods(http.MethodGet)
	api.HandleFunc("/reports/overview", h.Overview).Methods(http.MethodGet)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Code: status, Message: msg})
}

// respondDomainError maps the domain error taxonomy to HTTP statuses:
// validation 400, not found 404, integrity 409, storage 503.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr *order.ValidationError
		iErr *order.IntegrityError
		sErr *order.StorageError
	)
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrIndexOutOfRange),
		errors.Is(err, billing.ErrEmptyItemName),
		errors.Is(err, billing.ErrNegativeUnitPrice):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, menu.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, menu.ErrDuplicateName):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &iErr):
		zctx.From(r.Context()).Error("integrity violation", zap.Error(err))
		respondError(w, http.StatusConflict, "order could not be committed")
	case errors.As(err, &sErr):
		zctx.From(r.Context()).Error("storage failure", zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "storage unavailable, please retry")
	default:
		zctx.From(r.Context()).Error("unhandled error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
