package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/menu"
)

type menuItemResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

type createMenuItemRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

// ListMenu returns the full catalog ordered by category, then name.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = menuItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Category:  it.Category,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateMenuItem adds one catalog entry.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	if req.UnitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "unitPrice must not be negative")
		return
	}

	item := menu.Item{
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		TaxRate:   req.TaxRate,
	}
	if err := h.menu.Create(r.Context(), &item); err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, menuItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		UnitPrice: item.UnitPrice,
		TaxRate:   item.TaxRate,
	})
}

// DeleteMenuItem removes one catalog entry. Historical orders keep their
// captured names and prices.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}

	if err := h.menu.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
