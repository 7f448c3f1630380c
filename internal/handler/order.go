package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/billing"
	"github.com/xenking/resto-billing/internal/domain/order"
)

type commitOrderRequest struct {
	OrderType     string           `json:"orderType"`
	PaymentMethod string           `json:"paymentMethod"`
	Discount      decimal.Decimal  `json:"discount"`
	Items         []orderItemInput `json:"items"`
}

type orderItemInput struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Quantity  int             `json:"quantity"`
}

type commitOrderResponse struct {
	Committed  bool             `json:"committed"`
	OrderID    int64            `json:"orderId,omitempty"`
	CreatedAt  *time.Time       `json:"createdAt,omitempty"`
	Subtotal   *decimal.Decimal `json:"subtotal,omitempty"`
	Tax        *decimal.Decimal `json:"tax,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
	Discount   *decimal.Decimal `json:"discount,omitempty"`
	FinalTotal *decimal.Decimal `json:"finalTotal,omitempty"`
}

type orderResponse struct {
	ID             int64               `json:"id"`
	OrderType      string              `json:"orderType"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxAmount      decimal.Decimal     `json:"taxAmount"`
	DiscountAmount decimal.Decimal     `json:"discountAmount"`
	FinalTotal     decimal.Decimal     `json:"finalTotal"`
	PaymentMethod  string              `json:"paymentMethod"`
	CreatedAt      time.Time           `json:"createdAt"`
	Lines          []orderLineResponse `json:"lines"`
}

type orderLineResponse struct {
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CommitOrder assembles a cart from the request lines, computes the bill,
// and persists the order atomically. Duplicate item names merge into a
// single line, exactly as interactive selection would. An empty item list
// is the distinguished "nothing to commit" no-op, answered with 200 and
// committed=false rather than an error.
func (h *Handler) CommitOrder(w http.ResponseWriter, r *http.Request) {
	var req commitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	typ, err := order.ParseType(req.OrderType)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	payment, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	cart := billing.NewCart()
	for _, item := range req.Items {
		if err := cart.AddItem(item.Name, item.UnitPrice, item.TaxRate, item.Quantity); err != nil {
			respondDomainError(w, r, err)
			return
		}
	}

	receipt, err := h.orders.Commit(r.Context(), cart, typ, payment, req.Discount)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	if !receipt.Committed {
		respondJSON(w, http.StatusOK, commitOrderResponse{Committed: false})
		return
	}
	cart.Clear()

	respondJSON(w, http.StatusCreated, commitOrderResponse{
		Committed:  true,
		OrderID:    receipt.OrderID,
		CreatedAt:  &receipt.CreatedAt,
		Subtotal:   &receipt.Subtotal,
		Tax:        &receipt.Tax,
		Total:      &receipt.Total,
		Discount:   &receipt.Discount,
		FinalTotal: &receipt.FinalTotal,
	})
}

// GetOrder returns one committed order with its lines.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := orderResponse{
		ID:             o.ID,
		OrderType:      string(o.Type),
		Subtotal:       o.Subtotal,
		TaxAmount:      o.TaxAmount,
		DiscountAmount: o.DiscountAmount,
		FinalTotal:     o.FinalTotal,
		PaymentMethod:  string(o.PaymentMethod),
		CreatedAt:      o.CreatedAt,
		Lines:          make([]orderLineResponse, len(o.Lines)),
	}
	for i, l := range o.Lines {
		resp.Lines[i] = orderLineResponse{
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
