package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/domain/report"
)

type dailyRevenueResponse struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"orderCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type itemSalesResponse struct {
	ItemName      string          `json:"itemName"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type overviewResponse struct {
	Daily   []dailyRevenueResponse `json:"dailyRevenue"`
	Popular []itemSalesResponse    `json:"popularItems"`
}

// queryInt reads an integer query parameter, returning 0 when absent or
// malformed so the service applies its default.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

// DailyRevenue serves the revenue series, newest date first.
func (h *Handler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	daily, err := h.reports.DailyRevenue(r.Context(), queryInt(r, "days"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDailyResponse(daily))
}

// PopularItems serves the top-item ranking.
func (h *Handler) PopularItems(w http.ResponseWriter, r *http.Request) {
	popular, err := h.reports.PopularItems(r.Context(), queryInt(r, "limit"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPopularResponse(popular))
}

// Overview serves both reports in one response.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.reports.Overview(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overviewResponse{
		Daily:   toDailyResponse(o.Daily),
		Popular: toPopularResponse(o.Popular),
	})
}

func toDailyResponse(daily []report.DailyRevenue) []dailyRevenueResponse {
	resp := make([]dailyRevenueResponse, len(daily))
	for i, d := range daily {
		resp[i] = dailyRevenueResponse{
			Date:       d.Date.Format(time.DateOnly),
			OrderCount: d.OrderCount,
			Revenue:    d.Revenue,
		}
	}
	return resp
}

func toPopularResponse(popular []report.ItemSales) []itemSalesResponse {
	resp := make([]itemSalesResponse, len(popular))
	for i, p := range popular {
		resp[i] = itemSalesResponse{
			ItemName:      p.ItemName,
			TotalQuantity: p.TotalQuantity,
			TotalRevenue:  p.TotalRevenue,
		}
	}
	return resp
}
