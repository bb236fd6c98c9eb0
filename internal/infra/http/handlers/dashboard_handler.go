package handlers

import (
	"net/http"

	"github.com/spectix11/ai-sdr/internal/entity"
	"github.com/spectix11/ai-sdr/internal/usecase"
)

type DashboardHandler struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewDashboardHandler(repo entity.LeadRepositoryInterface) *DashboardHandler {
	return &DashboardHandler{LeadRepo: repo}
}

// HandleMetrics (GET /api/dashboard) — contadores + funil, sempre sobre um
// fetch fresco: a tela inicial não reusa snapshot de listagem.
func (h *DashboardHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.FindAll(r.Context(), entity.ViewAll)
	if err != nil {
		writeError(w, http.StatusBadGateway, "FETCH_FAILED", "failed to fetch leads: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, usecase.Aggregate(leads))
}

// HandleBookedAnalytics (GET /api/analytics/booked?group_by=industry|lead_source)
func (h *DashboardHandler) HandleBookedAnalytics(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.FindAll(r.Context(), entity.ViewBooked)
	if err != nil {
		writeError(w, http.StatusBadGateway, "FETCH_FAILED", "failed to fetch leads: "+err.Error())
		return
	}

	switch r.URL.Query().Get("group_by") {
	case "industry":
		writeJSON(w, http.StatusOK, usecase.GroupBreakdown(leads, func(l *entity.Lead) string { return l.Industry }))
	case "lead_source":
		writeJSON(w, http.StatusOK, usecase.GroupBreakdown(leads, func(l *entity.Lead) string { return l.LeadSource }))
	case "":
		writeJSON(w, http.StatusOK, usecase.AggregateBooked(leads))
	default:
		writeError(w, http.StatusBadRequest, "INVALID_GROUP", "group_by must be industry or lead_source")
	}
}
