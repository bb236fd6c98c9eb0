package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spectix11/ai-sdr/internal/entity"
	"github.com/spectix11/ai-sdr/internal/infra/http/middleware"
	"github.com/spectix11/ai-sdr/internal/usecase"
)

// LeadHandler serve as telas de listagem. Single-tenant: uma sessão de view
// por tela, mantida no processo da API (snapshot + estado de query).
type LeadHandler struct {
	views map[entity.ViewName]*usecase.LeadListView
}

func NewLeadHandler(repo entity.LeadRepositoryInterface, notifier usecase.NotificationSender, notifyEmail string) *LeadHandler {
	views := map[entity.ViewName]*usecase.LeadListView{
		entity.ViewAll:     usecase.NewLeadListView(repo, entity.ViewAll, 25),
		entity.ViewActive:  usecase.NewLeadListView(repo, entity.ViewActive, 20),
		entity.ViewReplies: usecase.NewLeadListView(repo, entity.ViewReplies, 20),
		entity.ViewBooked:  usecase.NewLeadListView(repo, entity.ViewBooked, 20),
	}

	if notifier != nil && notifyEmail != "" {
		onBooked := func(lead entity.Lead) {
			if err := notifier.SendBookedNotification(notifyEmail, lead.FullName, lead.CompanyName); err != nil {
				// notificação é best-effort: loga e segue
				log.Printf("❌ Erro ao notificar booking de %s: %v", lead.Email, err)
				middleware.RecordIntegrationError("mail")
			}
		}
		for _, v := range views {
			v.OnBooked = onBooked
		}
	}

	return &LeadHandler{views: views}
}

type LeadView struct {
	entity.Lead
	CurrentStage  string `json:"current_stage"`
	NextStage     string `json:"next_stage"`
	UpdatePending bool   `json:"update_pending"`
}

type LeadPageResponse struct {
	Leads      []LeadView `json:"leads"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// HandleList (GET /api/leads?view=&search=&stage=&industry=&source=&campaign=&sort=&dir=&page=)
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, ok := h.resolveView(w, r)
	if !ok {
		return
	}

	if err := view.EnsureLoaded(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "FETCH_FAILED", err.Error())
		return
	}

	q := r.URL.Query()
	view.SetSearch(q.Get("search"))
	view.SetFilter("stage", q.Get("stage"))
	view.SetFilter("industry", q.Get("industry"))
	view.SetFilter("lead_source", q.Get("source"))
	view.SetFilter("campaign_id", q.Get("campaign"))

	if sortBy := q.Get("sort"); sortBy != "" {
		if dir := q.Get("dir"); dir != "" {
			view.SetSortColumn(sortBy, dir == "desc")
		} else {
			// sem dir explícito, clicar de novo na coluna inverte a direção
			view.SetSort(sortBy)
		}
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		view.SetPage(page)
	}

	result := view.Page()

	response := LeadPageResponse{
		Leads:      make([]LeadView, 0, len(result.Leads)),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
	for i := range result.Leads {
		l := result.Leads[i]
		response.Leads = append(response.Leads, LeadView{
			Lead:          l,
			CurrentStage:  usecase.CurrentStage(&l),
			NextStage:     usecase.NextStage(&l),
			UpdatePending: view.InFlight(l.ID),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleRefresh (POST /api/leads/refresh?view=) refaz o fetch do snapshot.
func (h *LeadHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	view, ok := h.resolveView(w, r)
	if !ok {
		return
	}

	if err := view.Load(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "FETCH_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type toggleRequest struct {
	Value bool `json:"value"`
}

// HandleToggleReplied (POST /api/leads/{id}/replied)
func (h *LeadHandler) HandleToggleReplied(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, "replied")
}

// HandleToggleBooked (POST /api/leads/{id}/booked)
func (h *LeadHandler) HandleToggleBooked(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, "booked")
}

func (h *LeadHandler) handleToggle(w http.ResponseWriter, r *http.Request, field string) {
	view, ok := h.resolveView(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "lead id is required")
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	var err error
	if field == "booked" {
		err = view.ToggleBooked(r.Context(), id, req.Value)
	} else {
		err = view.ToggleReplied(r.Context(), id, req.Value)
	}

	if err != nil {
		middleware.RecordLeadUpdate(field, "error")
		if errors.Is(err, usecase.ErrUpdateInFlight) {
			writeError(w, http.StatusConflict, "UPDATE_IN_FLIGHT", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "UPDATE_FAILED", err.Error())
		return
	}

	middleware.RecordLeadUpdate(field, "ok")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleUpdateProfile (PATCH /api/leads/{id}) — edição de campos de perfil na
// tela de detalhe. Só aceita strings; flags passam pelos toggles.
func (h *LeadHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	view, ok := h.resolveView(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "lead id is required")
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "EMPTY_UPDATE", "no fields to update")
		return
	}

	update := make(map[string]any, len(fields))
	for k, v := range fields {
		update[k] = v
	}

	if err := view.UpdateProfile(r.Context(), id, update); err != nil {
		middleware.RecordLeadUpdate("profile", "error")
		if errors.Is(err, usecase.ErrUpdateInFlight) {
			writeError(w, http.StatusConflict, "UPDATE_IN_FLIGHT", err.Error())
			return
		}
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "EMAIL_EXISTS", "email already exists")
			return
		}
		writeError(w, http.StatusBadGateway, "UPDATE_FAILED", err.Error())
		return
	}

	middleware.RecordLeadUpdate("profile", "ok")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) resolveView(w http.ResponseWriter, r *http.Request) (*usecase.LeadListView, bool) {
	name := entity.ViewName(r.URL.Query().Get("view"))
	if name == "" {
		name = entity.ViewAll
	}

	view, ok := h.views[name]
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_VIEW", "unknown view: "+string(name))
		return nil, false
	}
	return view, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}
