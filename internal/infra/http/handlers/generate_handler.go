package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/spectix11/ai-sdr/internal/infra/http/middleware"
	"github.com/spectix11/ai-sdr/internal/usecase"
)

type GenerateHandler struct {
	uc          *usecase.GenerateLeadsUseCase
	rateLimiter *RateLimiter
}

func NewGenerateHandler(uc *usecase.GenerateLeadsUseCase) *GenerateHandler {
	return &GenerateHandler{
		uc:          uc,
		rateLimiter: NewRateLimiter(5, time.Minute), // 5 disparos/min por IP
	}
}

// Handle (POST /api/generate) — dispara o fluxo externo de geração de leads.
func (h *GenerateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.GenerateLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.uc.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordGenerationRequest("validation_error")
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		middleware.RecordGenerationRequest("error")
		middleware.RecordIntegrationError("leadgen")
		writeError(w, http.StatusBadGateway, "GENERATION_FAILED", err.Error())
		return
	}

	middleware.RecordGenerationRequest("ok")
	writeJSON(w, http.StatusOK, output)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
