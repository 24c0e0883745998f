package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-analysis-service/internal/analysis"
	"github.com/trogers1052/stock-analysis-service/internal/auth"
	"github.com/trogers1052/stock-analysis-service/internal/database"
	"github.com/trogers1052/stock-analysis-service/internal/marketdata"
	"github.com/trogers1052/stock-analysis-service/internal/models"
	"github.com/trogers1052/stock-analysis-service/internal/service"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db            *database.DB
	analyzer      *analysis.Analyzer
	service       *service.Service
	tokens        *auth.TokenManager
	defaultPeriod string
}

// NewHandler creates a new Handler
func NewHandler(db *database.DB, analyzer *analysis.Analyzer, svc *service.Service, tokens *auth.TokenManager, defaultPeriod string) *Handler {
	return &Handler{
		db:            db,
		analyzer:      analyzer,
		service:       svc,
		tokens:        tokens,
		defaultPeriod: defaultPeriod,
	}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		http.Error(w, "role must be analyst or investor", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.db.CreateUser(user); err != nil {
		http.Error(w, "username or email already taken", http.StatusConflict)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
		Period string `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}
	period := req.Period
	if period == "" {
		period = h.defaultPeriod
	}

	result, err := h.analyzer.Analyze(r.Context(), symbol, period)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, marketdata.ErrNoData):
			status = http.StatusNotFound
		case errors.Is(err, analysis.ErrAnalysisFailed):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, analysis.ErrNarrativeUnavailable):
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// SaveReport handles POST /reports
func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var result models.AnalysisResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if result.Symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	report, err := h.service.SaveReport(r.Context(), user, &result)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// ListReports handles GET /reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	reports, err := h.service.ListReports(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// ListReportPositions handles GET /reports/{id}/positions
func (h *Handler) ListReportPositions(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	reportID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	positions, err := h.service.ListReportPositions(r.Context(), user, reportID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// ListAnalystPositions handles GET /reports/positions
func (h *Handler) ListAnalystPositions(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	positions, err := h.service.ListAnalystPositions(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// CopyToPortfolio handles POST /portfolio
func (h *Handler) CopyToPortfolio(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req struct {
		AnalysisID int `json:"analysis_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.AnalysisID == 0 {
		http.Error(w, "analysis_id is required", http.StatusBadRequest)
		return
	}

	position, err := h.service.CopyToPortfolio(r.Context(), user, req.AnalysisID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, position)
}

// ListPositions handles GET /portfolio
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	positions, err := h.service.ListPositions(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// ClosePosition handles POST /portfolio/{id}/close
func (h *Handler) ClosePosition(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	positionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid position id", http.StatusBadRequest)
		return
	}

	var req struct {
		ExitPrice decimal.Decimal `json:"exit_price"`
		ExitDate  *time.Time      `json:"exit_date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ExitPrice.IsZero() {
		http.Error(w, "exit_price is required", http.StatusBadRequest)
		return
	}
	exitDate := time.Now()
	if req.ExitDate != nil {
		exitDate = *req.ExitDate
	}

	position, err := h.service.ClosePosition(r.Context(), user, positionID, req.ExitPrice, exitDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, position)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case strings.Contains(err.Error(), "not found"):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
