package ai

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
	"github.com/ridgeline-builders/ridgeline/internal/ratelimit"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
)

// Handler manages AI-assisted drafting endpoints. All routes require ai:use;
// generation and analysis carry separate per-user budgets on top of that.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	limiter   *ratelimit.Limiter
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbacMW rbac.Middleware, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		rbac:      rbacMW,
		limiter:   limiter,
		validator: validator.New(),
	}
}

// MountRoutes registers AI routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermAIUse))
		r.Post("/blog-draft", h.blogDraft)
		r.Post("/project-description", h.projectDescription)
		r.Post("/contact-summary", h.contactSummary)
	})
}

// allow charges one call of op against the caller's budget. The key is
// per-user so one heavy user cannot starve the rest of the team.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, op string, policy ratelimit.Policy) bool {
	user := rbac.UserFromContext(r.Context())
	if user == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return false
	}
	key := fmt.Sprintf("ai:%s:%d", op, user.ID)
	res := h.limiter.Check(key, policy)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	if !res.Allowed {
		httpx.TooManyRequests(w, res.ResetAt)
		return false
	}
	return true
}

func (h *Handler) blogDraft(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "blogDraft", ratelimit.AIGenerate) {
		return
	}
	var req BlogDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	text, err := h.service.GenerateBlogDraft(r.Context(), req)
	if err != nil {
		h.logger.Error("generate blog draft", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, GenerationResponse{Text: text})
}

func (h *Handler) projectDescription(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "projectDescription", ratelimit.AIGenerate) {
		return
	}
	var req ProjectDescriptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	text, err := h.service.PolishProjectDescription(r.Context(), req)
	if err != nil {
		h.logger.Error("polish project description", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, GenerationResponse{Text: text})
}

func (h *Handler) contactSummary(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "contactSummary", ratelimit.AIAnalyze) {
		return
	}
	var req ContactSummaryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	text, err := h.service.SummarizeContact(r.Context(), req)
	if err != nil {
		h.logger.Error("summarize contact", slog.Int64("contact_id", req.ContactID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, GenerationResponse{Text: text})
}
