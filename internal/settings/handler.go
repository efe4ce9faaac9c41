package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// UpsertSettingRequest carries a setting value.
type UpsertSettingRequest struct {
	Value string `json:"value" validate:"required,max=10000"`
}

// Handler manages site settings endpoints. Reading is open to staff; writing
// stays admin-only in the role table.
type Handler struct {
	logger    *slog.Logger
	repo      RepositoryPort
	audit     *shared.AuditLogger
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo RepositoryPort, audit *shared.AuditLogger, rbacMW rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		repo:      repo,
		audit:     audit,
		rbac:      rbacMW,
		validator: validator.New(),
	}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermSettingsRead))
		r.Get("/", h.list)
		r.Get("/{key}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermSettingsWrite))
		r.Put("/{key}", h.upsert)
		r.Delete("/{key}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.ListSettings(r.Context())
	if err != nil {
		h.logger.Error("list settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"settings": settings})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	setting, err := h.repo.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, setting)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req UpsertSettingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	setting, err := h.repo.UpsertSetting(r.Context(), key, req.Value)
	if err != nil {
		h.logger.Error("upsert setting", slog.String("key", key), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "setting.write", key)
	httpx.JSON(w, http.StatusOK, setting)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.repo.DeleteSetting(r.Context(), key); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "setting.delete", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) record(r *http.Request, action, key string) {
	if h.audit == nil {
		return
	}
	actor := rbac.UserFromContext(r.Context())
	if actor == nil {
		return
	}
	err := h.audit.Record(r.Context(), shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "setting",
		EntityID: key,
	})
	if err != nil {
		h.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
