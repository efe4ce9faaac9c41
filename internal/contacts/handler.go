package contacts

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// Handler manages contact inquiry endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	audit     *shared.AuditLogger
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, audit *shared.AuditLogger, rbacMW rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		audit:     audit,
		rbac:      rbacMW,
		validator: validator.New(),
	}
}

// MountRoutes registers admin contact routes. Deleting inquiries is an
// admin-only permission in the role table.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermContactsRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermContactsWrite))
		r.Put("/{id}", h.updateStatus)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermContactsDelete))
		r.Delete("/{id}", h.delete)
	})
}

// Submit handles the public contact form. Rate limiting is applied at the
// router where this handler is mounted.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	contact, err := h.service.Submit(r.Context(), req, shared.ClientIP(r))
	if err != nil {
		h.logger.Error("submit contact", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if contact == nil {
		// Honeypot: answer as if it worked.
		httpx.JSON(w, http.StatusAccepted, map[string]any{"status": "received"})
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"status": "received", "id": contact.ID})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	contacts, pagination, err := h.service.ListContacts(r.Context(), q.Get("status"), page, perPage)
	if err != nil {
		h.logger.Error("list contacts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"contacts": contacts, "pagination": pagination})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	contact, err := h.service.GetContact(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	contact, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "contact.status", id)
	httpx.JSON(w, http.StatusOK, contact)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "contact.delete", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) record(r *http.Request, action string, entityID int64) {
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
		Entity:   "contact",
		EntityID: fmt.Sprintf("%d", entityID),
	})
	if err != nil {
		h.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return 0, false
	}
	return id, true
}
