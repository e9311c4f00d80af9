// Package rest exposes the grid intents over HTTP. Every intent response carries the
// display commands the row editor emitted while handling it.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productgrid/internal/grid"
	"github.com/abgdnv/productgrid/internal/platform/web"
	"github.com/abgdnv/productgrid/internal/product"
	"github.com/abgdnv/productgrid/internal/screen"
	"github.com/go-chi/chi/v5"
)

// RowEditor is the part of grid.Editor the handler relays intents to.
type RowEditor interface {
	Records() []product.Record
	Session() (grid.Session, bool)
	BeginAdd(ctx context.Context, surface grid.Surface) grid.Session
	BeginEdit(ctx context.Context, surface grid.Surface, row int) (grid.Session, error)
	SaveDraft(ctx context.Context, surface grid.Surface, draft product.Draft) (product.Record, error)
	Cancel(ctx context.Context, surface grid.Surface)
	Remove(ctx context.Context, id int) bool
}

// StatusReporter reports whether the product list has been loaded.
type StatusReporter interface {
	Status() screen.Status
}

// SessionResponse is returned by the add, edit and cancel intents.
type SessionResponse struct {
	Session  *grid.Session  `json:"session,omitempty"`
	Commands []grid.Command `json:"commands"`
}

// SaveResponse is returned by a successful save intent.
type SaveResponse struct {
	Record   product.Record `json:"record"`
	Commands []grid.Command `json:"commands"`
}

type Handler struct {
	editor RowEditor
	status StatusReporter
	logger *slog.Logger
}

// NewHandler creates a new instance of Handler.
func NewHandler(editor RowEditor, status StatusReporter, logger *slog.Logger) *Handler {
	return &Handler{
		editor: editor,
		status: status,
		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the grid.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Delete("/{id}", h.Remove)
	})

	r.Route("/api/v1/grid", func(r chi.Router) {
		r.Get("/session", h.CurrentSession)
		r.Post("/session", h.Add)
		r.Put("/session", h.Save)
		r.Delete("/session", h.Cancel)
		r.Post("/rows/{row}/edit", h.Edit)
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadyCheck)
}

// FindAll returns the whole collection in display order.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	list := h.editor.Records()
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Remove handles the remove intent for a record id.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseIntParam(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to remove product", "ID", id)
	if !h.editor.Remove(r.Context(), id) {
		h.logger.WarnContext(r.Context(), "Product not found for removal", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentSession returns the open row, or 204 when nothing is being edited.
func (h *Handler) CurrentSession(w http.ResponseWriter, _ *http.Request) {
	session, open := h.editor.Session()
	if !open {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, session)
}

// Add handles the add intent.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	surface := &grid.Recorder{}
	session := h.editor.BeginAdd(r.Context(), surface)
	web.RespondJSON(w, h.logger, http.StatusCreated, SessionResponse{Session: &session, Commands: surface.Commands()})
}

// Edit handles the edit intent for a row position.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	row, ok := web.ParseIntParam(w, r, h.logger, "row")
	if !ok {
		return
	}
	surface := &grid.Recorder{}
	session, err := h.editor.BeginEdit(r.Context(), surface, row)
	if err != nil {
		if errors.Is(err, grid.ErrRowOutOfRange) {
			web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Row %d not found", row))
			return
		}
		h.logger.ErrorContext(r.Context(), "Error opening row", "row", row, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to open row %d", row))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, SessionResponse{Session: &session, Commands: surface.Commands()})
}

// Save handles the save intent with the draft fields in the body.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var draft product.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	surface := &grid.Recorder{}
	saved, err := h.editor.SaveDraft(r.Context(), surface, draft)
	if err != nil {
		var validationErr *grid.ValidationError
		var goneErr *grid.RecordGoneError
		switch {
		case errors.As(err, &validationErr):
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErr.Fields {
				errorResponse[fieldErr.Field] = "failed on rule: " + fieldErr.Rule
			}
			web.RespondJSON(w, h.logger, http.StatusUnprocessableEntity, map[string]any{"validation_errors": errorResponse})
		case errors.Is(err, grid.ErrNoSession):
			web.RespondError(w, h.logger, http.StatusConflict, "No row is being edited")
		case errors.As(err, &goneErr):
			web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d no longer exists", goneErr.ID))
		default:
			h.logger.ErrorContext(r.Context(), "Error saving row", "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to save row")
		}
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, SaveResponse{Record: saved, Commands: surface.Commands()})
}

// Cancel handles the cancel intent.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	surface := &grid.Recorder{}
	h.editor.Cancel(r.Context(), surface)
	web.RespondJSON(w, h.logger, http.StatusOK, SessionResponse{Commands: surface.Commands()})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadyCheck reports 200 once the product list is loaded and 503 otherwise.
func (h *Handler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	status := h.status.Status()
	code := http.StatusServiceUnavailable
	if status.State == screen.StateLoaded {
		code = http.StatusOK
	}
	web.RespondJSON(w, h.logger, code, status)
}
