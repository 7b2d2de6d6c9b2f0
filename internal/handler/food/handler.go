package food

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
	"github.com/zhouzirui/food-catalog/backend/pkg/utils"
)

// Limits bounds the listing page size.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Handler serves the food catalog endpoints.
type Handler struct {
	catalog *catalog.Service
	logger  *zap.Logger
	limits  Limits
}

// New creates the food handler.
func New(catalogSvc *catalog.Service, logger *zap.Logger, limits Limits) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalogSvc,
		logger:  logger.Named("food"),
		limits:  limits,
	}
}

// RegisterRoutes registers the food routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/food", h.handleList)
	r.Post("/food", h.handleCreate)
	r.Get("/food/{id}", h.handleGet)
	r.Patch("/food/{id}", h.handleUpdate)
	r.Delete("/food/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query(), h.limits)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalog.List(r.Context(), q.filter, q.page, q.size)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, item)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := decodeBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := payload.validate()
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var payload updateRequest
	if err := decodeBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch, err := payload.validate()
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, item)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, true)
}

// respondServiceError maps catalog errors onto HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrItemNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrDuplicateName), errors.Is(err, catalog.ErrInvalidFilterRange):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("unexpected catalog failure",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
