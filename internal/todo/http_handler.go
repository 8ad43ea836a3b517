package todo

import (
	"net/http"

	"bookinventory/internal/httpx"

	"github.com/sirupsen/logrus"
)

type HTTPHandler struct {
	service *Service
	log     *logrus.Logger
}

func NewHTTPHandler(service *Service, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// List handles GET /api/todos
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, todos)
}

// Create handles POST /api/todos
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Todo
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a valid todo", nil)
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, created)
}

// Update handles PUT /api/todos/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in Todo
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a valid todo", nil)
		return
	}

	saved, err := h.service.Upsert(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, saved)
}

// Delete handles DELETE /api/todos/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Error("todo request failed")
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
