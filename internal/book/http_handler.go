package book

import (
	"errors"
	"net/http"
	"strings"

	"bookinventory/internal/httpx"
	"bookinventory/internal/platform/googlebooks"
	"bookinventory/internal/validation"

	"github.com/sirupsen/logrus"
)

const defaultPageSize = 20

type HTTPHandler struct {
	service  *Service
	metadata MetadataLookup
	log      *logrus.Logger
}

func NewHTTPHandler(service *Service, metadata MetadataLookup, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, metadata: metadata, log: log}
}

type listQuery struct {
	Page  int `json:"page" validate:"gte=0"`
	Limit int `json:"limit" validate:"min=1"`
}

type monthQuery struct {
	Year  int `json:"year"`
	Month int `json:"month" validate:"gte=1,lte=12"`
}

// Get handles GET /api/books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if b == nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	httpx.JSONOK(w, b)
}

// List handles GET /api/books/all-books?page=&limit=
// @Summary List books, one page at a time
// @Tags books
// @Produce json
// @Param page query int false "Zero-based page" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} Page
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books/all-books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.QueryInt(r, "page", 0)
	if err != nil {
		badRequest(w, r, "page", err.Error())
		return
	}
	limit, err := httpx.QueryInt(r, "limit", defaultPageSize)
	if err != nil {
		badRequest(w, r, "limit", err.Error())
		return
	}
	if errs := validation.Struct(listQuery{Page: page, Limit: limit}); errs != nil {
		validationError(w, r, errs)
		return
	}

	result, err := h.service.Paginate(r.Context(), page, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONOK(w, result)
}

// Search handles GET /api/books/search?isbn=
// @Summary Find every copy with an ISBN
// @Tags books
// @Produce json
// @Param isbn query string true "ISBN"
// @Success 200 {array} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.URL.Query().Get("isbn"))
	if isbn == "" {
		badRequest(w, r, "isbn", "isbn is required")
		return
	}

	books, err := h.service.SearchByISBN(r.Context(), isbn)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if len(books) == 0 {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No books found for ISBN", nil)
		return
	}
	httpx.JSONOK(w, books)
}

// SoldInMonth handles GET /api/books/sold-in-month?year=&month=
// @Summary Books purchased in a calendar month
// @Tags books
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} Book
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books/sold-in-month [get]
func (h *HTTPHandler) SoldInMonth(w http.ResponseWriter, r *http.Request) {
	year, err := httpx.RequiredQueryInt(r, "year")
	if err != nil {
		badRequest(w, r, "year", err.Error())
		return
	}
	month, err := httpx.RequiredQueryInt(r, "month")
	if err != nil {
		badRequest(w, r, "month", err.Error())
		return
	}
	if errs := validation.Struct(monthQuery{Year: year, Month: month}); errs != nil {
		validationError(w, r, errs)
		return
	}

	books, err := h.service.SoldInMonth(r.Context(), year, month)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if len(books) == 0 {
		httpx.NoContent(w)
		return
	}
	httpx.JSONOK(w, books)
}

// Create handles POST /api/books/create-book
// @Summary Add a book to inventory
// @Tags books
// @Accept json
// @Produce json
// @Param book body Book true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books/create-book [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Book
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a valid book", nil)
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, created)
}

// Update handles PUT /api/books/{id}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body Book true "Book"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in Book
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a valid book", nil)
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONOK(w, updated)
}

// Delete handles DELETE /api/books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path string true "Book ID"
// @Success 204
// @Router /api/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// ActiveInventoryCount handles GET /api/books/active-inventory-count
func (h *HTTPHandler) ActiveInventoryCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.CountActiveInventory(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, n)
}

// FinancialOverview handles GET /api/books/financial-overview
func (h *HTTPHandler) FinancialOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.FinancialOverview(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, overview)
}

// InventoryStatus handles GET /api/books/inventory-status
func (h *HTTPHandler) InventoryStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.InventoryStatus(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONOK(w, status)
}

// Details handles GET /api/books/book-details?isbn=
// @Summary Catalog title and cover for an ISBN
// @Tags books
// @Produce json
// @Param isbn query string true "ISBN"
// @Success 200 {object} googlebooks.Volume
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/books/book-details [get]
func (h *HTTPHandler) Details(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.URL.Query().Get("isbn"))
	if isbn == "" {
		badRequest(w, r, "isbn", "isbn is required")
		return
	}

	vol, err := h.metadata.LookupByISBN(r.Context(), isbn)
	switch {
	case errors.Is(err, googlebooks.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No catalog entry for ISBN", nil)
	case err != nil:
		h.log.WithError(err).WithField("isbn", isbn).Error("book details lookup failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "METADATA_UNAVAILABLE", "Book details are unavailable", nil)
	default:
		httpx.JSONOK(w, vol)
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		validationError(w, r, verr.Fields)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	default:
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Error("book request failed")
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func badRequest(w http.ResponseWriter, r *http.Request, field, message string) {
	validationError(w, r, []validation.FieldError{{Field: field, Message: message}})
}

func validationError(w http.ResponseWriter, r *http.Request, errs []validation.FieldError) {
	details := make([]httpx.ErrorDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, httpx.ErrorDetail{Field: e.Field, Message: e.Message})
	}
	httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", details)
}
