package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bookdash/internal/dataprocessing"
	apierrors "bookdash/internal/errors"
	"bookdash/internal/middleware"
	"bookdash/internal/services"
)

// DashboardHandler serves the view render specifications and the publisher
// list with RFC 7807 compliant errors.
type DashboardHandler struct {
	service       DashboardServiceInterface
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
	maxKeywordLen int
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxKeywordLen int) *DashboardHandler {
	return &DashboardHandler{
		service:       service,
		logger:        logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:  errorHandler,
		maxKeywordLen: maxKeywordLen,
	}
}

// RegisterRoutes attaches the dashboard routes onto the given router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/views", func(r chi.Router) {
			r.Get("/home", h.GetHomeView)
			r.Get("/sales", h.GetSalesView)
			r.Get("/publisher", h.GetPublisherView)
			r.Get("/price-rating", h.GetPriceRatingView)
			r.Get("/search", h.GetSearchView)
		})
		r.Get("/publishers", h.GetPublishers)
	})
}

// GetHomeView handles GET /api/views/home
func (h *DashboardHandler) GetHomeView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "home", func() (interface{}, error) {
		return h.service.HomeView(r.Context())
	})
}

// GetSalesView handles GET /api/views/sales
func (h *DashboardHandler) GetSalesView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "sales", func() (interface{}, error) {
		return h.service.SalesView(r.Context())
	})
}

// GetPriceRatingView handles GET /api/views/price-rating
func (h *DashboardHandler) GetPriceRatingView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, "price-rating", func() (interface{}, error) {
		return h.service.PriceRatingView(r.Context())
	})
}

// GetPublisherView handles GET /api/views/publisher?name=
func (h *DashboardHandler) GetPublisherView(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Publisher name is required"))
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.InfoContext(r.Context(), "building publisher view",
		slog.String("request_id", reqID),
		slog.String("publisher", name),
	)

	payload, err := h.service.PublisherView(r.Context(), name)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build publisher view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("publisher", name),
		)

		if errors.Is(err, services.ErrPublisherNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusNotFound,
				"PUBLISHER_NOT_FOUND",
				fmt.Sprintf("Publisher '%s' not found in the catalog", name),
				map[string]interface{}{
					"publisher": name,
				},
			))
			return
		}

		handleCatalogError(h.errorHandler, w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}

// GetSearchView handles GET /api/views/search?q=
func (h *DashboardHandler) GetSearchView(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if h.maxKeywordLen > 0 && len(keyword) > h.maxKeywordLen {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("q",
			fmt.Sprintf("Keyword must be at most %d bytes", h.maxKeywordLen)))
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.InfoContext(r.Context(), "building search view",
		slog.String("request_id", reqID),
		slog.String("keyword", keyword),
	)

	payload, err := h.service.SearchView(r.Context(), keyword)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build search view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("keyword", keyword),
		)
		handleCatalogError(h.errorHandler, w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}

// GetPublishers handles GET /api/publishers
func (h *DashboardHandler) GetPublishers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	publishers, err := h.service.Publishers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list publishers",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		handleCatalogError(h.errorHandler, w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   publishers,
		"count":  len(publishers),
	})
}

// renderView runs one parameterless view builder and renders the envelope.
func (h *DashboardHandler) renderView(w http.ResponseWriter, r *http.Request, view string, build func() (interface{}, error)) {
	reqID := middleware.GetReqID(r.Context())
	h.logger.InfoContext(r.Context(), "building view",
		slog.String("request_id", reqID),
		slog.String("view", view),
	)

	payload, err := build()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("view", view),
		)
		handleCatalogError(h.errorHandler, w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}

// handleCatalogError maps catalog load failures onto the 503 data-file
// problem; everything else falls through to the generic handler.
func handleCatalogError(eh *apierrors.ErrorHandler, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataprocessing.ErrDataFileNotFound) {
		eh.HandleError(w, r, apierrors.DataFileMissingError(err))
		return
	}
	eh.HandleError(w, r, err)
}
