package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookdash/internal/analytics"
	apierrors "bookdash/internal/errors"
	"bookdash/internal/exporter"
	"bookdash/internal/middleware"
	"bookdash/pkg/contracts/domain"
)

// CatalogSnapshotter is the slice of the catalog service the export handler
// needs.
type CatalogSnapshotter interface {
	Snapshot(ctx context.Context) ([]domain.BookRecord, error)
}

// ExportHandler streams catalog downloads. The optional q parameter applies
// the same keyword filter as the search view, so a search result can be
// exported as seen.
type ExportHandler struct {
	catalog      CatalogSnapshotter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler.
func NewExportHandler(catalog CatalogSnapshotter, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		catalog:      catalog,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/books.csv", h.ExportCSV)
	r.Get("/books.xlsx", h.ExportXLSX)
	return r
}

// ExportCSV handles GET /api/export/books.csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	books, ok := h.loadBooks(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="books.csv"`)
	if err := exporter.WriteCSV(w, books); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		h.logger.ErrorContext(r.Context(), "csv export failed mid-stream",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// ExportXLSX handles GET /api/export/books.xlsx
func (h *ExportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	books, ok := h.loadBooks(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="books.xlsx"`)
	if err := exporter.WriteXLSX(w, books); err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed mid-stream",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

func (h *ExportHandler) loadBooks(w http.ResponseWriter, r *http.Request) ([]domain.BookRecord, bool) {
	reqID := middleware.GetReqID(r.Context())
	keyword := r.URL.Query().Get("q")

	books, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load catalog for export",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		handleCatalogError(h.errorHandler, w, r, err)
		return nil, false
	}

	if keyword != "" {
		books = analytics.KeywordFilter(books, keyword)
	}

	h.logger.InfoContext(r.Context(), "exporting catalog",
		slog.String("request_id", reqID),
		slog.String("keyword", keyword),
		slog.Int("row_count", len(books)),
	)
	return books, true
}
