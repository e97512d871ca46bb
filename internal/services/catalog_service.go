package services

import (
	"context"
	"log/slog"
	"sync"

	"bookdash/internal/dataprocessing"
	"bookdash/pkg/contracts/domain"
)

// CatalogReader hands out the prepared catalog table. Implementations must
// return the same immutable snapshot on every call; views read it and never
// write to it.
type CatalogReader interface {
	Snapshot(ctx context.Context) ([]domain.BookRecord, error)
}

// CatalogService loads the catalog CSV exactly once and serves the cached
// snapshot for the lifetime of the process. The load outcome is memoized
// either way: a missing file is fatal for the whole session, so later calls
// must not silently pick up a file that appeared after startup.
type CatalogService struct {
	path   string
	logger *slog.Logger

	once  sync.Once
	books []domain.BookRecord
	err   error
}

// NewCatalogService creates a catalog service over the CSV at path.
func NewCatalogService(path string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		path:   path,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// Snapshot returns the prepared table, loading it on first use. Safe for
// concurrent callers; every caller sees the same slice.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.BookRecord, error) {
	s.once.Do(func() {
		s.books, s.err = dataprocessing.LoadCatalog(s.path, s.logger)
	})
	return s.books, s.err
}
