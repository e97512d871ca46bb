package http

import (
	"context"

	"bookdash/pkg/contracts/domain"
)

// DashboardServiceInterface is the view-building surface the dashboard
// handler depends on.
type DashboardServiceInterface interface {
	HomeView(ctx context.Context) (*domain.ViewPayload, error)
	SalesView(ctx context.Context) (*domain.ViewPayload, error)
	PublisherView(ctx context.Context, publisher string) (*domain.ViewPayload, error)
	PriceRatingView(ctx context.Context) (*domain.ViewPayload, error)
	SearchView(ctx context.Context, keyword string) (*domain.ViewPayload, error)
	Publishers(ctx context.Context) ([]string, error)
}
