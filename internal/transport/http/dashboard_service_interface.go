package http

import (
	"context"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers use
type DashboardServiceInterface interface {
	Options(ctx context.Context) (domain.FilterOptions, error)
	Dashboard(ctx context.Context, sel domain.FilterSelection) (*domain.Dashboard, error)
	Summary(ctx context.Context, sel domain.FilterSelection) (*services.SummaryView, error)
	Companies(ctx context.Context, sel domain.FilterSelection, limit int) (*services.CompanyView, error)
	CompanyTable(ctx context.Context, sel domain.FilterSelection, limit int) ([]domain.CompanyTableRow, error)
	FilteredRecords(ctx context.Context, sel domain.FilterSelection) ([]domain.InterventionRecord, error)
	Workshops(ctx context.Context) (*domain.WorkshopSummary, error)
	Quality(ctx context.Context) (*domain.QualityReport, error)
	DefaultCompanyTable() int
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
