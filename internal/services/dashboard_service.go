package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/analytics"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/config"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/dataprocessing"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/infrastructure"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// MaxCompanyTable bounds the company table size accepted from clients.
const MaxCompanyTable = 500

// DashboardOptions tunes the aggregations.
type DashboardOptions struct {
	NullSentinel   string
	Corregimientos []string
	TopSectors     int
	TopCompanies   int
	CompanyTable   int
}

// DashboardOptionsFrom maps the data section of the configuration.
func DashboardOptionsFrom(cfg config.DataConfig) DashboardOptions {
	return DashboardOptions{
		NullSentinel:   cfg.NullSentinel,
		Corregimientos: cfg.Corregimientos,
		TopSectors:     cfg.TopSectors,
		TopCompanies:   cfg.TopCompanies,
		CompanyTable:   cfg.CompanyTable,
	}
}

func (o DashboardOptions) withDefaults() DashboardOptions {
	if o.NullSentinel == "" {
		o.NullSentinel = domain.DefaultNullSentinel
	}
	if o.TopSectors <= 0 {
		o.TopSectors = 10
	}
	if o.TopCompanies <= 0 {
		o.TopCompanies = 15
	}
	if o.CompanyTable <= 0 || o.CompanyTable > MaxCompanyTable {
		o.CompanyTable = 50
	}
	return o
}

// SummaryView is the headline metrics of one selection.
type SummaryView struct {
	Filters map[domain.Dimension][]string `json:"filters"`
	Empty   bool                          `json:"empty"`
	Summary domain.Summary                `json:"summary"`
}

// CompanyView is the company profile of one selection with its top-N table.
type CompanyView struct {
	Filters map[domain.Dimension][]string `json:"filters"`
	Empty   bool                          `json:"empty"`
	Profile domain.ProfileSummary         `json:"profile"`
	Table   []domain.CompanyTableRow      `json:"table"`
}

// DashboardService computes every dashboard view from the shared dataset.
// Each call filters the immutable dataset anew.
type DashboardService struct {
	dataset *dataprocessing.Dataset
	opts    DashboardOptions
	metrics *infrastructure.DashboardMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewDashboardService creates a dashboard service. metrics may be nil.
func NewDashboardService(dataset *dataprocessing.Dataset, opts DashboardOptions, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	logger = logger.With(slog.String("component", "dashboard_service"))
	if dataset != nil {
		logger.Info("DashboardService initialized",
			slog.Int("interventions", len(dataset.Interventions())),
			slog.Bool("workshops_enabled", dataset.WorkshopsEnabled()),
			slog.String("null_sentinel", opts.NullSentinel))
	}

	return &DashboardService{
		dataset: dataset,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// filter checks the context and returns the filtered view of a selection.
func (s *DashboardService) filter(ctx context.Context, sel domain.FilterSelection) ([]domain.InterventionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataset == nil {
		return nil, apierrors.NewAppError(apierrors.ErrTypeStorage, "dataset not loaded", ErrDatasetNotLoaded)
	}
	return analytics.ApplyFilters(s.dataset.Interventions(), sel), nil
}

func (s *DashboardService) record(ctx context.Context, view string, rows int, start time.Time) {
	elapsed := time.Since(start)
	s.metrics.RecordView(ctx, view, rows, elapsed)
	s.logger.DebugContext(ctx, "view computed",
		slog.String("view", view),
		slog.Int("rows", rows),
		slog.Duration("duration", elapsed))
}

// Options lists the selectable values of every filter dimension.
func (s *DashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataset == nil {
		return nil, apierrors.NewAppError(apierrors.ErrTypeStorage, "dataset not loaded", ErrDatasetNotLoaded)
	}
	return analytics.Options(s.dataset.Interventions(), s.opts.NullSentinel), nil
}

// Dashboard computes the full payload for a selection. The independent
// sections are computed concurrently over the same read-only filtered view.
func (s *DashboardService) Dashboard(ctx context.Context, sel domain.FilterSelection) (*domain.Dashboard, error) {
	start := time.Now()
	records, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		Filters:     sel.Normalized(),
		Empty:       len(records) == 0,
		GeneratedAt: s.now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Summary = analytics.Summarize(records, analytics.SummaryOptions{
			NullSentinel:   s.opts.NullSentinel,
			Corregimientos: s.opts.Corregimientos,
		})
		return gctx.Err()
	})
	g.Go(func() error {
		d.Breakdowns = analytics.ComputeBreakdowns(records, analytics.BreakdownOptions{
			NullSentinel: s.opts.NullSentinel,
			TopSectors:   s.opts.TopSectors,
		})
		return gctx.Err()
	})
	g.Go(func() error {
		d.Indicators = analytics.Indicators(records)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Profile = analytics.Profile(records).Summary(s.opts.TopCompanies)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Workshops = analytics.SummarizeWorkshops(s.dataset.Workshops())
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.Empty {
		s.logger.InfoContext(ctx, "selection matched no interventions",
			slog.Any("filters", d.Filters))
	}
	s.record(ctx, "dashboard", len(records), start)
	return d, nil
}

// Summary computes the headline metric cards only.
func (s *DashboardService) Summary(ctx context.Context, sel domain.FilterSelection) (*SummaryView, error) {
	start := time.Now()
	records, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}

	view := &SummaryView{
		Filters: sel.Normalized(),
		Empty:   len(records) == 0,
		Summary: analytics.Summarize(records, analytics.SummaryOptions{
			NullSentinel:   s.opts.NullSentinel,
			Corregimientos: s.opts.Corregimientos,
		}),
	}
	s.record(ctx, "summary", len(records), start)
	return view, nil
}

// Companies computes the company profile and the top-limit company table.
// A zero limit uses the configured table size.
func (s *DashboardService) Companies(ctx context.Context, sel domain.FilterSelection, limit int) (*CompanyView, error) {
	limit, err := s.tableLimit(limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}

	profile := analytics.Profile(records)
	view := &CompanyView{
		Filters: sel.Normalized(),
		Empty:   len(records) == 0,
		Profile: profile.Summary(s.opts.TopCompanies),
		Table:   profile.CompanyTable(limit),
	}
	s.record(ctx, "companies", len(records), start)
	return view, nil
}

// CompanyTable returns the top-limit company table of a selection.
func (s *DashboardService) CompanyTable(ctx context.Context, sel domain.FilterSelection, limit int) ([]domain.CompanyTableRow, error) {
	limit, err := s.tableLimit(limit)
	if err != nil {
		return nil, err
	}
	records, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}
	return analytics.Profile(records).CompanyTable(limit), nil
}

// FilteredRecords returns the filtered interventions of a selection.
func (s *DashboardService) FilteredRecords(ctx context.Context, sel domain.FilterSelection) ([]domain.InterventionRecord, error) {
	start := time.Now()
	records, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}
	s.record(ctx, "records", len(records), start)
	return records, nil
}

// Workshops summarizes the workshop table. Workshops are not affected by
// the intervention filters.
func (s *DashboardService) Workshops(ctx context.Context) (*domain.WorkshopSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataset == nil || !s.dataset.WorkshopsEnabled() {
		return nil, apierrors.NewAppError(apierrors.ErrTypeNotFound, ErrWorkshopsDisabled.Error(), ErrWorkshopsDisabled)
	}

	start := time.Now()
	summary := analytics.SummarizeWorkshops(s.dataset.Workshops())
	s.record(ctx, "workshops", len(s.dataset.Workshops()), start)
	return summary, nil
}

// Quality returns the load and completeness report of both tables.
func (s *DashboardService) Quality(ctx context.Context) (*domain.QualityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataset == nil {
		return nil, apierrors.NewAppError(apierrors.ErrTypeStorage, "dataset not loaded", ErrDatasetNotLoaded)
	}
	q := s.dataset.Quality()
	return &q, nil
}

// DefaultCompanyTable is the configured company table size.
func (s *DashboardService) DefaultCompanyTable() int { return s.opts.CompanyTable }

func (s *DashboardService) tableLimit(limit int) (int, error) {
	if limit == 0 {
		return s.opts.CompanyTable, nil
	}
	if limit < 0 || limit > MaxCompanyTable {
		return 0, apierrors.NewAppError(apierrors.ErrTypeValidation,
			fmt.Sprintf("limit must be between 1 and %d", MaxCompanyTable), ErrInvalidInput).
			WithContext("limit", limit)
	}
	return limit, nil
}
