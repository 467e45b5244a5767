package dataprocessing

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// Sources names the two input workbooks.
type Sources struct {
	InterventionsPath string
	WorkshopsPath     string
}

// Dataset is the immutable in-memory copy of both tables. It is built once
// at startup and shared read-only by every consumer.
type Dataset struct {
	interventions      []domain.InterventionRecord
	workshops          []domain.WorkshopRecord
	interventionReport domain.LoadReport
	workshopReport     *domain.LoadReport
}

// NewDataset wraps already loaded records. A nil workshops slice disables the
// workshop section. Company ids are resolved for records that lack one.
func NewDataset(interventions []domain.InterventionRecord, workshops []domain.WorkshopRecord) *Dataset {
	for i := range interventions {
		if interventions[i].CompanyID == nil {
			interventions[i].CompanyID = ResolveCompanyID(&interventions[i])
		}
	}
	return &Dataset{
		interventions: interventions,
		workshops:     workshops,
		interventionReport: domain.LoadReport{
			Table:            TableInterventions,
			Rows:             len(interventions),
			CoercionWarnings: map[string]int{},
		},
	}
}

// LoadDataset reads both workbooks concurrently. A missing interventions file
// is fatal. A missing workshops file disables that section, and so does a
// malformed one after a warning.
func LoadDataset(ctx context.Context, loader *Loader, src Sources) (*Dataset, error) {
	var (
		ds          Dataset
		wsRecords   []domain.WorkshopRecord
		wsReport    *domain.LoadReport
		interReport *domain.LoadReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, report, err := loader.LoadInterventions(gctx, src.InterventionsPath)
		if err != nil {
			return err
		}
		ds.interventions = records
		interReport = report
		return nil
	})
	g.Go(func() error {
		records, report, err := loader.LoadWorkshops(gctx, src.WorkshopsPath)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			loader.logger.WarnContext(gctx, "Workshops file unreadable, section disabled",
				slog.String("path", src.WorkshopsPath),
				slog.String("error", err.Error()))
			return nil
		}
		wsRecords = records
		wsReport = report
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.interventionReport = *interReport
	ds.workshops = wsRecords
	ds.workshopReport = wsReport
	return &ds, nil
}

// Interventions returns the full interventions table. Callers must not
// modify the returned records.
func (d *Dataset) Interventions() []domain.InterventionRecord { return d.interventions }

// Workshops returns the workshops table, nil when the section is disabled.
func (d *Dataset) Workshops() []domain.WorkshopRecord { return d.workshops }

// WorkshopsEnabled reports whether workshop analysis is available.
func (d *Dataset) WorkshopsEnabled() bool { return d.workshops != nil }

// Quality returns the load reports of both tables.
func (d *Dataset) Quality() domain.QualityReport {
	q := domain.QualityReport{Interventions: d.interventionReport}
	if d.workshopReport != nil {
		r := *d.workshopReport
		q.Workshops = &r
	}
	return q
}
