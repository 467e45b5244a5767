package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

const (
	TableInterventions = "interventions"
	TableWorkshops     = "workshops"
)

// LoaderOptions configures how workbooks are read.
type LoaderOptions struct {
	NullSentinel       string
	InterventionsSheet string
	WorkshopsSheet     string
}

// Loader reads the two source workbooks into typed records.
type Loader struct {
	logger *slog.Logger
	opts   LoaderOptions
}

// NewLoader creates a loader. An empty sentinel defaults to "NAN".
func NewLoader(logger *slog.Logger, opts LoaderOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NullSentinel == "" {
		opts.NullSentinel = domain.DefaultNullSentinel
	}
	return &Loader{
		logger: logger.With(slog.String("component", "loader")),
		opts:   opts,
	}
}

// sheet is a header-indexed view over the rows of one worksheet.
type sheet struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func (s *sheet) cell(row []string, column string) string {
	idx, ok := s.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (s *sheet) missing(expected []string) []string {
	var out []string
	for _, c := range expected {
		if _, ok := s.columns[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// LoadInterventions reads the interventions workbook. A missing file yields
// an error wrapping ErrMissingSource. Company ids are resolved here, once.
func (l *Loader) LoadInterventions(ctx context.Context, path string) ([]domain.InterventionRecord, *domain.LoadReport, error) {
	sh, err := l.readSheet(ctx, path, l.opts.InterventionsSheet)
	if err != nil {
		return nil, nil, err
	}
	if missing := sh.missing(domain.InterventionColumns); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%s: %w: %s", path, ErrMissingColumns, strings.Join(missing, ", "))
	}

	c := newCoercer(l.opts.NullSentinel)
	records := make([]domain.InterventionRecord, 0, len(sh.rows))
	for i, row := range sh.rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		get := func(col string) string { return sh.cell(row, col) }

		rec := domain.InterventionRecord{
			Phase:         c.text(get(domain.ColPhase)),
			Cohort:        c.text(get(domain.ColCohort)),
			ExecutionYear: c.integer(domain.ColExecutionYear, get(domain.ColExecutionYear)),
			Municipality:  c.text(get(domain.ColMunicipality)),
			Sector:        c.text(get(domain.ColSector)),
			Gender:        c.text(get(domain.ColGender)),

			ConsultingHours: c.number(domain.ColConsultingHours, get(domain.ColConsultingHours)),

			SatisfactionIndicator:   c.number(domain.ColSatisfaction, get(domain.ColSatisfaction)),
			SalesIndicator:          c.number(domain.ColSales, get(domain.ColSales)),
			TechProcessesIndicator:  c.number(domain.ColTechProcesses, get(domain.ColTechProcesses)),
			OnlinePresenceIndicator: c.number(domain.ColOnlinePresence, get(domain.ColOnlinePresence)),

			TaxID:       c.text(get(domain.ColTaxID)),
			CompanyName: c.text(get(domain.ColCompanyName)),
			PersonName:  c.text(get(domain.ColPersonName)),
		}
		if p := c.text(get(domain.ColProgram)); p != nil {
			rec.Program = *p
		}
		if t := c.text(get(domain.ColTopic)); t != nil {
			rec.Topic = *t
		}
		records = append(records, rec)
	}
	AssignCompanyIDs(records)

	report := &domain.LoadReport{
		Table:            TableInterventions,
		Path:             path,
		Sheet:            sh.name,
		Rows:             len(records),
		CoercionWarnings: c.warnings(),
		LoadedAt:         time.Now(),
	}
	report.Columns = InterventionQuality(records, report.CoercionWarnings, l.opts.NullSentinel)
	l.logWarnings(ctx, report)

	l.logger.InfoContext(ctx, "Interventions loaded",
		slog.String("path", path),
		slog.String("sheet", sh.name),
		slog.Int("rows", len(records)))
	return records, report, nil
}

// LoadWorkshops reads the optional workshops workbook. A missing file is not
// an error: it returns nil records, a nil report and a nil error.
func (l *Loader) LoadWorkshops(ctx context.Context, path string) ([]domain.WorkshopRecord, *domain.LoadReport, error) {
	if path == "" {
		return nil, nil, nil
	}
	sh, err := l.readSheet(ctx, path, l.opts.WorkshopsSheet)
	if errors.Is(err, ErrMissingSource) {
		l.logger.InfoContext(ctx, "Workshops file not found, section disabled", slog.String("path", path))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if missing := sh.missing(domain.WorkshopColumns); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%s: %w: %s", path, ErrMissingColumns, strings.Join(missing, ", "))
	}

	c := newCoercer(l.opts.NullSentinel)
	records := make([]domain.WorkshopRecord, 0, len(sh.rows))
	for _, row := range sh.rows {
		get := func(col string) string { return sh.cell(row, col) }

		rec := domain.WorkshopRecord{
			RawDate: strings.TrimSpace(get(domain.ColWorkshopDate)),
		}
		if t := c.text(get(domain.ColWorkshopTopic)); t != nil {
			rec.Topic = *t
		}
		rec.ParticipantCount = c.integer(domain.ColWorkshopParticipants, get(domain.ColWorkshopParticipants))
		rec.HoursHeld = c.number(domain.ColWorkshopHours, get(domain.ColWorkshopHours))
		if rec.RawDate != "" {
			if d, ok := ParseWorkshopDate(rec.RawDate); ok {
				rec.Date = &d
			} else {
				c.failures[domain.ColWorkshopDate]++
			}
		}
		records = append(records, rec)
	}

	report := &domain.LoadReport{
		Table:            TableWorkshops,
		Path:             path,
		Sheet:            sh.name,
		Rows:             len(records),
		CoercionWarnings: c.warnings(),
		LoadedAt:         time.Now(),
	}
	report.Columns = WorkshopQuality(records, report.CoercionWarnings)
	l.logWarnings(ctx, report)

	l.logger.InfoContext(ctx, "Workshops loaded",
		slog.String("path", path),
		slog.String("sheet", sh.name),
		slog.Int("rows", len(records)))
	return records, report, nil
}

// readSheet opens the workbook and returns the data rows below the header.
// Headers are trimmed before they are indexed.
func (l *Loader) readSheet(ctx context.Context, path, sheetName string) (*sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingSource)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptySheet)
		}
		sheetName = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		return nil, fmt.Errorf("%s: %w: %s", path, ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySheet)
	}

	sh := &sheet{name: sheetName, columns: make(map[string]int, len(rows[0]))}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := sh.columns[h]; !dup {
			sh.columns[h] = i
		}
	}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		sh.rows = append(sh.rows, row)
	}
	return sh, nil
}

func (l *Loader) logWarnings(ctx context.Context, report *domain.LoadReport) {
	for column, n := range report.CoercionWarnings {
		l.logger.WarnContext(ctx, "Values could not be coerced",
			slog.String("table", report.Table),
			slog.String("column", column),
			slog.Int("count", n))
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
