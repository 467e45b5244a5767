package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/config"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/dataprocessing"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/exporter"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/infrastructure"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/validation"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// options holds the parsed command line.
type options struct {
	configFile    string
	interventions string
	workshops     string
	out           string
	limit         int
	printJSON     bool
	selection     domain.FilterSelection
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(infrastructure.EnsureTraceID(context.Background()), opts, os.Stdout, os.Stderr); err != nil {
		slog.Error("Report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("dashboard-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{selection: domain.FilterSelection{}}
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.interventions, "interventions", "", "interventions workbook (overrides config)")
	fs.StringVar(&opts.workshops, "workshops", "", "workshops workbook (overrides config)")
	fs.StringVar(&opts.out, "out", "report.xlsx", "output workbook path")
	fs.IntVar(&opts.limit, "limit", 0, "rows in the top companies sheet (0 uses the configured default)")
	fs.BoolVar(&opts.printJSON, "json", false, "also print the dashboard payload as JSON to stdout")

	for _, d := range domain.FilterDimensions {
		fs.Var(&dimensionValues{sel: opts.selection, dim: d}, string(d),
			fmt.Sprintf("%s value to keep (repeatable)", d))
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// dimensionValues is a repeatable flag appending to one dimension of a
// selection. Each occurrence is one value; blanks are ignored.
type dimensionValues struct {
	sel domain.FilterSelection
	dim domain.Dimension
}

func (v *dimensionValues) String() string {
	if v == nil || v.sel == nil {
		return ""
	}
	return strings.Join(v.sel[v.dim], ", ")
}

func (v *dimensionValues) Set(s string) error {
	if s = strings.TrimSpace(s); s != "" {
		v.sel[v.dim] = append(v.sel[v.dim], s)
	}
	return nil
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	files := validation.NewFileValidator(logger)
	if err := files.ValidateWorkbook(cfg.Data.InterventionsPath); err != nil {
		if os.IsNotExist(err) {
			return apierrors.NewMissingSourceError(cfg.Data.InterventionsPath, err)
		}
		return err
	}
	if err := files.ValidateOutputWorkbook(opts.out); err != nil {
		return err
	}

	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderOptions{
		NullSentinel:       cfg.Data.NullSentinel,
		InterventionsSheet: cfg.Data.InterventionsSheet,
		WorkshopsSheet:     cfg.Data.WorkshopsSheet,
	})
	ds, err := dataprocessing.LoadDataset(ctx, loader, dataprocessing.Sources{
		InterventionsPath: cfg.Data.InterventionsPath,
		WorkshopsPath:     cfg.Data.WorkshopsPath,
	})
	if err != nil {
		if errors.Is(err, dataprocessing.ErrMissingSource) {
			return apierrors.NewMissingSourceError(cfg.Data.InterventionsPath, err)
		}
		return err
	}

	svc := services.NewDashboardService(ds, services.DashboardOptionsFrom(cfg.Data), nil, logger)

	d, err := svc.Dashboard(ctx, opts.selection)
	if err != nil {
		return err
	}
	records, err := svc.FilteredRecords(ctx, opts.selection)
	if err != nil {
		return err
	}
	companies, err := svc.CompanyTable(ctx, opts.selection, opts.limit)
	if err != nil {
		return err
	}

	if err := writeReport(opts.out, logger, d, records, companies); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Report written",
		slog.String("path", opts.out),
		slog.Int("interventions", len(records)),
		slog.Int("companies", len(companies)),
		slog.Bool("empty", d.Empty))

	if opts.printJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
	}
	return nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.interventions != "" {
		cfg.Data.InterventionsPath = opts.interventions
	}
	if opts.workshops != "" {
		cfg.Data.WorkshopsPath = opts.workshops
	}
	// Keep CLI output on stderr only.
	cfg.Logging.Output = "console"
	return cfg, nil
}

func writeReport(path string, logger *slog.Logger, d *domain.Dashboard, records []domain.InterventionRecord, companies []domain.CompanyTableRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := exporter.NewXLSXWriter(logger).WriteWorkbook(f, d, records, companies); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return f.Close()
}
