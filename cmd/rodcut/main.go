// rodcut — batch rod cutting optimizer
//
// Computes the minimum-waste way to cut stock rods into three piece lengths
// over a range of batch sizes, then reports the winning batch size and its
// cutting recipe.
//
// Build:
//   go build -o rodcut ./cmd/rodcut
//
// The default engine links against GLPK (libglpk via cgo); pass
// -engine exact for the pure-Go backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/piwi3910/rodcut/internal/engine"
	"github.com/piwi3910/rodcut/internal/export"
	"github.com/piwi3910/rodcut/internal/importer"
	"github.com/piwi3910/rodcut/internal/model"
	"github.com/piwi3910/rodcut/internal/project"
	"github.com/piwi3910/rodcut/internal/report"
	"github.com/piwi3910/rodcut/internal/solver"
	"github.com/piwi3910/rodcut/internal/solver/glpk"
	"github.com/piwi3910/rodcut/logging"
)

const usageText = `Usage:
  rodcut [flags] l l1 l2 l3 m1 m2 m3 n_bound
  rodcut [flags] -jobs FILE

Arguments:
  l        rod length (whole mm)
  l1..l3   piece lengths, strictly descending (whole mm)
  m1..m3   pieces of each length per batch unit
  n_bound  largest batch size to consider

Flags:
`

func main() {
	if err := run(); err != nil {
		log := logging.Get()
		log.Error().Err(err).Msg("rodcut failed")
		os.Exit(1)
	}
}

func run() error {
	log := logging.Get()

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn().Err(err).Msg("cannot read config, using defaults")
		cfg = model.DefaultAppConfig()
	}

	var (
		engineName = flag.String("engine", cfg.Engine, "MILP engine: glpk or exact")
		workers    = flag.Int("workers", cfg.Workers, "concurrent trials (0 = one per CPU core)")
		timeout    = flag.Duration("timeout", time.Duration(cfg.TrialTimeoutSec)*time.Second, "per-trial solve timeout (0 = none)")
		jobsFile   = flag.String("jobs", "", "import jobs from a CSV or Excel file instead of arguments")
		label      = flag.String("label", "", "job label used in reports and exports")
		pdfPath    = flag.String("pdf", "", "write a cutting plan PDF to this path")
		labelsPath = flag.String("labels", "", "write a QR label sheet PDF to this path")
		xlsxPath   = flag.String("xlsx", "", "write an Excel workbook to this path")
		dxfPath    = flag.String("dxf", "", "write a DXF cut diagram to this path")
		savePath   = flag.String("save", "", "save the job inputs to this path for later reuse")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	sv, err := pickSolver(*engineName)
	if err != nil {
		return err
	}
	searcher := engine.NewSearcher(sv, engine.Options{Workers: *workers, TrialTimeout: *timeout})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *jobsFile != "" {
		if flag.NArg() != 0 {
			flag.Usage()
			return fmt.Errorf("-jobs and positional arguments are mutually exclusive")
		}
		return runJobsFile(ctx, searcher, *jobsFile)
	}

	job, err := jobFromArgs(flag.Args(), *label)
	if err != nil {
		flag.Usage()
		return err
	}

	trial, err := searcher.Search(ctx, job)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, job, trial); err != nil {
		return err
	}

	if err := runExports(job, trial, *pdfPath, *labelsPath, *xlsxPath, *dxfPath); err != nil {
		return err
	}

	if *savePath != "" {
		if err := project.SaveJob(*savePath, job); err != nil {
			return fmt.Errorf("saving job: %w", err)
		}
		project.AddRecentJobFile(&cfg, *savePath)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
			log.Warn().Err(err).Msg("cannot update config")
		}
	}

	return nil
}

// pickSolver maps an engine name to its backend.
func pickSolver(name string) (solver.Solver, error) {
	switch name {
	case "glpk":
		return glpk.New(), nil
	case "exact":
		return solver.NewExact(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want glpk or exact)", name)
	}
}

// jobFromArgs parses the eight positional integers into a Job.
func jobFromArgs(args []string, label string) (model.Job, error) {
	if len(args) != 8 {
		return model.Job{}, fmt.Errorf("expected 8 arguments, got %d", len(args))
	}

	vals := make([]int, 8)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return model.Job{}, fmt.Errorf("argument %d: %q is not an integer", i+1, a)
		}
		vals[i] = v
	}

	if label == "" {
		label = "rodcut job"
	}
	job := model.NewJob(label, vals[0],
		[model.PieceTypes]int{vals[1], vals[2], vals[3]},
		[model.PieceTypes]int{vals[4], vals[5], vals[6]},
		vals[7])
	return job, job.Validate()
}

// runJobsFile imports a job list and optimizes every entry, reporting each
// result to stdout. A job that fails leaves the remaining jobs running.
func runJobsFile(ctx context.Context, searcher *engine.Searcher, path string) error {
	log := logging.Get()

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		result = importer.ImportExcel(path)
	default:
		result = importer.ImportCSV(path)
	}

	for _, w := range result.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	for _, e := range result.Errors {
		log.Error().Str("file", path).Msg(e)
	}
	if len(result.Jobs) == 0 {
		return fmt.Errorf("no usable jobs in %s", path)
	}

	failed := 0
	for _, job := range result.Jobs {
		fmt.Printf("\n=== %s ===\n", job.Label)
		trial, err := searcher.Search(ctx, job)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Error().Err(err).Str("job", job.Label).Msg("optimization failed")
			failed++
			continue
		}
		if err := report.Write(os.Stdout, job, trial); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(result.Jobs))
	}
	return nil
}

// runExports writes whichever export formats were requested.
func runExports(job model.Job, trial model.Trial, pdfPath, labelsPath, xlsxPath, dxfPath string) error {
	log := logging.Get()

	exports := []struct {
		path string
		kind string
		fn   func(string, model.Job, model.Trial) error
	}{
		{pdfPath, "pdf", export.ExportPDF},
		{labelsPath, "labels", export.ExportLabels},
		{xlsxPath, "xlsx", export.ExportExcel},
		{dxfPath, "dxf", export.ExportDXF},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path, job, trial); err != nil {
			return fmt.Errorf("%s export: %w", e.kind, err)
		}
		log.Info().Str("path", e.path).Str("format", e.kind).Msg("export written")
	}
	return nil
}
