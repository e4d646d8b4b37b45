package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/mpl-analyzer/internal/config"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/infrastructure/spreadsheet"
	"github.com/riskibarqy/mpl-analyzer/internal/interfaces/render"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"github.com/urfave/cli/v2"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// NewApp builds the mpl-analyzer command line. Reports go to out, logs and
// per-file failures to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "mpl-analyzer",
		Usage:     "derive champion, all-star rosters and MVP from a league season sheet",
		Writer:    out,
		ErrWriter: errOut,
		// Exit codes are handled by the caller instead of os.Exit inside Run.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			newReportCommand(),
		},
	}
}

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "analyze one or more season sheets (.xlsx, .xlsm, .csv)",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "policy",
				Usage:   "scoring policy: simple or weighted",
				Value:   string(awards.DefaultPolicy),
				EnvVars: []string{"SCORING_POLICY"},
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: text or json",
				Value: formatText,
			},
			&cli.StringFlag{
				Name:    "columns",
				Usage:   "YAML file overriding header names",
				EnvVars: []string{"COLUMNS_FILE"},
			},
			&cli.StringFlag{
				Name:    "sheet",
				Usage:   "worksheet to read from workbooks (default: first sheet)",
				EnvVars: []string{"SHEET_NAME"},
			},
			&cli.StringFlag{
				Name:  "chart",
				Usage: "write a PNG chart of MVP contenders to this path",
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "files analyzed in parallel",
				Value:   4,
				EnvVars: []string{"BATCH_WORKERS"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug output",
			},
		},
		Action: runReport,
	}
}

func runReport(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("at least one FILE is required", 2)
	}

	policy, err := awards.ParsePolicy(c.String("policy"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	format := strings.ToLower(strings.TrimSpace(c.String("format")))
	if format != formatText && format != formatJSON {
		return cli.Exit(fmt.Sprintf("unknown format %q: valid values are text, json", format), 2)
	}
	columns, err := config.LoadColumns(c.String("columns"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	level := logging.LevelWarn
	if c.Bool("verbose") {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Output: c.App.ErrWriter})
	defer logger.Sync()

	service := usecase.NewReportService(spreadsheet.NewFactory(c.String("sheet")), usecase.ReportServiceOptions{
		Columns:       columns,
		DefaultPolicy: policy,
		BatchWorkers:  c.Int("workers"),
		Logger:        logger,
	})

	// Unreadable files keep their slot in results so output follows argument order.
	results := make([]usecase.BatchResult, len(files))
	inputs := make([]usecase.GenerateInput, 0, len(files))
	slots := make([]int, 0, len(files))
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Debug("read file failed", "file", file, "error", err)
			results[i] = usecase.BatchResult{Source: filepath.Base(file), Err: fmt.Errorf("read file: %w", err)}
			continue
		}
		inputs = append(inputs, usecase.GenerateInput{Filename: file, Data: data})
		slots = append(slots, i)
	}

	generated, err := service.GenerateBatch(c.Context, inputs)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for j, result := range generated {
		results[slots[j]] = result
	}

	var reports []usecase.Report
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", result.Source, result.Err)
			continue
		}
		reports = append(reports, result.Report)
	}

	if err := writeReports(c.App.Writer, format, reports); err != nil {
		return cli.Exit(fmt.Sprintf("write output: %v", err), 1)
	}
	if path := strings.TrimSpace(c.String("chart")); path != "" {
		writeCharts(c.App.ErrWriter, path, reports)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d reports failed", failed, len(results)), 1)
	}
	return nil
}

func writeReports(w io.Writer, format string, reports []usecase.Report) error {
	if format == formatJSON {
		switch len(reports) {
		case 0:
			return nil
		case 1:
			return render.JSON(w, reports[0])
		default:
			return render.JSONBatch(w, reports)
		}
	}

	for i, report := range reports {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := render.Text(w, report); err != nil {
			return err
		}
	}
	return nil
}

// writeCharts renders one chart per report. With several reports the source
// name is appended to the path so charts do not overwrite each other.
func writeCharts(errOut io.Writer, path string, reports []usecase.Report) {
	for _, report := range reports {
		target := path
		if len(reports) > 1 {
			target = chartPath(path, report.Source)
		}
		if err := writeChart(target, report); err != nil {
			fmt.Fprintf(errOut, "%s: chart not written: %v\n", report.Source, err)
		}
	}
}

func writeChart(path string, report usecase.Report) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := render.MVPChart(file, report); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func chartPath(path, source string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	return strings.TrimSuffix(path, filepath.Ext(path)) + "-" + stem + ext
}
