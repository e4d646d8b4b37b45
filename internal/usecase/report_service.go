package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/team"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/cache"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/metrics"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

// MVPContendersSize is how many MVP scores a report keeps for auditing.
const MVPContendersSize = 5

// TableLoader parses an uploaded file into a table.
type TableLoader interface {
	Load(filename string, data []byte) (*sheet.Table, error)
}

type GenerateInput struct {
	Filename string
	Data     []byte
	// Policy overrides the service default when set.
	Policy string
}

// Report holds every derived view of one sheet.
type Report struct {
	Source      string
	Policy      awards.Policy
	Rows        int
	Standings   awards.Standings
	AllStars    awards.AllStars
	MVP         *awards.MVPScore
	Contenders  []awards.MVPScore
	Warnings    []string
	GeneratedAt time.Time
}

func (r Report) HasMVP() bool {
	return r.MVP != nil
}

type BatchResult struct {
	Source string
	Report Report
	Err    error
}

type ReportServiceOptions struct {
	Columns       sheet.Columns
	DefaultPolicy awards.Policy
	BatchWorkers  int
	// Tables caches parsed sheets by content hash. Nil disables caching.
	Tables  *cache.Store[*sheet.Table]
	Metrics *metrics.Reports
	Logger  *logging.Logger
}

type ReportService struct {
	loader        TableLoader
	columns       sheet.Columns
	defaultPolicy awards.Policy
	batchWorkers  int
	tables        *cache.Store[*sheet.Table]
	metrics       *metrics.Reports
	logger        *logging.Logger
	now           func() time.Time
}

func NewReportService(loader TableLoader, opts ReportServiceOptions) *ReportService {
	columns := opts.Columns.Merge(sheet.DefaultColumns())
	policy := opts.DefaultPolicy
	if policy == "" {
		policy = awards.DefaultPolicy
	}
	workers := opts.BatchWorkers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &ReportService{
		loader:        loader,
		columns:       columns,
		defaultPolicy: policy,
		batchWorkers:  workers,
		tables:        opts.Tables,
		metrics:       opts.Metrics,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *ReportService) DefaultPolicy() awards.Policy {
	return s.defaultPolicy
}

func (s *ReportService) Generate(ctx context.Context, input GenerateInput) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Generate")
	defer span.End()

	start := s.now()
	filename := strings.TrimSpace(input.Filename)
	span.SetAttributes(attribute.String("report.source", filepath.Base(filename)))

	report, err := s.generate(ctx, filename, input)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveFailure(failureReason(err))
		s.logger.WarnContext(ctx, "report generation failed", "file", filename, "error", err)
		return Report{}, err
	}

	s.metrics.ObserveReport(string(report.Policy), report.Rows, s.now().Sub(start))
	for _, gap := range report.AllStars.Gaps {
		s.metrics.ObserveRoleGap(gap.Role.String())
	}
	s.logger.InfoContext(ctx, "report generated",
		"file", report.Source,
		"policy", report.Policy,
		"rows", report.Rows,
		"warnings", len(report.Warnings),
	)
	return report, nil
}

func (s *ReportService) generate(ctx context.Context, filename string, input GenerateInput) (Report, error) {
	if filename == "" {
		return Report{}, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if len(input.Data) == 0 {
		return Report{}, fmt.Errorf("%w: file %s is empty", ErrInvalidInput, filename)
	}

	policy := s.defaultPolicy
	if strings.TrimSpace(input.Policy) != "" {
		parsed, err := awards.ParsePolicy(input.Policy)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		policy = parsed
	}
	strategy, err := awards.NewStrategy(policy)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	table, err := s.loadTable(ctx, filename, input.Data)
	if err != nil {
		return Report{}, err
	}

	report := s.derive(table, strategy)
	report.Source = filepath.Base(filename)
	report.GeneratedAt = s.now().UTC()
	return report, nil
}

func (s *ReportService) loadTable(ctx context.Context, filename string, data []byte) (*sheet.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.loadTable")
	defer span.End()

	load := func(context.Context) (*sheet.Table, error) {
		return s.loader.Load(filename, data)
	}
	if s.tables == nil {
		return load(ctx)
	}

	key := tableCacheKey(filename, data)
	if table, ok := s.tables.Get(ctx, key); ok {
		s.metrics.ObserveCacheHit()
		return table, nil
	}
	return s.tables.GetOrLoad(ctx, key, load)
}

// derive runs the three selectors in parallel over a read-only table.
func (s *ReportService) derive(table *sheet.Table, strategy awards.Strategy) Report {
	teams := team.FromTable(table, s.columns)
	players := player.FromTable(table, s.columns)

	var (
		standings awards.Standings
		allStars  awards.AllStars
		ranked    []awards.MVPScore
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		standings = awards.RankStandings(teams, awards.TopStandingsSize)
	})
	wg.Go(func() {
		allStars = awards.SelectAllStars(players, strategy)
	})
	wg.Go(func() {
		ranked = awards.RankMVP(players, strategy)
	})
	wg.Wait()

	report := Report{
		Policy:     strategy.Policy(),
		Rows:       table.Len(),
		Standings:  standings,
		AllStars:   allStars,
		Contenders: ranked[:min(MVPContendersSize, len(ranked))],
	}
	if len(ranked) > 0 {
		mvp := ranked[0]
		report.MVP = &mvp
	}
	report.Warnings = s.warnings(table, report)
	return report
}

func (s *ReportService) warnings(table *sheet.Table, report Report) []string {
	var out []string
	for _, name := range []string{s.columns.TeamName, s.columns.Standing, s.columns.PlayerName, s.columns.Role} {
		if !table.HasColumn(name) {
			out = append(out, fmt.Sprintf("column %q not found", name))
		}
	}

	switch {
	case report.Standings.Eligible == 0:
		out = append(out, "no eligible teams: standings are empty")
	case !report.Standings.HasChampion():
		out = append(out, "no team with standing 1: no champion")
	}
	for _, gap := range report.AllStars.Gaps {
		out = append(out, gap.String())
	}
	if !report.HasMVP() {
		out = append(out, "no eligible players: no MVP")
	}
	return out
}

// GenerateBatch builds one report per input on a bounded worker pool. Results
// keep input order and a failed input does not stop the others.
func (s *ReportService) GenerateBatch(ctx context.Context, inputs []GenerateInput) ([]BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.GenerateBatch")
	defer span.End()

	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(s.batchWorkers, len(inputs)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, input := range inputs {
		results[i].Source = filepath.Base(strings.TrimSpace(input.Filename))
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			report, err := s.Generate(ctx, input)
			results[i].Report = report
			results[i].Err = err
		}); err != nil {
			workers.Done()
			results[i].Err = fmt.Errorf("submit %s: %w", results[i].Source, err)
		}
	}
	workers.Wait()

	return results, nil
}

func tableCacheKey(filename string, data []byte) string {
	sum := sha256.Sum256(data)
	return strings.ToLower(filepath.Ext(filename)) + ":" + hex.EncodeToString(sum[:])
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrMalformedTable):
		return "malformed"
	default:
		return "internal"
	}
}
