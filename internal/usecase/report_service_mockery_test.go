package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/cache"
	usecasemock "github.com/riskibarqy/mpl-analyzer/internal/mocks/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var seasonHeader = []string{
	"Team", "Rank ", "Player", "Team", "Role",
	"Total Kills", "Total Assists", "Total Deaths", "Kill Participation", "KDA Ratio",
}

func seasonTable() *sheet.Table {
	return sheet.NewTable(seasonHeader, [][]string{
		{"Alpha", "1", "Ace", "Alpha", "EXP", "50", "60", "20", "0.6", "5.5"},
		{"Bravo", "2", "Blaze", "Bravo", "exp ", "40", "70", "10", "50%", "11"},
		{"Charlie", "3", "Cobra", "Alpha", "Jungle", "80", "90", "30", "0.7", "5.7"},
		{"Delta", "4", "Drift", "Charlie", "Mid", "90", "80", "25", "0.65", "6.8"},
		{"Echo", "5", "Ember", "Delta", "Gold", "100", "50", "20", "0.72", "7.5"},
		{"Foxtrot", "6", "Frost", "Echo", "Roam", "10", "200", "40", "0.8", "5.25"},
		{"Golf", "7", "", "", "", "", "", "", "", ""},
	})
}

func TestReportService_Generate_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "/tmp/uploads/season.xlsx", mock.Anything).Return(seasonTable(), nil).Once()

	service := NewReportService(loader, ReportServiceOptions{BatchWorkers: 2})
	report, err := service.Generate(context.Background(), GenerateInput{
		Filename: " /tmp/uploads/season.xlsx ",
		Data:     []byte("xlsx"),
	})
	require.NoError(t, err)

	assert.Equal(t, "season.xlsx", report.Source)
	assert.Equal(t, awards.PolicyWeighted, report.Policy)
	assert.Equal(t, 7, report.Rows)
	assert.False(t, report.GeneratedAt.IsZero())

	require.Len(t, report.Standings.Top, awards.TopStandingsSize)
	assert.Equal(t, "Alpha", report.Standings.Top[0].Name)
	assert.Equal(t, "Foxtrot", report.Standings.Top[5].Name)
	require.True(t, report.Standings.HasChampion())
	assert.Equal(t, "Alpha", report.Standings.Champion.Name)

	require.NotEmpty(t, report.AllStars.First)
	assert.Equal(t, player.RoleEXP, report.AllStars.First[0].Role)
	assert.Equal(t, "Blaze", report.AllStars.First[0].Candidate.Player.Name)
	require.Len(t, report.AllStars.Second, 1)
	assert.Equal(t, "Ace", report.AllStars.Second[0].Candidate.Player.Name)

	require.True(t, report.HasMVP())
	assert.Equal(t, "Ember", report.MVP.Player.Name)
	assert.InDelta(t, 540.0, report.MVP.Score, 1e-9)
	assert.Len(t, report.Contenders, MVPContendersSize)

	assert.Contains(t, report.Warnings, "only one eligible Roam player: second all-star slot is empty")
	assert.NotContains(t, report.Warnings, "no eligible players: no MVP")
}

func TestReportService_Generate_PolicyOverrideUsingMockery(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "season.csv", mock.Anything).Return(seasonTable(), nil).Once()

	service := NewReportService(loader, ReportServiceOptions{DefaultPolicy: awards.PolicyWeighted})
	report, err := service.Generate(context.Background(), GenerateInput{
		Filename: "season.csv",
		Data:     []byte("csv"),
		Policy:   "SIMPLE",
	})
	require.NoError(t, err)
	assert.Equal(t, awards.PolicySimple, report.Policy)
	assert.Equal(t, awards.PolicySimple, report.AllStars.Policy)
	assert.Equal(t, "Ember", report.MVP.Player.Name)
}

func TestReportService_Generate_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input GenerateInput
	}{
		{name: "missing filename", input: GenerateInput{Data: []byte("x")}},
		{name: "empty file", input: GenerateInput{Filename: "season.xlsx"}},
		{name: "unknown policy", input: GenerateInput{Filename: "season.xlsx", Data: []byte("x"), Policy: "vibes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader := usecasemock.NewTableLoader(t)
			service := NewReportService(loader, ReportServiceOptions{})

			_, err := service.Generate(context.Background(), tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestReportService_Generate_LoaderErrorUsingMockery(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "season.pdf", mock.Anything).Return(nil, ErrUnsupportedFormat).Once()

	service := NewReportService(loader, ReportServiceOptions{})
	_, err := service.Generate(context.Background(), GenerateInput{Filename: "season.pdf", Data: []byte("%PDF")})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	assert.Equal(t, "unsupported_format", failureReason(err))
}

func TestReportService_Generate_CachesParsedTableUsingMockery(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "season.xlsx", mock.Anything).Return(seasonTable(), nil).Once()

	service := NewReportService(loader, ReportServiceOptions{
		Tables: cache.NewStore[*sheet.Table](0, 4),
	})
	input := GenerateInput{Filename: "season.xlsx", Data: []byte("same bytes")}

	first, err := service.Generate(context.Background(), input)
	require.NoError(t, err)

	input.Policy = string(awards.PolicySimple)
	second, err := service.Generate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, awards.PolicyWeighted, first.Policy)
	assert.Equal(t, awards.PolicySimple, second.Policy)
}

func TestReportService_Generate_NoResultWarningsUsingMockery(t *testing.T) {
	t.Parallel()

	table := sheet.NewTable([]string{"Team", "Rank", "Player", "Role"}, [][]string{
		{"Alpha", "2", "", ""},
		{"Bravo", "n/a", "", ""},
		{"", "", "Ace", "Support"},
	})
	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "thin.csv", mock.Anything).Return(table, nil).Once()

	service := NewReportService(loader, ReportServiceOptions{})
	report, err := service.Generate(context.Background(), GenerateInput{Filename: "thin.csv", Data: []byte("csv")})
	require.NoError(t, err)

	assert.Len(t, report.Standings.Top, 1)
	assert.False(t, report.Standings.HasChampion())
	assert.False(t, report.HasMVP())
	assert.Empty(t, report.AllStars.First)
	assert.Len(t, report.AllStars.Gaps, len(player.Roles))
	assert.Contains(t, report.Warnings, "no team with standing 1: no champion")
	assert.Contains(t, report.Warnings, "no eligible players: no MVP")
	assert.Contains(t, report.Warnings, "no eligible EXP players: first and second all-star slots are empty")
}

func TestReportService_Generate_NoTeamsWarnsMissingColumnsUsingMockery(t *testing.T) {
	t.Parallel()

	table := sheet.NewTable([]string{"Name", "Score"}, [][]string{{"x", "1"}})
	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "other.csv", mock.Anything).Return(table, nil).Once()

	service := NewReportService(loader, ReportServiceOptions{})
	report, err := service.Generate(context.Background(), GenerateInput{Filename: "other.csv", Data: []byte("csv")})
	require.NoError(t, err)

	assert.Contains(t, report.Warnings, `column "Team" not found`)
	assert.Contains(t, report.Warnings, "no eligible teams: standings are empty")
}

func TestReportService_GenerateBatch_KeepsInputOrderUsingMockery(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	loader.On("Load", "a.xlsx", mock.Anything).Return(seasonTable(), nil).Once()
	loader.On("Load", "b.txt", mock.Anything).Return(nil, ErrUnsupportedFormat).Once()
	loader.On("Load", "c.csv", mock.Anything).Return(seasonTable(), nil).Once()

	service := NewReportService(loader, ReportServiceOptions{BatchWorkers: 2})
	results, err := service.GenerateBatch(context.Background(), []GenerateInput{
		{Filename: "a.xlsx", Data: []byte("a")},
		{Filename: "b.txt", Data: []byte("b")},
		{Filename: "c.csv", Data: []byte("c")},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	sources := make([]string, 0, len(results))
	for _, result := range results {
		sources = append(sources, result.Source)
	}
	assert.True(t, slices.Equal([]string{"a.xlsx", "b.txt", "c.csv"}, sources))
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrUnsupportedFormat)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "c.csv", results[2].Report.Source)
}

func TestReportService_GenerateBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	loader := usecasemock.NewTableLoader(t)
	service := NewReportService(loader, ReportServiceOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := service.GenerateBatch(ctx, []GenerateInput{{Filename: "a.xlsx", Data: []byte("a")}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}
