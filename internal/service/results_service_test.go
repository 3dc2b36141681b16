package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"resultsgen/internal/config"
	"resultsgen/internal/csvexport"
	"resultsgen/internal/domain"
	"resultsgen/internal/loader"
	"resultsgen/internal/namemap"
	"resultsgen/internal/port"
	"resultsgen/internal/report"
	"resultsgen/internal/service"
	"resultsgen/mocks"
)

var reportCfg = config.ReportConfig{RegionID: "BLG", ElectionID: "2023-04-02", Turnout: 40.91}

func sampleEntries() []domain.RawEntry {
	return []domain.RawEntry{
		{DisplayName: "ГЕРБ-СДС", Votes: 300, Row: 2},
		{DisplayName: "БСП", Votes: 100, Row: 3},
		{DisplayName: "ПП-ДБ", Votes: 100, Row: 4},
	}
}

// committedAt returns a pending write that commits cleanly to path.
func committedAt(path string) *mocks.MockPendingWrite {
	p := new(mocks.MockPendingWrite)
	p.On("Path").Return(path)
	p.On("Commit").Return(nil)
	return p
}

func TestResultsService_Run_WritesRankedReport(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, nil)

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return(sampleEntries(), nil)
	pending := committedAt("out.json")
	mockWriter.On("Prepare", mock.Anything, mock.MatchedBy(func(r *domain.RegionReport) bool {
		return r.TotalVotes == 500 && len(r.Parties) == 3
	})).Return(pending, nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Rows)
	assert.Empty(t, summary.Unmapped)
	assert.Equal(t, []string{"out.json"}, summary.Written)

	r := summary.Report
	assert.Equal(t, "BLG", r.RegionID)
	assert.Equal(t, "2023-04-02", r.ElectionID)
	assert.InDelta(t, 40.91, r.Turnout, 1e-9)
	assert.Equal(t, []domain.PartyResult{
		{PartyID: "gerb-sds", Votes: 300, Percentage: 60},
		{PartyID: "bsp", Votes: 100, Percentage: 20},
		{PartyID: "pp-db", Votes: 100, Percentage: 20},
	}, r.Parties)

	mockLoader.AssertExpectations(t)
	mockWriter.AssertExpectations(t)
	pending.AssertExpectations(t)
}

func TestResultsService_Run_EmptyInput(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, nil)

	mockLoader.On("Load", mock.Anything, "empty.csv").Return([]domain.RawEntry{}, nil)
	mockWriter.On("Prepare", mock.Anything, mock.Anything).Return(committedAt("out.json"), nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "empty.csv"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Report.TotalVotes)
	assert.NotNil(t, summary.Report.Parties)
	assert.Empty(t, summary.Report.Parties)
	mockWriter.AssertExpectations(t)
}

func TestResultsService_Run_LogsUnmappedNames(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, zap.New(core))

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return([]domain.RawEntry{
		{DisplayName: "БСП", Votes: 10},
		{DisplayName: "Нова Партия", Votes: 5},
	}, nil)
	mockWriter.On("Prepare", mock.Anything, mock.Anything).Return(committedAt("out.json"), nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Нова Партия"}, summary.Unmapped)
	assert.Equal(t, "нова-партия", summary.Report.Parties[1].PartyID)

	warnings := logs.FilterMessage("party name not in name map, using fallback id").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Нова Партия", warnings[0].ContextMap()["name"])
	assert.Equal(t, "нова-партия", warnings[0].ContextMap()["party_id"])
}

func TestResultsService_Run_WarnsOnDuplicateIDs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mockLoader := new(mocks.MockEntryLoader)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, nil, zap.New(core))

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return([]domain.RawEntry{
		{DisplayName: "БСП", Votes: 10},
		{DisplayName: "Българска Социалистическа Партия", Votes: 5},
	}, nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})
	require.NoError(t, err)

	// Both rows survive; nothing is reconciled.
	assert.Len(t, summary.Report.Parties, 2)
	assert.Equal(t, 1, logs.FilterMessage("party id appears on more than one row").Len())
}

func TestResultsService_Run_DryRunSkipsWriters(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, nil)

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return(sampleEntries(), nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx", DryRun: true})
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Empty(t, summary.Written)
	assert.Equal(t, int64(500), summary.Report.TotalVotes)
	mockWriter.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
}

func TestResultsService_Run_LoadErrorStopsPipeline(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, nil)

	loadErr := &domain.LoadError{Path: "in.xlsx", Row: 3, Column: 2, Err: domain.ErrNegativeVotes}
	mockLoader.On("Load", mock.Anything, "in.xlsx").Return(nil, loadErr)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})
	assert.Nil(t, summary)

	var target *domain.LoadError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 3, target.Row)
	assert.Contains(t, err.Error(), "load stage")
	mockWriter.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
}

func TestResultsService_Run_PrepareErrorLeavesOutputsUntouched(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	jsonWriter := new(mocks.MockReportWriter)
	csvWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg,
		[]port.ReportWriter{jsonWriter, csvWriter}, nil)

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return(sampleEntries(), nil)
	jsonPending := new(mocks.MockPendingWrite)
	jsonPending.On("Discard").Return(nil)
	jsonWriter.On("Prepare", mock.Anything, mock.Anything).Return(jsonPending, nil)
	writeErr := &domain.WriteError{Path: "out.csv", Err: errors.New("permission denied")}
	csvWriter.On("Prepare", mock.Anything, mock.Anything).Return(nil, writeErr)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})
	assert.Nil(t, summary)

	var target *domain.WriteError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "out.csv", target.Path)
	assert.Contains(t, err.Error(), "emit stage")

	jsonPending.AssertCalled(t, "Discard")
	jsonPending.AssertNotCalled(t, "Commit")
}

func TestResultsService_Run_CommitErrorDiscardsRemaining(t *testing.T) {
	mockLoader := new(mocks.MockEntryLoader)
	jsonWriter := new(mocks.MockReportWriter)
	csvWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg,
		[]port.ReportWriter{jsonWriter, csvWriter}, nil)

	mockLoader.On("Load", mock.Anything, "in.xlsx").Return(sampleEntries(), nil)
	jsonPending := new(mocks.MockPendingWrite)
	jsonPending.On("Path").Return("out.json")
	jsonPending.On("Commit").Return(errors.New("rename into place: read-only file system"))
	csvPending := new(mocks.MockPendingWrite)
	csvPending.On("Discard").Return(nil)
	jsonWriter.On("Prepare", mock.Anything, mock.Anything).Return(jsonPending, nil)
	csvWriter.On("Prepare", mock.Anything, mock.Anything).Return(csvPending, nil)

	_, err := svc.Run(context.Background(), service.RunInput{Path: "in.xlsx"})

	var target *domain.WriteError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "out.json", target.Path)
	csvPending.AssertCalled(t, "Discard")
	csvPending.AssertNotCalled(t, "Commit")
}

func TestResultsService_Run_CancelledBeforeWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mockLoader := new(mocks.MockEntryLoader)
	mockWriter := new(mocks.MockReportWriter)
	svc := service.NewResultsService(mockLoader, namemap.Default(), reportCfg, []port.ReportWriter{mockWriter}, nil)

	mockLoader.On("Load", mock.Anything, "in.xlsx").
		Run(func(mock.Arguments) { cancel() }).
		Return(sampleEntries(), nil)

	_, err := svc.Run(ctx, service.RunInput{Path: "in.xlsx"})
	assert.ErrorIs(t, err, context.Canceled)
	mockWriter.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
}

func TestResultsService_Run_EndToEndFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.csv")
	out := filepath.Join(dir, "updated_results.json")
	require.NoError(t, os.WriteFile(in, []byte("Партия,Гласове\nБСП,100\nГЕРБ-СДС,300\nПП-ДБ,100\n"), 0o644))

	l, err := loader.New(in, loader.Options{})
	require.NoError(t, err)
	svc := service.NewResultsService(l, namemap.Default(), reportCfg,
		[]port.ReportWriter{report.NewFileWriter(out)}, nil)

	summary, err := svc.Run(context.Background(), service.RunInput{Path: in})
	require.NoError(t, err)
	assert.Equal(t, []string{out}, summary.Written)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := report.Decode(f)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	ids := make([]string, 0, len(decoded[0].Parties))
	for _, p := range decoded[0].Parties {
		ids = append(ids, p.PartyID)
	}
	assert.Equal(t, []string{"gerb-sds", "bsp", "pp-db"}, ids)
	assert.Equal(t, int64(500), decoded[0].TotalVotes)
}

func TestResultsService_Run_FailedCSVKeepsPreviousJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.csv")
	out := filepath.Join(dir, "updated_results.json")
	csvOut := filepath.Join(dir, "missing", "results.csv")
	require.NoError(t, os.WriteFile(in, []byte("БСП,100\n"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	l, err := loader.New(in, loader.Options{})
	require.NoError(t, err)
	svc := service.NewResultsService(l, namemap.Default(), reportCfg,
		[]port.ReportWriter{report.NewFileWriter(out), csvexport.NewFileWriter(csvOut)}, nil)

	_, err = svc.Run(context.Background(), service.RunInput{Path: in})
	require.Error(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staged files left behind")
}
