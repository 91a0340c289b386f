// Package app orchestrates the analysis core over whole datasets:
// per-column type detection and profiling, selection-based chart
// suggestions, and chart-choice validation for the plotting
// collaborator.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"chartscout/domain/chart"
	"chartscout/domain/column"
	"chartscout/internal"
	"chartscout/internal/config"
	"chartscout/internal/detect"
	"chartscout/internal/errors"
	"chartscout/internal/profile"
	"chartscout/internal/suggest"

	"golang.org/x/sync/errgroup"
)

// Analysis is the dataset-level result handed to the presentation
// collaborator: every column's type and profile plus aggregate counts.
type Analysis struct {
	DatasetName string                      `json:"dataset_name"`
	RowCount    int                         `json:"row_count"`
	ColumnCount int                         `json:"column_count"`
	Columns     []column.Info               `json:"columns"`
	TypeCounts  map[column.SemanticType]int `json:"type_counts"`
}

// AnalysisService wires the detector, profiler, and suggestion engine.
// It holds no mutable state; every call recomputes from its inputs.
type AnalysisService struct {
	detector *detect.Detector
	profiler *profile.Profiler
	engine   *suggest.Engine
	log      *internal.Logger
}

// NewAnalysisService builds the service from application configuration.
func NewAnalysisService(cfg *config.Config, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	detectorCfg := cfg.DetectorConfig()
	return &AnalysisService{
		detector: detect.NewDetector(detectorCfg),
		profiler: profile.NewProfiler(detectorCfg),
		engine:   suggest.NewEngine(cfg.SuggestConfig()),
		log:      logger,
	}
}

// AnalyzeColumn detects a column's semantic type and computes its
// profile. A column that fails every parse degrades to type Other with
// a minimal profile; it never fails.
func (s *AnalysisService) AnalyzeColumn(col column.Column) column.Info {
	t := s.detector.Detect(col.Values)
	return column.Info{
		Name:    col.Name,
		Type:    t,
		Profile: s.profiler.Profile(col.Values, t),
	}
}

// AnalyzeDataset analyzes every column of the dataset. Columns are
// independent, so they are profiled concurrently.
func (s *AnalysisService) AnalyzeDataset(ctx context.Context, ds *column.Dataset) (*Analysis, error) {
	infos := make([]column.Info, len(ds.Columns))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, col := range ds.Columns {
		i, col := i, col
		g.Go(func() error {
			infos[i] = s.AnalyzeColumn(col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "dataset analysis failed")
	}

	typeCounts := make(map[column.SemanticType]int)
	for _, info := range infos {
		typeCounts[info.Type]++
	}

	s.log.Debug("analyzed dataset %s: %d columns, %d rows", ds.Name, len(ds.Columns), ds.RowCount())
	return &Analysis{
		DatasetName: ds.Name,
		RowCount:    ds.RowCount(),
		ColumnCount: len(ds.Columns),
		Columns:     infos,
		TypeCounts:  typeCounts,
	}, nil
}

// Selection resolves column names against the dataset, preserving
// order. Wrong arity or an unknown name fails with INVALID_SELECTION.
func (s *AnalysisService) Selection(ds *column.Dataset, names []string) ([]column.Info, error) {
	if len(names) < 1 || len(names) > 2 {
		return nil, errors.InvalidSelection(
			fmt.Sprintf("selection must have 1 or 2 columns, got %d", len(names)))
	}
	infos := make([]column.Info, 0, len(names))
	for _, name := range names {
		col, ok := ds.ColumnByName(name)
		if !ok {
			return nil, errors.InvalidSelection(fmt.Sprintf("column %q not in dataset", name))
		}
		infos = append(infos, s.AnalyzeColumn(col))
	}
	return infos, nil
}

// SuggestForSelection returns ranked chart suggestions for the named
// columns, in order.
func (s *AnalysisService) SuggestForSelection(ds *column.Dataset, names []string) ([]chart.Suggestion, error) {
	selection, err := s.Selection(ds, names)
	if err != nil {
		return nil, err
	}
	return s.engine.Suggest(selection)
}

// SuggestForDataset returns suggestions over the whole dataset: every
// single column and every ordered column pair is scored, and each chart
// type keeps its best score.
func (s *AnalysisService) SuggestForDataset(ctx context.Context, ds *column.Dataset) ([]chart.Suggestion, error) {
	analysis, err := s.AnalyzeDataset(ctx, ds)
	if err != nil {
		return nil, err
	}
	infos := analysis.Columns

	best := make(map[chart.Type]chart.Suggestion)
	record := func(suggestions []chart.Suggestion) {
		for _, sug := range suggestions {
			cur, ok := best[sug.Spec.Type]
			if !ok || sug.Score > cur.Score {
				best[sug.Spec.Type] = sug
			}
		}
	}

	for i := range infos {
		sugs, err := s.engine.Suggest(infos[i : i+1])
		if err != nil {
			return nil, err
		}
		record(sugs)
		for j := range infos {
			if i == j {
				continue
			}
			sugs, err := s.engine.Suggest([]column.Info{infos[i], infos[j]})
			if err != nil {
				return nil, err
			}
			record(sugs)
		}
	}

	out := make([]chart.Suggestion, 0, len(best))
	for _, sug := range best {
		out = append(out, sug)
	}
	sortSuggestions(out)
	return out, nil
}

func sortSuggestions(s []chart.Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].Spec.Priority < s[j].Spec.Priority
	})
}

// ValidateChoice checks a final chart choice against the registry so
// the plotting collaborator never re-derives compatibility rules.
func (s *AnalysisService) ValidateChoice(ds *column.Dataset, chartType string, names []string) error {
	specs := chart.Lookup(chart.Type(chartType))
	if len(specs) == 0 {
		return errors.UnknownChart(chartType)
	}
	selection, err := s.Selection(ds, names)
	if err != nil {
		return err
	}
	types := make([]column.SemanticType, len(selection))
	for i, info := range selection {
		types[i] = info.Type
	}
	if !chart.Compatible(chart.Type(chartType), types) {
		return errors.IncompatibleChart(
			fmt.Sprintf("%s does not accept columns %v with types %v", chartType, names, types))
	}
	return nil
}
