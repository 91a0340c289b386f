package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chartscout/adapters/tabular"
	"chartscout/domain/chart"
	"chartscout/domain/column"
	"chartscout/internal/errors"
)

type loadDatasetRequest struct {
	Path string `json:"path"`
}

type loadDatasetResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RowCount int       `json:"row_count"`
	Columns  []string  `json:"columns"`
}

type selectionRequest struct {
	Columns []string `json:"columns"`
	Chart   string   `json:"chart,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleLoadDataset loads a dataset file from a server-side path and
// registers it for analysis.
func (s *Server) handleLoadDataset(w http.ResponseWriter, r *http.Request) {
	var req loadDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		s.writeError(w, errors.InvalidInput("request must include a dataset path"))
		return
	}

	reader, err := tabular.NewFileReader(req.Path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ds, err := reader.Read(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.storeDataset(ds)
	s.log.Info("loaded dataset %s (%d columns, %d rows)", ds.Name, len(ds.Columns), ds.RowCount())

	s.writeJSON(w, http.StatusCreated, loadDatasetResponse{
		ID:       ds.ID,
		Name:     ds.Name,
		RowCount: ds.RowCount(),
		Columns:  ds.ColumnNames(),
	})
}

// handleAnalysis returns every column's semantic type and profile.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetFromRequest(w, r)
	if !ok {
		return
	}
	analysis, err := s.service.AnalyzeDataset(r.Context(), ds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

// handleSuggestions returns ranked chart suggestions for a selection,
// or for the whole dataset when no columns are given. An empty list is
// a valid response.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetFromRequest(w, r)
	if !ok {
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("malformed selection request"))
		return
	}

	var suggestions []chart.Suggestion
	var err error
	if len(req.Columns) == 0 {
		suggestions, err = s.service.SuggestForDataset(r.Context(), ds)
	} else {
		suggestions, err = s.service.SuggestForSelection(ds, req.Columns)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []chart.Suggestion{}
	}
	s.writeJSON(w, http.StatusOK, suggestions)
}

// handleValidate checks a chart choice against the registry on behalf
// of the plotting collaborator.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetFromRequest(w, r)
	if !ok {
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Chart == "" {
		s.writeError(w, errors.InvalidInput("request must include a chart type"))
		return
	}
	if err := s.service.ValidateChoice(ds, req.Chart, req.Columns); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"compatible": true})
}

// handleListCharts returns the chart catalog.
func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Type   chart.Type    `json:"type"`
		Arity  int           `json:"arity"`
		Combos []chart.Combo `json:"combos"`
	}
	specs := chart.Entries()
	out := make([]entry, len(specs))
	for i, spec := range specs {
		out[i] = entry{Type: spec.Type, Arity: spec.Arity, Combos: spec.Combos}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) datasetFromRequest(w http.ResponseWriter, r *http.Request) (*column.Dataset, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, errors.InvalidInput("malformed dataset id"))
		return nil, false
	}
	ds, ok := s.dataset(id)
	if !ok {
		s.writeError(w, errors.NotFound("dataset"))
		return nil, false
	}
	return ds, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response: %v", err)
	}
}

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case errors.CodeInvalidSelection, errors.CodeInvalidInput,
		errors.CodeIncompatibleChart, errors.CodeUnsupportedFormat:
		return http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeUnknownChart:
		return http.StatusNotFound
	case errors.CodeDatasetError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusForCode(code), errorResponse{Code: code, Message: err.Error()})
}
