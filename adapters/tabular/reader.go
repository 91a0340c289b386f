// Package tabular loads tabular datasets from files: CSV and delimited
// text with delimiter sniffing, Excel workbooks, and JSON record
// arrays. It is a data-loading collaborator; the analysis core never
// touches files itself.
package tabular

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"chartscout/domain/column"
	"chartscout/internal/errors"

	"github.com/xuri/excelize/v2"
)

// FileReader reads a dataset file, choosing the parser by extension.
type FileReader struct {
	path   string
	format string
}

// NewFileReader creates a reader for the given path. Unsupported
// extensions fail immediately with UNSUPPORTED_FORMAT.
func NewFileReader(path string) (*FileReader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt", ".tsv", ".xlsx", ".xls", ".json":
		return &FileReader{path: path, format: ext}, nil
	default:
		return nil, errors.UnsupportedFormat(ext)
	}
}

// SourceName identifies the source file.
func (r *FileReader) SourceName() string {
	return filepath.Base(r.path)
}

// Read loads the full dataset into memory.
func (r *FileReader) Read(ctx context.Context) (*column.Dataset, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, errors.Wrapf(errors.DatasetError("dataset file not found"), "stat %s", r.path)
	}

	switch r.format {
	case ".csv", ".txt", ".tsv":
		return r.readDelimited()
	case ".xlsx", ".xls":
		return r.readExcel()
	case ".json":
		return r.readJSON()
	}
	return nil, errors.UnsupportedFormat(r.format)
}

// readDelimited reads CSV/TSV/TXT with the delimiter sniffed from the
// first line: tab, then semicolon, then comma; plain text files fall
// back to space.
func (r *FileReader) readDelimited() (*column.Dataset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", r.path)
	}
	defer f.Close()

	buffered := bufio.NewReader(f)
	firstLine, err := buffered.ReadString('\n')
	if err != nil && firstLine == "" {
		return nil, errors.DatasetError("empty dataset file")
	}
	delimiter := sniffDelimiter(firstLine, r.format == ".txt")

	if _, err := f.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "rewind dataset file")
	}
	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	// Accept ragged rows; fromRecords pads short ones and drops cells
	// beyond the header width.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.DatasetError("malformed delimited file"), err.Error())
	}
	if len(records) == 0 {
		return nil, errors.DatasetError("dataset file has no rows")
	}

	return fromRecords(r.SourceName(), records[0], records[1:]), nil
}

func sniffDelimiter(firstLine string, allowSpace bool) rune {
	switch {
	case strings.ContainsRune(firstLine, '\t'):
		return '\t'
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	case strings.ContainsRune(firstLine, ','):
		return ','
	case allowSpace:
		return ' '
	default:
		return ','
	}
}

// readExcel reads the first sheet of a workbook, first row as headers.
func (r *FileReader) readExcel() (*column.Dataset, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", r.path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DatasetError("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.DatasetError("workbook sheet is empty")
	}

	return fromRecords(r.SourceName(), rows[0], rows[1:]), nil
}

// readJSON reads a JSON array of flat objects (or a single object).
// Column order follows first appearance across records.
func (r *FileReader) readJSON() (*column.Dataset, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.path)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, errors.Wrap(errors.DatasetError("unsupported JSON structure"), err.Error())
		}
		records = []map[string]interface{}{single}
	}
	if len(records) == 0 {
		return nil, errors.DatasetError("JSON file has no records")
	}

	var headers []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		// Object keys carry no order in JSON; sort within each record
		// so column order is deterministic.
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				headers = append(headers, k)
			}
		}
	}

	cols := make([]column.Column, len(headers))
	for i, h := range headers {
		values := make([]column.Value, len(records))
		for j, rec := range records {
			values[j] = jsonValue(rec[h])
		}
		cols[i] = column.Column{Name: h, Values: values}
	}
	return column.NewDataset(r.SourceName(), cols), nil
}

func jsonValue(v interface{}) column.Value {
	switch val := v.(type) {
	case nil:
		return column.NewMissingValue()
	case string:
		return column.NewValue(val)
	case float64:
		return column.NewValue(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		return column.NewValue(strconv.FormatBool(val))
	default:
		return column.NewValue(fmt.Sprintf("%v", val))
	}
}

// fromRecords builds a dataset from a header row and data rows. Short
// rows are padded with missing values and cells past the header width
// are dropped, so every column keeps a consistent row count.
func fromRecords(name string, headers []string, rows [][]string) *column.Dataset {
	cols := make([]column.Column, len(headers))
	for i, h := range headers {
		values := make([]column.Value, len(rows))
		for j, row := range rows {
			if i < len(row) {
				values[j] = column.NewValue(row[i])
			} else {
				values[j] = column.NewMissingValue()
			}
		}
		header := strings.TrimSpace(h)
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}
		cols[i] = column.Column{Name: header, Values: values}
	}
	return column.NewDataset(name, cols)
}
