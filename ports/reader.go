package ports

import (
	"context"

	"chartscout/domain/column"
)

// DatasetReader loads a tabular dataset from an external source (file,
// database table). Readers own all I/O concerns; the analysis core only
// ever sees the in-memory dataset they produce.
type DatasetReader interface {
	// Read loads the full dataset into memory.
	Read(ctx context.Context) (*column.Dataset, error)

	// SourceName identifies the source for logging and display.
	SourceName() string
}
