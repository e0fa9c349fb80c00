// Package vectordb defines the vector store contract used to persist and
// query embedded chunks.
package vectordb

import (
	"context"
)

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
)

// Engine stores records in named collections and finds the records closest
// to a query vector. Search returns records by descending Score.
type Engine interface {
	Insert(ctx context.Context, collection string, records ...Record) error
	Search(ctx context.Context, vector []float64, opts ...SearchOption) ([]Record, error)
	Count(ctx context.Context, collection string) (int, error)
}
