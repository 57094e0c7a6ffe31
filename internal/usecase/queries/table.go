package queries

import (
	"context"
)

type TableReadStore interface {
	List(ctx context.Context) ([]*TableView, error)
}

type TableQueries interface {
	List(ctx context.Context) ([]*TableView, error)
}

type tableQueriesImpl struct {
	readStore TableReadStore
}

func NewTableQueries(readStore TableReadStore) TableQueries {
	return &tableQueriesImpl{readStore: readStore}
}

func (q *tableQueriesImpl) List(ctx context.Context) ([]*TableView, error) {
	return q.readStore.List(ctx)
}
