package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// CurrentDataInput is the empty request for the stored dataset.
type CurrentDataInput struct{}

type dataSource interface {
	CurrentData() dashboard.Dataset
}

// CurrentDataQuery returns a copy of the stored dataset.
type CurrentDataQuery struct {
	source dataSource
}

// NewCurrentDataQuery builds the query.
func NewCurrentDataQuery(source dataSource) *CurrentDataQuery {
	return &CurrentDataQuery{source: source}
}

var _ gocommand.Querier[CurrentDataInput, dashboard.Dataset] = (*CurrentDataQuery)(nil)

// Query returns the dataset as currently stored.
func (q *CurrentDataQuery) Query(context.Context, CurrentDataInput) (dashboard.Dataset, error) {
	return q.source.CurrentData(), nil
}
