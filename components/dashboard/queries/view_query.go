package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// ErrNotReady is returned before the dashboard has rendered once.
var ErrNotReady = errors.New("dashboard: view not rendered yet")

// ViewInput is the empty request for the rendered view.
type ViewInput struct{}

type viewSource interface {
	View() dashboard.View
	Ready() bool
}

// ViewQuery returns the most recent render.
type ViewQuery struct {
	source viewSource
}

// NewViewQuery builds the query.
func NewViewQuery(source viewSource) *ViewQuery {
	return &ViewQuery{source: source}
}

var _ gocommand.Querier[ViewInput, dashboard.View] = (*ViewQuery)(nil)

// Query returns the view, or ErrNotReady before initialization.
func (q *ViewQuery) Query(context.Context, ViewInput) (dashboard.View, error) {
	if !q.source.Ready() {
		return dashboard.View{}, ErrNotReady
	}
	return q.source.View(), nil
}
