package queries

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

type stubSource struct {
	calls int
	ready bool
}

func (s *stubSource) CurrentData() dashboard.Dataset {
	s.calls++
	return dashboard.Dataset{SummaryStats: dashboard.SummaryStats{dashboard.StatActiveInvestments: 3}}
}

func (s *stubSource) View() dashboard.View {
	s.calls++
	return dashboard.View{Metric: dashboard.MetricValue}
}

func (s *stubSource) Ready() bool { return s.ready }

func TestCurrentDataQuery(t *testing.T) {
	source := &stubSource{}
	query := NewCurrentDataQuery(source)
	data, err := query.Query(context.Background(), CurrentDataInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if data.SummaryStats[dashboard.StatActiveInvestments] != 3 {
		t.Fatalf("unexpected dataset: %+v", data)
	}
	if source.calls != 1 {
		t.Fatalf("expected 1 call, got %d", source.calls)
	}
}

func TestViewQuery(t *testing.T) {
	source := &stubSource{}
	query := NewViewQuery(source)
	if _, err := query.Query(context.Background(), ViewInput{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	source.ready = true
	view, err := query.Query(context.Background(), ViewInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if view.Metric != dashboard.MetricValue {
		t.Fatalf("unexpected metric %q", view.Metric)
	}
}
