package dashboard

import (
	"context"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZapTelemetry writes events to a structured logger at debug level.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry wraps logger; nil yields a no-op logger.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{logger: logger}
}

func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	t.logger.Debug("dashboard telemetry", fields...)
}

// PrometheusTelemetry counts events by name.
type PrometheusTelemetry struct {
	events *prometheus.CounterVec
}

// NewPrometheusTelemetry registers the event counter on reg.
func NewPrometheusTelemetry(reg prometheus.Registerer) (*PrometheusTelemetry, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipeline_dashboard",
		Name:      "events_total",
		Help:      "Dashboard events by name.",
	}, []string{"event"})
	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, err
		}
	}
	return &PrometheusTelemetry{events: events}, nil
}

func (t *PrometheusTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.events.WithLabelValues(event).Inc()
}

// Counter exposes the counter for an event, mainly for tests.
func (t *PrometheusTelemetry) Counter(event string) prometheus.Counter {
	return t.events.WithLabelValues(event)
}

// MultiTelemetry fans events out to several sinks.
type MultiTelemetry []Telemetry

func (m MultiTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	for _, t := range m {
		if t != nil {
			t.Record(ctx, event, payload)
		}
	}
}
