package gorouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/httpapi"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestRegisterRoutes(t *testing.T) {
	mock := newMockRouter()
	controller := newController(t, &stubRenderer{})
	cfg := Config{
		Router:     mock,
		Controller: controller,
		API: &httpapi.Handlers{
			Update:  commands.NewUpdateDataCommand(controller, nil),
			Metric:  commands.NewSelectMetricCommand(controller, nil),
			Filters: commands.NewChangeFilterCommand(controller, nil),
			Stage:   commands.NewStageCommand(controller, nil),
		},
		Broadcast: dashboard.NewBroadcastHook(),
		BasePath:  "/admin",
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	for _, key := range []string{
		"GET:/admin/dashboard",
		"GET:/admin/dashboard/_view",
		"GET:/admin/dashboard/data",
		"POST:/admin/dashboard/data",
		"POST:/admin/dashboard/metric",
		"POST:/admin/dashboard/filters",
		"POST:/admin/dashboard/stage",
	} {
		if _, ok := mock.routes[key]; !ok {
			t.Fatalf("expected route %s to be registered", key)
		}
	}
	if _, ok := mock.ws["/admin/dashboard/ws"]; !ok {
		t.Fatalf("expected websocket route")
	}
}

func TestPageHandler(t *testing.T) {
	renderer := &stubRenderer{}
	h := &routeHandlers{controller: newController(t, renderer)}
	ctx := newMockContext()
	if err := h.page(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(ctx.body) == 0 {
		t.Fatalf("expected response body")
	}
	if renderer.calls == 0 {
		t.Fatalf("renderer not invoked")
	}
	if ctx.headers["Content-Type"] != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ctx.headers["Content-Type"])
	}
}

func TestSelectMetricHandler(t *testing.T) {
	controller := newController(t, &stubRenderer{})
	h := &routeHandlers{
		controller: controller,
		api:        &httpapi.Handlers{Metric: commands.NewSelectMetricCommand(controller, nil)},
	}
	ctx := newMockContext()
	ctx.request = []byte(`{"metric":"value"}`)
	if err := h.selectMetric(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
	if controller.Metric() != dashboard.MetricValue {
		t.Fatalf("expected metric to switch, got %q", controller.Metric())
	}

	ctx = newMockContext()
	ctx.request = []byte(`{"metric":"irr"}`)
	if err := h.selectMetric(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", ctx.status)
	}
}

func TestUpdateDataHandler(t *testing.T) {
	controller := newController(t, &stubRenderer{})
	h := &routeHandlers{
		controller: controller,
		api:        &httpapi.Handlers{Update: commands.NewUpdateDataCommand(controller, nil)},
	}
	ctx := newMockContext()
	ctx.request = []byte(`{"summary_stats": {"active_investments": 40}}`)
	if err := h.updateData(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.status, ctx.body)
	}
	if got := controller.CurrentData().SummaryStats[dashboard.StatActiveInvestments]; got != 40 {
		t.Fatalf("expected stats to be replaced, got %v", got)
	}

	ctx = newMockContext()
	ctx.request = []byte(`{"inward_funnel": [{"stage": "Sourced", "count": "ten", "value_mm": 1, "stage_order": 1}]}`)
	if err := h.updateData(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.status)
	}
}

func TestViewHandler(t *testing.T) {
	h := &routeHandlers{controller: newController(t, &stubRenderer{})}
	ctx := newMockContext()
	if err := h.view(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var view dashboard.View
	if err := json.Unmarshal(ctx.body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Funnels) != 2 || len(view.Charts) != 3 {
		t.Fatalf("unexpected view: %d funnels, %d charts", len(view.Funnels), len(view.Charts))
	}
}

func newController(t *testing.T, renderer dashboard.Renderer) *dashboard.Controller {
	t.Helper()
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Charts:   stubCharts{},
		Renderer: renderer,
	})
	if err := controller.Initialize(context.Background(), dashboard.DefaultDataset()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return controller
}

// --- Test helpers ---

type mockRouter struct {
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.routes[string(router.GET)+":"+path] = handler
	return nil
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.routes[string(router.POST)+":"+path] = handler
	return nil
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	m.ws[path] = handler
	return nil
}

type mockContext struct {
	ctx     context.Context
	headers map[string]string
	request []byte
	body    []byte
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
	}
}

func (m *mockContext) Context() context.Context { return m.ctx }

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return nil
}

func (m *mockContext) Send(b []byte) error {
	m.status = http.StatusOK
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.request }

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("ok"))
	}
	return "ok", nil
}

type stubCharts struct{}

func (stubCharts) RenderChart(spec dashboard.ChartSpec) (string, error) {
	return "<div>" + string(spec.Slot) + "</div>", nil
}
