package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/queries"
)

// Registrar is the part of a go-router router used to mount dashboard routes.
// router.Router values satisfy it.
type Registrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Config wires go-router with the dashboard controller, commands and hooks.
type Config struct {
	Router     Registrar
	Controller *dashboard.Controller
	API        *httpapi.Handlers
	Broadcast  *dashboard.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	View      string
	Data      string
	Metric    string
	Filters   string
	Stage     string
	WebSocket string
}

// requestContext is the subset of router.Context the handlers rely on.
type requestContext interface {
	Context() context.Context
	Body() []byte
	JSON(code int, v any) error
	Send(b []byte) error
	SetHeader(k, v string) router.Context
}

type routeHandlers struct {
	controller *dashboard.Controller
	api        *httpapi.Handlers
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register(cfg Config) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	h := &routeHandlers{controller: cfg.Controller, api: cfg.API}

	cfg.Router.Get(base+routes.HTML, wrap(h.page))
	cfg.Router.Get(base+routes.View, wrap(h.view))
	cfg.Router.Get(base+routes.Data, wrap(h.currentData))

	if cfg.API != nil {
		if cfg.API.Update != nil {
			cfg.Router.Post(base+routes.Data, wrap(h.updateData))
		}
		if cfg.API.Metric != nil {
			cfg.Router.Post(base+routes.Metric, wrap(h.selectMetric))
		}
		if cfg.API.Filters != nil {
			cfg.Router.Post(base+routes.Filters, wrap(h.changeFilters))
		}
		if cfg.API.Stage != nil {
			cfg.Router.Post(base+routes.Stage, wrap(h.stage))
		}
	}

	if cfg.Broadcast != nil {
		registerWebSocket(cfg.Router, cfg.Broadcast, base+routes.WebSocket)
	}
	return nil
}

func wrap(handler func(requestContext) error) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return handler(ctx)
	})
}

func (h *routeHandlers) page(ctx requestContext) error {
	var buf bytes.Buffer
	if err := h.controller.RenderTemplate(ctx.Context(), &buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func (h *routeHandlers) view(ctx requestContext) error {
	if !h.controller.Ready() {
		return respondError(ctx, http.StatusServiceUnavailable, queries.ErrNotReady)
	}
	return ctx.JSON(http.StatusOK, h.controller.View())
}

func (h *routeHandlers) currentData(ctx requestContext) error {
	return ctx.JSON(http.StatusOK, h.controller.CurrentData())
}

func (h *routeHandlers) updateData(ctx requestContext) error {
	patch, err := dashboard.DecodeDatasetPatch(bytes.NewReader(ctx.Body()), h.api.Validator)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Update.Execute(ctx.Context(), commands.UpdateDataInput{Patch: patch}); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"status": "updated", "sections": patch.Sections()})
}

func (h *routeHandlers) selectMetric(ctx requestContext) error {
	var payload commands.SelectMetricInput
	if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Metric.Execute(ctx.Context(), payload); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "updated", "metric": payload.Metric})
}

func (h *routeHandlers) changeFilters(ctx requestContext) error {
	var payload commands.ChangeFilterInput
	if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Filters.Execute(ctx.Context(), payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	return ctx.JSON(http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *routeHandlers) stage(ctx requestContext) error {
	var payload commands.StageInput
	if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Stage.Execute(ctx.Context(), payload); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"status": "ok", "tooltips": h.controller.Tooltips()})
}

func registerWebSocket(r Registrar, hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx requestContext, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.View == "" {
		routes.View = "/dashboard/_view"
	}
	if routes.Data == "" {
		routes.Data = "/dashboard/data"
	}
	if routes.Metric == "" {
		routes.Metric = "/dashboard/metric"
	}
	if routes.Filters == "" {
		routes.Filters = "/dashboard/filters"
	}
	if routes.Stage == "" {
		routes.Stage = "/dashboard/stage"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
