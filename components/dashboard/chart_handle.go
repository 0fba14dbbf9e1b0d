package dashboard

import (
	"sync"

	"github.com/google/uuid"
)

// ChartInstance is the active chart occupying a slot.
type ChartInstance struct {
	ID         string    `json:"id"`
	Slot       ChartSlot `json:"slot"`
	Generation int       `json:"generation"`
	Spec       ChartSpec `json:"spec"`
	HTML       string    `json:"-"`
}

// DisposeFunc is called with the instance being torn down.
type DisposeFunc func(ChartInstance)

// ChartHandle owns the single active chart instance of a slot.
type ChartHandle struct {
	mu        sync.Mutex
	slot      ChartSlot
	renderer  ChartRenderer
	onDispose DisposeFunc
	active    *ChartInstance
}

// NewChartHandle builds an empty handle for slot.
func NewChartHandle(slot ChartSlot, renderer ChartRenderer, onDispose DisposeFunc) *ChartHandle {
	return &ChartHandle{slot: slot, renderer: renderer, onDispose: onDispose}
}

// Prepare renders markup for spec without touching the active instance.
func (h *ChartHandle) Prepare(spec ChartSpec) (ChartInstance, error) {
	spec.Slot = h.slot
	html, err := h.renderer.RenderChart(spec)
	if err != nil {
		return ChartInstance{}, err
	}
	return ChartInstance{Slot: h.slot, Spec: spec, HTML: html}, nil
}

// Replace renders spec and swaps it in, disposing the previous instance first.
func (h *ChartHandle) Replace(spec ChartSpec) (ChartInstance, error) {
	next, err := h.Prepare(spec)
	if err != nil {
		return ChartInstance{}, err
	}
	return h.Activate(next), nil
}

// Activate disposes the current instance and makes next the active one. The
// prepared instance gets a fresh id and the next generation number.
func (h *ChartHandle) Activate(next ChartInstance) ChartInstance {
	h.mu.Lock()
	defer h.mu.Unlock()
	generation := 1
	if h.active != nil {
		generation = h.active.Generation + 1
		h.dispose(*h.active)
		h.active = nil
	}
	next.ID = uuid.NewString()
	next.Slot = h.slot
	next.Generation = generation
	h.active = &next
	return next
}

// Active returns the active instance, if any.
func (h *ChartHandle) Active() (ChartInstance, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return ChartInstance{}, false
	}
	return *h.active, true
}

// Dispose tears down the active instance and leaves the slot empty.
func (h *ChartHandle) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return
	}
	h.dispose(*h.active)
	h.active = nil
}

func (h *ChartHandle) dispose(instance ChartInstance) {
	if h.onDispose != nil {
		h.onDispose(instance)
	}
}
