package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

const (
	tooltipOffsetX = 10
	tooltipOffsetY = -10
)

// StageKey identifies a stage across redraws.
type StageKey struct {
	Funnel FunnelKind `json:"funnel"`
	Order  int        `json:"order"`
}

func (k StageKey) String() string {
	return string(k.Funnel) + ":" + strconv.Itoa(k.Order)
}

// Tooltip is the hover card shown for a funnel stage.
type Tooltip struct {
	Key     StageKey `json:"key"`
	Title   string   `json:"title"`
	Lines   []string `json:"lines"`
	Caption string   `json:"caption"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
}

// NewStageTooltip builds the tooltip for stage positioned next to the pointer.
func NewStageTooltip(kind FunnelKind, stage FunnelStage, pointerX, pointerY int) Tooltip {
	return Tooltip{
		Key:   StageKey{Funnel: kind, Order: stage.Order},
		Title: stage.Name,
		Lines: []string{
			fmt.Sprintf("Count: %d", stage.Count),
			"Value: " + FormatCurrency(stage.ValueMM),
		},
		Caption: kind.Caption(),
		X:       pointerX + tooltipOffsetX,
		Y:       pointerY + tooltipOffsetY,
	}
}

// TooltipManager tracks visible tooltips by stage.
type TooltipManager struct {
	mu     sync.Mutex
	active map[StageKey]Tooltip
}

// NewTooltipManager builds an empty manager.
func NewTooltipManager() *TooltipManager {
	return &TooltipManager{active: make(map[StageKey]Tooltip)}
}

// Show displays tip, replacing any tooltip already shown for the same stage.
func (m *TooltipManager) Show(tip Tooltip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[tip.Key] = tip
}

// Hide removes the tooltip for key. Unknown keys are ignored.
func (m *TooltipManager) Hide(key StageKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.active[key]; !ok {
		return false
	}
	delete(m.active, key)
	return true
}

// Clear hides every tooltip.
func (m *TooltipManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.active)
}

// Active returns visible tooltips ordered by funnel then stage order.
func (m *TooltipManager) Active() []Tooltip {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Tooltip, 0, len(m.active))
	for _, tip := range m.active {
		out = append(out, tip)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Funnel != out[j].Key.Funnel {
			return out[i].Key.Funnel < out[j].Key.Funnel
		}
		return out[i].Key.Order < out[j].Key.Order
	})
	return out
}
