package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsPingInterval = 30 * time.Second

// BroadcastHook pushes redraw events to page clients. Each subscriber holds at
// most one pending event: a redraw arriving before the client read the
// previous one is merged into it, so a slow client still learns every view it
// has to reload.
type BroadcastHook struct {
	mu     sync.Mutex
	subs   map[int]chan RedrawEvent
	next   int
	closed bool
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan RedrawEvent),
	}
}

// ViewRedrawn satisfies RedrawHook. It never blocks on subscribers.
func (h *BroadcastHook) ViewRedrawn(_ context.Context, event RedrawEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
			continue
		default:
		}
		// only the reader drains ch, so after this receive there is room
		select {
		case pending := <-ch:
			ch <- mergeRedraw(pending, event)
		default:
			ch <- event
		}
	}
	return nil
}

// mergeRedraw folds next into pending: the latest reason and metric win and
// views are unioned in first-seen order.
func mergeRedraw(pending, next RedrawEvent) RedrawEvent {
	views := slices.Clone(pending.Views)
	for _, view := range next.Views {
		if !slices.Contains(views, view) {
			views = append(views, view)
		}
	}
	return RedrawEvent{Reason: next.Reason, Views: views, Metric: next.Metric}
}

// Subscribe returns a channel of redraw events and a cancel func. After Close
// the returned channel is already closed.
func (h *BroadcastHook) Subscribe() (<-chan RedrawEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan RedrawEvent, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.next
	h.next++
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close ends every subscription so streaming handlers return.
func (h *BroadcastHook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *BroadcastHook) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams redraw events as JSON,
// pinging idle clients.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	// the page never sends anything; reading surfaces the client hanging up
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-gone:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "dashboard closed"),
					time.Now().Add(time.Second))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams redraw events as Server-Sent Events named "redraw".
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()
	flusher.Flush()

	for id := 1; ; id++ {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: redraw\ndata: %s\n\n", id, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
