// Package sse streams order events as Server-Sent Events, for screens that
// cannot hold a WebSocket open.
//
//	b := sse.NewBroker()
//	b.Attach(bus)
//	go b.Run(ctx)
//	r.Get("/sse/orders", "sse.orders", b.ServeHTTP)
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

const (
	subscriberBuffer = 32
	heartbeat        = 25 * time.Second
)

// Stream writes events to one client.
type Stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewStream sets the event-stream headers. It returns nil when w cannot
// flush, after answering 500.
func NewStream(w http.ResponseWriter) *Stream {
	if !canFlush(w) {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return nil
	}
	rc := http.NewResponseController(w)
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return nil
	}
	return &Stream{w: w, rc: rc}
}

// canFlush follows Unwrap through middleware writers looking for a Flusher.
func canFlush(w http.ResponseWriter) bool {
	for {
		switch t := w.(type) {
		case http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = t.Unwrap()
		default:
			return false
		}
	}
}

// Send writes a named event with a JSON data line.
func (s *Stream) Send(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Comment writes a comment line, used as keepalive.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Broker fans bus events out to every connected stream.
type Broker struct {
	mu   sync.Mutex
	subs map[chan event.Event]struct{}
	done chan struct{}
	once sync.Once
}

func NewBroker() *Broker {
	return &Broker{subs: map[chan event.Event]struct{}{}, done: make(chan struct{})}
}

// Run blocks until ctx ends, then ends every open stream.
func (b *Broker) Run(ctx context.Context) {
	<-ctx.Done()
	b.once.Do(func() { close(b.done) })
}

// Attach forwards order events from bus.
func (b *Broker) Attach(bus *event.Bus) {
	bus.ListenAll(b.Publish, event.OrderPlaced, event.OrderStatusChanged, event.OrdersCleared)
}

// Publish hands e to every subscriber. Slow subscribers miss events.
func (b *Broker) Publish(e event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			logger.Warn("sse: subscriber lagging, event dropped", "event", e.Name)
		}
	}
}

// Subscribers reports how many streams are open.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker) subscribe() chan event.Event {
	ch := make(chan event.Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) unsubscribe(ch chan event.Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// ServeHTTP holds the request open and streams events until the client
// goes away.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stream := NewStream(w)
	if stream == nil {
		return
	}
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-b.done:
			return
		case e := <-ch:
			if err := stream.Send(e.Name, e); err != nil {
				return
			}
		case <-ticker.C:
			if err := stream.Comment("ping"); err != nil {
				return
			}
		}
	}
}
