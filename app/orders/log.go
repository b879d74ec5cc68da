// Package orders is the persisted order log.
//
// The whole log lives as one JSON array under the "orders" key of a
// kv.Store. Orders are appended in submission order; display code decides
// its own ordering (see Recent). Every read-modify-write cycle holds the
// Log's mutex, so one Log must own the key within a process.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/collection"
	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
)

// Key is the storage key of the log.
const Key = "orders"

var (
	ErrInvalidOrder  = errors.New("orders: invalid order")
	ErrDuplicateID   = errors.New("orders: duplicate order id")
	ErrInvalidStatus = errors.New("orders: invalid status")
	ErrNotFound      = errors.New("orders: order not found")
)

// Log reads and writes the order log.
type Log struct {
	store  kv.Store
	events *event.Bus
	now    func() time.Time
	intn   func(n int) int

	mu sync.Mutex
}

// Option configures a Log.
type Option func(*Log)

// WithEvents fires status and clear events on bus.
func WithEvents(bus *event.Bus) Option {
	return func(l *Log) { l.events = bus }
}

// WithClock replaces time.Now for ids and createdAt.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithRand replaces the random source used for id suffixes. intn must
// return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(l *Log) { l.intn = intn }
}

// New returns a Log backed by store.
func New(store kv.Store, opts ...Option) *Log {
	if store == nil {
		panic("orders: nil kv.Store")
	}
	l := &Log{store: store, now: time.Now, intn: rand.IntN}
	for _, o := range opts {
		o(l)
	}
	return l
}

// load returns the stored orders. A missing key or an unparsable payload
// yields an empty log; only storage failures are returned.
func (l *Log) load(ctx context.Context) ([]models.Order, error) {
	raw, err := l.store.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orders: read log: %w", err)
	}

	var all []models.Order
	if err := json.Unmarshal(raw, &all); err != nil || all == nil {
		if err != nil {
			logger.WithCtx(ctx).Warn("order log unreadable, treating as empty", "error", err)
		}
		return []models.Order{}, nil
	}
	for i := range all {
		all[i].Normalize()
	}
	return all, nil
}

func (l *Log) write(ctx context.Context, all []models.Order) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("orders: encode log: %w", err)
	}
	if err := l.store.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("orders: write log: %w", err)
	}
	return nil
}

// List returns every order in storage order, oldest first. Storage
// failures degrade to an empty list.
func (l *Log) List(ctx context.Context) []models.Order {
	all, err := l.load(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("order log unavailable", "error", err)
		return []models.Order{}
	}
	return all
}

// Recent returns every order, newest first.
func (l *Log) Recent(ctx context.Context) []models.Order {
	return collection.Reverse(l.List(ctx))
}

// Find returns the order with id.
func (l *Log) Find(ctx context.Context, id string) (models.Order, error) {
	o, ok := collection.First(l.List(ctx), func(o models.Order) bool { return o.ID == id })
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return o, nil
}

// GenerateID returns an id not present in the current log.
func (l *Log) GenerateID(ctx context.Context) (string, error) {
	all, err := l.load(ctx)
	if err != nil {
		return "", err
	}
	return l.uniqueID(all), nil
}

// Save validates o, fills its defaults, appends it and persists the log in
// one write. It returns the order as stored.
func (l *Log) Save(ctx context.Context, o models.Order) (models.Order, error) {
	if err := validate(o); err != nil {
		return models.Order{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	if o.ID == "" {
		o.ID = l.uniqueID(all)
	} else if indexOf(all, o.ID) >= 0 {
		return models.Order{}, fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = models.NewTimestamp(l.now())
	}
	if o.Status == "" {
		o.Status = models.StatusAwaiting
	}

	if err := l.write(ctx, append(all, o)); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.WithLabelValues(string(o.Payment)).Inc()
	metrics.OrderRevenue.Add(o.Total.InexactFloat64())
	logger.WithCtx(ctx).Info("order saved", "order_id", o.ID, "total", o.Total.String(), "items", len(o.Items))
	return o, nil
}

// UpdateStatus replaces the status of order id and leaves every other
// field alone. An unknown id writes nothing and reports updated=false.
func (l *Log) UpdateStatus(ctx context.Context, id string, status models.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return false, nil
	}

	all[i].Status = status
	if err := l.write(ctx, all); err != nil {
		return false, err
	}
	l.statusChanged(ctx, all[i])
	return true, nil
}

// Advance moves order id one step forward: awaiting → preparing →
// completed. A completed order stays completed.
func (l *Log) Advance(ctx context.Context, id string) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return models.Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := all[i].Status.Next()
	if next == all[i].Status {
		return all[i], nil
	}
	all[i].Status = next
	if err := l.write(ctx, all); err != nil {
		return models.Order{}, err
	}
	l.statusChanged(ctx, all[i])
	return all[i], nil
}

// Clear deletes the whole log.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("orders: clear log: %w", err)
	}
	logger.WithCtx(ctx).Info("order log cleared")
	l.events.Fire(event.OrdersCleared, nil)
	return nil
}

func (l *Log) statusChanged(ctx context.Context, o models.Order) {
	metrics.StatusChanges.WithLabelValues(string(o.Status)).Inc()
	logger.WithCtx(ctx).Info("order status changed", "order_id", o.ID, "status", o.Status)
	l.events.Fire(event.OrderStatusChanged, o)
}

func indexOf(all []models.Order, id string) int {
	for i, o := range all {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func validate(o models.Order) error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrInvalidOrder, it.ID, it.Quantity)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative price", ErrInvalidOrder, it.ID)
		}
	}
	if sum := o.ItemsTotal(); !sum.Equal(o.Total) {
		return fmt.Errorf("%w: total %s does not match items %s", ErrInvalidOrder, o.Total, sum)
	}
	if !o.Payment.Valid() {
		return fmt.Errorf("%w: payment %q", ErrInvalidOrder, o.Payment)
	}
	if o.Status != "" && !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	return nil
}
