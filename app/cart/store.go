package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
)

const uninitialised = "cart: Store used before it was created with cart.New"

// Store owns the cart of one session. Dispatches are serialised, and every
// read sees the state left by the last completed dispatch.
//
// A nil *Store is a programming error and panics on use.
type Store struct {
	mu    sync.RWMutex
	state State
}

func New() *Store {
	return &Store{}
}

func (s *Store) must() {
	if s == nil {
		panic(uninitialised)
	}
}

// Dispatch applies cmd and returns the resulting state.
func (s *Store) Dispatch(cmd Command) State {
	s.must()
	s.mu.Lock()
	s.state = Reduce(s.state, cmd)
	next := s.state
	s.mu.Unlock()

	metrics.CartCommands.WithLabelValues(cmd.Name()).Inc()
	return next
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.must()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) AddItem(item models.MenuItem, quantity int) State {
	return s.Dispatch(Add{Item: item, Quantity: quantity})
}

func (s *Store) Increment(id int) State { return s.Dispatch(Increment{Key: Key(id)}) }
func (s *Store) Decrement(id int) State { return s.Dispatch(Decrement{Key: Key(id)}) }
func (s *Store) Remove(id int) State    { return s.Dispatch(Remove{Key: Key(id)}) }
func (s *Store) Clear() State           { return s.Dispatch(Clear{}) }

// Settle removes the ordered quantities, keeping anything added since.
func (s *Store) Settle(items []models.OrderItem) State { return s.Dispatch(Settle{Items: items}) }

func (s *Store) Lines() []Line                { return s.State().Lines() }
func (s *Store) TotalQuantity() int           { return s.State().TotalQuantity() }
func (s *Store) TotalPrice() decimal.Decimal  { return s.State().TotalPrice() }
func (s *Store) Snapshot() []models.OrderItem { return s.State().Snapshot() }
func (s *Store) Empty() bool                  { return s.State().Len() == 0 }

type ctxKey struct{}

// WithContext returns a copy of ctx carrying s.
func WithContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the Store installed by WithContext. It panics when
// none was installed.
func FromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(ctxKey{}).(*Store)
	if s == nil {
		panic("cart: no Store in context; wrap the handler with the session middleware")
	}
	return s
}

// Registry keeps one Store per session id.
type Registry struct {
	now func() time.Time

	mu     sync.Mutex
	stores map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
	inUse    int
}

func NewRegistry() *Registry {
	return &Registry{now: time.Now, stores: map[string]*entry{}}
}

// Get returns the session's Store, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touch(sessionID).store
}

// Acquire is Get for the length of a request: Expire leaves the cart alone
// until release is called.
func (r *Registry) Acquire(sessionID string) (s *Store, release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.touch(sessionID)
	e.inUse++

	var once sync.Once
	return e.store, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.inUse--
			e.lastSeen = r.now()
		})
	}
}

func (r *Registry) touch(sessionID string) *entry {
	e, ok := r.stores[sessionID]
	if !ok {
		e = &entry{store: New()}
		r.stores[sessionID] = e
	}
	e.lastSeen = r.now()
	return e
}

// Drop forgets the session's cart.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, sessionID)
}

// Expire drops carts not used for idle and returns how many went. Carts
// held through Acquire are kept.
func (r *Registry) Expire(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff, n := r.now().Add(-idle), 0
	for id, e := range r.stores {
		if e.inUse == 0 && e.lastSeen.Before(cutoff) {
			delete(r.stores, id)
			n++
		}
	}
	return n
}

// Len is the number of live carts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
