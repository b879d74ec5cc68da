// Package cart holds the items a customer intends to buy.
//
// State changes only through Commands applied by the pure Reduce function;
// Store serialises dispatches for one session and exposes derived totals.
package cart

import (
	"cmp"
	"maps"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/collection"
)

// Line is one menu item plus the chosen quantity. Quantity is always ≥ 1.
type Line struct {
	models.MenuItem
	Quantity int `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Key is the cart key of a menu item id.
func Key(id int) string { return strconv.Itoa(id) }

// State is an immutable snapshot of the cart keyed by Key(item.ID).
// The zero value is an empty cart.
type State struct {
	lines map[string]Line
}

// Len is the number of distinct lines.
func (s State) Len() int { return len(s.lines) }

// Line returns the line stored under key.
func (s State) Line(key string) (Line, bool) {
	l, ok := s.lines[key]
	return l, ok
}

// Lines returns every line ordered by item id.
func (s State) Lines() []Line {
	out := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	return collection.SortBy(out, func(a, b Line) int { return cmp.Compare(a.ID, b.ID) })
}

// TotalQuantity sums the quantities of all lines.
func (s State) TotalQuantity() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice sums Quantity × Price over all lines.
func (s State) TotalPrice() decimal.Decimal {
	return collection.Reduce(s.Lines(), decimal.Zero, func(acc decimal.Decimal, l Line) decimal.Decimal {
		return acc.Add(l.Subtotal())
	})
}

// Snapshot freezes the lines into order items, ordered by item id.
func (s State) Snapshot() []models.OrderItem {
	return collection.Map(s.Lines(), func(l Line) models.OrderItem {
		return models.OrderItem{ID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	})
}

// Command is one of Add, Increment, Decrement, Remove, Clear or Settle.
type Command interface {
	Name() string
	command()
}

// Add puts Quantity units of Item in the cart; Quantity ≤ 0 means 1.
type Add struct {
	Item     models.MenuItem
	Quantity int
}

// Increment adds one unit to the line under Key.
type Increment struct{ Key string }

// Decrement takes one unit from the line under Key, dropping it at zero.
type Decrement struct{ Key string }

// Remove drops the line under Key.
type Remove struct{ Key string }

// Clear empties the cart.
type Clear struct{}

// Settle takes the quantities of Items out of the cart, dropping lines that
// reach zero. Checkout uses it so units added after the snapshot survive.
type Settle struct{ Items []models.OrderItem }

func (Add) Name() string       { return "add" }
func (Increment) Name() string { return "increment" }
func (Decrement) Name() string { return "decrement" }
func (Remove) Name() string    { return "remove" }
func (Clear) Name() string     { return "clear" }
func (Settle) Name() string    { return "settle" }

func (Add) command()       {}
func (Increment) command() {}
func (Decrement) command() {}
func (Remove) command()    {}
func (Clear) command()     {}
func (Settle) command()    {}

// Reduce applies cmd to s and returns the new state. s is never modified.
// Unknown keys are ignored.
func Reduce(s State, cmd Command) State {
	switch c := cmd.(type) {
	case Add:
		qty := c.Quantity
		if qty <= 0 {
			qty = 1
		}
		key := Key(c.Item.ID)
		if existing, ok := s.lines[key]; ok {
			qty += existing.Quantity
		}
		return s.with(key, Line{MenuItem: c.Item, Quantity: qty})

	case Increment:
		l, ok := s.lines[c.Key]
		if !ok {
			return s
		}
		l.Quantity++
		return s.with(c.Key, l)

	case Decrement:
		l, ok := s.lines[c.Key]
		if !ok {
			return s
		}
		if l.Quantity <= 1 {
			return s.without(c.Key)
		}
		l.Quantity--
		return s.with(c.Key, l)

	case Remove:
		if _, ok := s.lines[c.Key]; !ok {
			return s
		}
		return s.without(c.Key)

	case Clear:
		return State{}

	case Settle:
		next := s
		for _, it := range c.Items {
			key := Key(it.ID)
			l, ok := next.lines[key]
			if !ok {
				continue
			}
			if l.Quantity <= it.Quantity {
				next = next.without(key)
				continue
			}
			l.Quantity -= it.Quantity
			next = next.with(key, l)
		}
		return next
	}
	return s
}

func (s State) with(key string, l Line) State {
	next := make(map[string]Line, len(s.lines)+1)
	maps.Copy(next, s.lines)
	next[key] = l
	return State{lines: next}
}

func (s State) without(key string) State {
	next := maps.Clone(s.lines)
	delete(next, key)
	return State{lines: next}
}
