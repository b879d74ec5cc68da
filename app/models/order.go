package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the method chosen at checkout.
type Payment string

const (
	PaymentPix  Payment = "pix"
	PaymentCash Payment = "cash"
	PaymentCard Payment = "card"
)

var paymentAliases = map[string]Payment{
	"pix":      PaymentPix,
	"cash":     PaymentCash,
	"dinheiro": PaymentCash,
	"card":     PaymentCard,
	"cartao":   PaymentCard,
	"cartão":   PaymentCard,
}

// ParsePayment accepts the canonical values and the Portuguese labels
// stored by earlier builds.
func ParsePayment(s string) (Payment, error) {
	if p, ok := paymentAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

func (p Payment) Valid() bool {
	return p == PaymentPix || p == PaymentCash || p == PaymentCard
}

func (p *Payment) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := ParsePayment(s); err == nil {
		*p = parsed
		return nil
	}
	// Unknown values survive a read so a rewrite never drops them.
	*p = Payment(s)
	return nil
}

// Status is the display progress of an order.
type Status string

const (
	StatusAwaiting  Status = "awaiting"
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
)

var statusAliases = map[string]Status{
	"awaiting":    StatusAwaiting,
	"aguardando":  StatusAwaiting,
	"lido":        StatusAwaiting,
	"novo":        StatusAwaiting,
	"recebido":    StatusAwaiting,
	"pendente":    StatusAwaiting,
	"preparing":   StatusPreparing,
	"preparo":     StatusPreparing,
	"preparando":  StatusPreparing,
	"processo":    StatusPreparing,
	"em processo": StatusPreparing,
	"andamento":   StatusPreparing,
	"completed":   StatusCompleted,
	"finalizado":  StatusCompleted,
	"pronto":      StatusCompleted,
	"concluido":   StatusCompleted,
	"concluído":   StatusCompleted,
	"entregue":    StatusCompleted,
}

// ParseStatus maps s, or one of its legacy labels, to a Status.
func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// NormalizeStatus is ParseStatus with missing or unknown values read as
// awaiting.
func NormalizeStatus(s string) Status {
	if st, ok := ParseStatus(s); ok {
		return st
	}
	return StatusAwaiting
}

// Next returns the following step; completed stays completed.
func (s Status) Next() Status {
	switch s {
	case StatusAwaiting:
		return StatusPreparing
	default:
		return StatusCompleted
	}
}

// Label is the Portuguese display label.
func (s Status) Label() string {
	switch s {
	case StatusPreparing:
		return "Preparando"
	case StatusCompleted:
		return "Finalizado"
	default:
		return "Aguardando"
	}
}

func (s Status) Valid() bool {
	return s == StatusAwaiting || s == StatusPreparing || s == StatusCompleted
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if string(b) != "null" {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	*s = NormalizeStatus(raw)
	return nil
}

// Timestamp is persisted as Unix milliseconds. Reads also accept RFC 3339
// strings and numeric strings.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*t = Timestamp{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			*t = Timestamp{Time: parsed}
			return nil
		}
	}
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	*t = Timestamp{Time: time.UnixMilli(int64(ms))}
	return nil
}

// OrderItem is the frozen snapshot of a cart line taken at checkout.
type OrderItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a submitted purchase. Only Status changes after creation.
type Order struct {
	ID        string          `json:"id"`
	CreatedAt Timestamp       `json:"createdAt"`
	Customer  string          `json:"customer"`
	Payment   Payment         `json:"payment"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	Note      string          `json:"note,omitempty"`
	Status    Status          `json:"status"`
}

// Normalize applies the read-time defaults for records written by earlier
// builds: a missing status reads as awaiting.
func (o *Order) Normalize() {
	if !o.Status.Valid() {
		o.Status = NormalizeStatus(string(o.Status))
	}
}

// ItemsTotal sums the item subtotals.
func (o Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// Quantity is the number of units across all items.
func (o Order) Quantity() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
