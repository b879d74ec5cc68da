package orders

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/lanchonete/app/models"
)

const (
	suffixDigits  = 3
	retryAttempts = 8
)

// FormatID renders "<last 6 digits of unix ms>-<suffix>" with suffix
// zero-padded to digits.
func FormatID(t time.Time, suffix, digits int) string {
	return fmt.Sprintf("%06d-%0*d", t.UnixMilli()%1_000_000, digits, suffix)
}

// uniqueID draws 3-digit suffixes until the id is free; after
// retryAttempts collisions it widens the suffix one digit at a time.
func (l *Log) uniqueID(all []models.Order) string {
	taken := make(map[string]struct{}, len(all))
	for _, o := range all {
		taken[o.ID] = struct{}{}
	}

	now := l.now()
	digits, bound := suffixDigits, 1000
	for {
		for attempt := 0; attempt < retryAttempts; attempt++ {
			id := FormatID(now, l.intn(bound), digits)
			if _, dup := taken[id]; !dup {
				return id
			}
		}
		digits++
		bound *= 10
	}
}
