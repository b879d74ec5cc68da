package orders_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/orders"
)

func TestFormatID(t *testing.T) {
	ts := time.UnixMilli(1717000123456)
	assert.Equal(t, "123456-007", orders.FormatID(ts, 7, 3))
	assert.Equal(t, "123456-0042", orders.FormatID(ts, 42, 4))

	small := time.UnixMilli(1_000_001)
	assert.Equal(t, "000001-999", orders.FormatID(small, 999, 3))
}

func TestGenerateIDShape(t *testing.T) {
	log, _ := newLog(t)
	id, err := log.GenerateID(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}-\d{3}$`), id)
}

// sequence returns the given suffixes in order, repeating the last one.
func sequence(vals ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := vals[min(i, len(vals)-1)]
		i++
		return v % n
	}
}

func TestCollisionRegenerates(t *testing.T) {
	log, _ := newLog(t, orders.WithRand(sequence(5, 5, 6)))
	ctx := context.Background()

	first, err := log.Save(ctx, sampleOrder("Ana"))
	require.NoError(t, err)
	assert.Equal(t, "123456-005", first.ID)

	second, err := log.Save(ctx, sampleOrder("Bruno"))
	require.NoError(t, err)
	assert.Equal(t, "123456-006", second.ID)
}

func TestCollisionWidensSuffix(t *testing.T) {
	log, _ := newLog(t, orders.WithRand(sequence(5)))
	ctx := context.Background()

	first, err := log.Save(ctx, sampleOrder("Ana"))
	require.NoError(t, err)
	assert.Equal(t, "123456-005", first.ID)

	second, err := log.Save(ctx, sampleOrder("Bruno"))
	require.NoError(t, err)
	assert.Equal(t, "123456-0005", second.ID)
	assert.Len(t, log.List(ctx), 2)
}
