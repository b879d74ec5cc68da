package main

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/pkg/app"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func init() { logger.Discard() }

// sharedApp hands every command the same in-memory Application.
func sharedApp(t *testing.T) opener {
	t.Helper()
	a, err := app.New(kv.NewMemory())
	require.NoError(t, err)
	return func(context.Context) (*app.Application, error) { return a, nil }
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(open)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMenuCommand(t *testing.T) {
	out, err := run(t, sharedApp(t), "menu", "--category", "bebidas")
	require.NoError(t, err)
	assert.Contains(t, out, "Refrigerante Lata")
	assert.Contains(t, out, "R$ 6,50")
	assert.NotContains(t, out, "Batata Frita")

	out, err = run(t, sharedApp(t), "menu", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No items match.")
}

var orderID = regexp.MustCompile(`Order (\d{6}-\d{3,}) placed`)

func TestCheckoutAndOrderCommands(t *testing.T) {
	open := sharedApp(t)

	out, err := run(t, open, "checkout", "--name", "Ana", "--payment", "dinheiro", "--item", "1=2", "--item", "6")
	require.NoError(t, err)
	m := orderID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]
	assert.Contains(t, out, "R$ 56,30")

	out, err = run(t, open, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Aguardando")

	out, err = run(t, open, "orders", "advance", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Preparando")

	out, err = run(t, open, "orders", "status", id, "pronto")
	require.NoError(t, err)
	assert.Contains(t, out, "Finalizado")

	_, err = run(t, open, "orders", "status", "000000-000", "completed")
	assert.Error(t, err)
	_, err = run(t, open, "orders", "status", id, "perdido")
	assert.Error(t, err)

	out, err = run(t, open, "orders", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Hambúrguer Clássico")

	_, err = run(t, open, "orders", "clear")
	require.NoError(t, err)
	out, err = run(t, open, "orders", "list", "--newest-first")
	require.NoError(t, err)
	assert.Contains(t, out, "No orders yet.")
}

func TestCheckoutCommandErrors(t *testing.T) {
	open := sharedApp(t)

	_, err := run(t, open, "checkout", "--name", "Ana", "--payment", "pix")
	assert.ErrorContains(t, err, "cart is empty")

	_, err = run(t, open, "checkout", "--name", "Ana", "--payment", "pix", "--item", "abc")
	assert.ErrorContains(t, err, "id must be a number")

	_, err = run(t, open, "checkout", "--name", "Ana", "--payment", "pix", "--item", "999")
	assert.ErrorContains(t, err, "no menu item")

	_, err = run(t, open, "checkout", "--name", "", "--payment", "boleto", "--item", "1")
	assert.ErrorContains(t, err, "invalid order")
}

func TestAccountCommands(t *testing.T) {
	open := sharedApp(t)

	out, err := run(t, open, "account", "register", "--name", "Ana", "--email", "ana@example.com", "--password", "segredo", "--cep", "01310100")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ana <ana@example.com>")

	out, err = run(t, open, "account", "login", "--email", "ana@example.com", "--password", "segredo")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ana")

	_, err = run(t, open, "account", "login", "--email", "ana@example.com", "--password", "errado")
	assert.Error(t, err)

	out, err = run(t, open, "account", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "CEP:   01310100")

	_, err = run(t, open, "account", "logout")
	require.NoError(t, err)
	_, err = run(t, open, "account", "show")
	assert.Error(t, err)
}

func TestParseItem(t *testing.T) {
	id, qty, err := parseItem("4=3")
	require.NoError(t, err)
	assert.Equal(t, 4, id)
	assert.Equal(t, 3, qty)

	_, qty, err = parseItem("4")
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	_, _, err = parseItem("4=0")
	assert.Error(t, err)
}

func TestRouteList(t *testing.T) {
	out, err := run(t, sharedApp(t), "route:list")
	require.NoError(t, err)
	assert.Contains(t, out, "/api/checkout")
	assert.Contains(t, out, "ws.orders")
}
