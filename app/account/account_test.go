package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/account"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func init() { logger.Discard() }

func valid() account.Registration {
	return account.Registration{
		Name:                 " Ana Souza ",
		Email:                " Ana@Example.com ",
		Password:             "segredo",
		PasswordConfirmation: "segredo",
		PostalCode:           "01310-100",
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := kv.NewMemory()
	svc := account.New(store)
	ctx := context.Background()

	acc, err := svc.Register(ctx, valid())
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", acc.Name)
	assert.Equal(t, "ana@example.com", acc.Email)

	raw, err := store.Get(ctx, account.Key)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "segredo")

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, acc, cur)
}

func TestRegisterValidation(t *testing.T) {
	svc := account.New(kv.NewMemory())

	r := valid()
	r.Name = ""
	r.Email = "nope"
	r.Password = "123"
	r.PasswordConfirmation = "321"
	r.PostalCode = "123"

	_, err := svc.Register(context.Background(), r)
	var verr *account.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"cep", "email", "name", "password", "password_confirmation"}, verr.Fields.Fields())

	_, err = svc.Current(context.Background())
	assert.ErrorIs(t, err, account.ErrNoAccount)
}

func TestLogin(t *testing.T) {
	svc := account.New(kv.NewMemory())
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana@example.com", "segredo")
	assert.ErrorIs(t, err, account.ErrNoAccount)

	_, err = svc.Register(ctx, valid())
	require.NoError(t, err)

	acc, err := svc.Login(ctx, "  ANA@example.COM", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", acc.Name)

	_, err = svc.Login(ctx, "ana@example.com", "errado")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bia@example.com", "segredo")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc := account.New(kv.NewMemory())
	ctx := context.Background()

	_, err := svc.Register(ctx, valid())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, account.ErrNoAccount)
}

func TestLegacyPlaintextRecordIsIgnored(t *testing.T) {
	store := kv.NewMemory()
	svc := account.New(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, account.Key, []byte(`{"nome":"Ana","email":"ana@example.com","senha":"123456"}`)))
	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, account.ErrNoAccount)
	_, err = svc.Login(ctx, "ana@example.com", "123456")
	assert.ErrorIs(t, err, account.ErrNoAccount)

	_, err = svc.Register(ctx, valid())
	require.NoError(t, err, "a legacy record does not block registration")
}

func TestRegisterSameEmailTwice(t *testing.T) {
	svc := account.New(kv.NewMemory())
	ctx := context.Background()

	first, err := svc.Register(ctx, valid())
	require.NoError(t, err)

	again := valid()
	again.Name = "Outra Ana"
	again.Email = "ANA@example.com"
	_, err = svc.Register(ctx, again)
	assert.ErrorIs(t, err, account.ErrEmailTaken)

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cur)

	other := valid()
	other.Name = "Bia"
	other.Email = "bia@example.com"
	acc, err := svc.Register(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "bia@example.com", acc.Email)
}
