package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/pkg/bind"
)

type statusInput struct {
	Status string `json:"status" validate:"required,in=awaiting,preparing,completed"`
}

func TestJSON(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"status":"preparing"}`))
	var in statusInput
	errs, err := bind.JSON(httptest.NewRecorder(), r, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "preparing", in.Status)
}

func TestJSONValidation(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"status":"lost"}`))
	var in statusInput
	errs, err := bind.JSON(httptest.NewRecorder(), r, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "status")
}

func TestDecodeRejectsBadBodies(t *testing.T) {
	var in statusInput

	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{`))
	assert.ErrorContains(t, bind.Decode(httptest.NewRecorder(), r, &in), "invalid JSON")

	r = httptest.NewRequest("PUT", "/", strings.NewReader(`{"status":"x","extra":1}`))
	assert.Error(t, bind.Decode(httptest.NewRecorder(), r, &in))
}
