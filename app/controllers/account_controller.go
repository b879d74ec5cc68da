package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/lanchonete/app/account"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/auth"
	"github.com/shashiranjanraj/lanchonete/pkg/bind"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
	"github.com/shashiranjanraj/lanchonete/pkg/session"
)

type AccountController struct {
	service *account.Service
	issuer  *auth.Issuer
}

func NewAccountController(service *account.Service, issuer *auth.Issuer) *AccountController {
	return &AccountController{service: service, issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var in account.Registration
	if err := bind.Decode(w, r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	acc, err := c.service.Register(r.Context(), in)
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
		return
	case errors.Is(err, account.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "Email already registered")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.ServerError(w)
		return
	}
	c.respondWithToken(w, r, http.StatusCreated, acc)
}

func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	acc, err := c.service.Login(r.Context(), body.Email, body.Password)
	switch {
	case errors.Is(err, account.ErrNoAccount), errors.Is(err, account.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.ServerError(w)
		return
	}
	c.respondWithToken(w, r, http.StatusOK, acc)
}

// Show returns the stored account. The route sits behind middleware.Auth.
func (c *AccountController) Show(w http.ResponseWriter, r *http.Request) {
	acc, err := c.service.Current(r.Context())
	switch {
	case errors.Is(err, account.ErrNoAccount):
		response.NotFound(w)
	case err != nil:
		logger.WithCtx(r.Context()).Error("read account failed", "error", err)
		response.ServerError(w)
	default:
		response.Success(w, resource.One(AccountResource, acc))
	}
}

// Logout forgets the account and ends the session, which empties the cart.
func (c *AccountController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Logout(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Error("logout failed", "error", err)
		response.ServerError(w)
		return
	}
	session.FromCtx(r).Invalidate(w)
	response.Message(w, "Logged out")
}

func (c *AccountController) respondWithToken(w http.ResponseWriter, r *http.Request, status int, acc models.Account) {
	token, err := c.issuer.Issue(acc.Name, acc.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue token failed", "error", err)
		response.ServerError(w)
		return
	}
	data := resource.Map{"account": resource.One(AccountResource, acc), "token": token}
	if status == http.StatusCreated {
		response.Created(w, data)
		return
	}
	response.Success(w, data)
}
