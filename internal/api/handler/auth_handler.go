package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

type AuthHandler struct {
	auth  ports.AuthService
	users ports.UserService
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Login authenticates a user and returns a bearer token as plain text.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {string}  string        "Signed JWT"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	ok, err := h.auth.Login(ctx, domain.Credential{Username: req.Username, Password: req.Password})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Deleted between verification and lookup.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, token)
}

// CreateUser registers an account and returns it together with a fresh token.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User registration details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	}
	ok, err := h.auth.CreateUser(c.Request().Context(), user, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("create user: no record written")
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createUserResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Logout revokes the bearer token used for this request.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), identity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
