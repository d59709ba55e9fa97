// Package controllers translates HTTP requests into service calls and service
// results back into JSON responses. No business rules live here: handlers
// bind, validate, delegate, and map sentinel errors to status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/app/services"
	"github.com/shashiranjanraj/sweetshop/pkg/bind"
	"github.com/shashiranjanraj/sweetshop/pkg/logger"
	"github.com/shashiranjanraj/sweetshop/pkg/middleware"
	"github.com/shashiranjanraj/sweetshop/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	user, token, err := c.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			response.Error(w, http.StatusBadRequest, "Email already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Internal(w, "Something went wrong")
		return
	}

	response.Created(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	token, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Internal(w, "Something went wrong")
		return
	}

	response.OK(w, map[string]string{"token": token})
}

// Protected handles GET /api/protected. It exists so clients can probe whether
// a stored token is still usable without touching the catalogue.
func (c *AuthController) Protected(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.auth.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Token outlived the account.
			response.Unauthorized(w)
			return
		}
		logger.WithCtx(r.Context()).Error("profile lookup failed", "error", err)
		response.Internal(w, "Something went wrong")
		return
	}

	response.OK(w, map[string]interface{}{
		"message": "Access granted",
		"user":    user,
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "OK"})
}
