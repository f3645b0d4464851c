package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Username, email and password"
// @Success 201 {object} model.APIResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", nil)
}

// Login godoc
// @Summary Login with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 201 {object} model.APIResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON or request body")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User logged successfully", resp)
}
