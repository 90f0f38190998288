package handler

import (
	"errors"
	"net/http"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/internal/service"
	"github.com/1013vishalsharma/payment-api/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user registration and login HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles user registration
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, dto.ValidationMessage(err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles user login
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, dto.ValidationMessage(err))
		return
	}

	result, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrBadCredentials):
			response.Unauthorized(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
