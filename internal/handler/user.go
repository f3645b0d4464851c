package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "User received successfully", user.ToResponse())
}

// Me returns the profile behind the attached principal.
func (h *UserHandler) Me(c *gin.Context) {
	principal := GetPrincipal(c)
	user, err := h.svc.Profile(c.Request.Context(), principal.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User received successfully", user.ToResponse())
}

func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	users, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	respond(c, http.StatusOK, "Users found", responses)
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
