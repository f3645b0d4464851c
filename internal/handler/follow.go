package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	targetID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Follow(c.Request.Context(), GetPrincipal(c), targetID); err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "User followed successfully", nil)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Unfollow(c.Request.Context(), GetPrincipal(c), targetID); err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "User unfollowed successfully", nil)
}

func (h *FollowHandler) Followers(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	followers, err := h.svc.Followers(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Followers received successfully", followers)
}

func (h *FollowHandler) Following(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	following, err := h.svc.Following(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Following received successfully", following)
}
