package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/service"
)

type LikeHandler struct {
	svc *service.LikeService
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

func (h *LikeHandler) Toggle(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	liked, count, err := h.svc.Toggle(c.Request.Context(), blogID, GetPrincipal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	message := "Blog unliked"
	if liked {
		message = "Blog liked"
	}
	respond(c, http.StatusOK, message, gin.H{"liked": liked, "likeCount": count})
}

func (h *LikeHandler) Count(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	count, err := h.svc.Count(c.Request.Context(), blogID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Like count received", gin.H{"likeCount": count})
}
