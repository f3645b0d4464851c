package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), GetPrincipal(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Comment created successfully", comment.ToResponse())
}

func (h *CommentHandler) ListByBlog(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	comments, err := h.svc.ListByBlog(c.Request.Context(), blogID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}
	respond(c, http.StatusOK, "Comments received successfully", responses)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), commentID, GetPrincipal(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Comment deleted successfully", nil)
}
