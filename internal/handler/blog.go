package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type BlogHandler struct {
	svc *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Blogs received successfully", toBlogResponses(blogs))
}

func (h *BlogHandler) Get(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	blog, err := h.svc.Get(c.Request.Context(), blogID, GetPrincipal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Blog received successfully", blog.ToResponse())
}

func (h *BlogHandler) ListByAuthor(c *gin.Context) {
	blogs, err := h.svc.ListByAuthor(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Blogs received successfully", toBlogResponses(blogs))
}

// Create godoc
// @Summary Create a blog post with optional media attachments
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.APIResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if title == "" || content == "" {
		respondError(c, http.StatusBadRequest, "Title and content are required")
		return
	}

	blog, err := h.svc.Create(c.Request.Context(), GetPrincipal(c), title, content, formFiles(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Blog created successfully", blog.ToResponse())
}

func (h *BlogHandler) Update(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	input := service.BlogUpdateInput{
		Title:        c.PostForm("title"),
		Content:      c.PostForm("content"),
		Files:        formFiles(c),
		MediaChanged: c.PostForm("mediaChanged") == "true",
		KeepMedia:    c.PostFormArray("keepMedia"),
	}

	blog, err := h.svc.Update(c.Request.Context(), blogID, GetPrincipal(c), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Blog updated successfully", blog.ToResponse())
}

func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), blogID, GetPrincipal(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Blog deleted successfully", nil)
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["media"]
}

func toBlogResponses(blogs []model.Blog) []model.BlogResponse {
	responses := make([]model.BlogResponse, 0, len(blogs))
	for i := range blogs {
		responses = append(responses, blogs[i].ToResponse())
	}
	return responses
}
