package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

// AdminHandler serves the moderation surface. Routes are mounted behind
// RequireAuthority(model.AuthorityAdmin), so no role checks happen here.
type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	respond(c, http.StatusOK, "Users received successfully", responses)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.BanUser(c.Request.Context(), userID, GetPrincipal(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User banned successfully", nil)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.UnbanUser(c.Request.Context(), userID, GetPrincipal(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User unbanned successfully", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), userID, GetPrincipal(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *AdminHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.svc.ListAllBlogs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Blogs received successfully", toBlogResponses(blogs))
}

func (h *AdminHandler) ToggleBlogVisible(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	visible, err := h.svc.ToggleBlogVisible(c.Request.Context(), blogID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	message := "Blog hidden"
	if visible {
		message = "Blog visible"
	}
	respond(c, http.StatusOK, message, gin.H{"visible": visible})
}

func (h *AdminHandler) DeleteBlog(c *gin.Context) {
	blogID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.DeleteBlog(c.Request.Context(), blogID); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Blog deleted successfully", nil)
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	reports, err := h.svc.ListReports(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, reports[i].ToResponse())
	}
	respond(c, http.StatusOK, "Reports received successfully", responses)
}

func (h *AdminHandler) UpdateReportStatus(c *gin.Context) {
	reportID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.svc.UpdateReportStatus(c.Request.Context(), reportID, req.Status); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report updated successfully", nil)
}

func (h *AdminHandler) DeleteReport(c *gin.Context) {
	reportID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.DeleteReport(c.Request.Context(), reportID); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report deleted successfully", nil)
}
