package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	report, err := h.svc.Create(c.Request.Context(), GetPrincipal(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Report submitted successfully", report.ToResponse())
}
