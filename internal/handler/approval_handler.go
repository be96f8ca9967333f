package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/api/approvals")
	{
		approvals.GET("/pending", middleware.RequireRole(model.RoleSurveyor, model.RoleConservationOfficer, model.RoleBudgetHolder), h.ListPending)
		approvals.PUT("/:id/decision", middleware.RequireRole(model.RoleSurveyor, model.RoleConservationOfficer, model.RoleBudgetHolder), h.Decide)
	}
}

// ListPending returns the caller's pending approvals joined with their assessments
// @Summary      List pending approvals
// @Description  Returns pending approvals for the caller's role, each joined with its assessment
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]workflow.PendingApproval}
// @Failure      500  {object}  response.Response
// @Router       /api/approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	pending, err := h.approvalService.ListPending(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pending))
}

// Decide applies an approve or reject decision to a pending approval
// @Summary      Decide approval
// @Description  Records a terminal decision and advances the assessment status per the transition table
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Approval ID"
// @Param        payload  body      service.DecisionRequest  true  "Decision Payload"
// @Success      200      {object}  response.Response{data=object}
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id}/decision [put]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	var req service.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, newStatus, err := h.approvalService.Decide(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"approval":          approval,
		"assessment_status": newStatus,
	}))
}
