package handler

import (
	"encoding/base64"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService service.AssessmentService
	analysisService   service.AnalysisService
	planService       service.PlanService
	approvalService   service.ApprovalService
}

func NewAssessmentHandler(assessmentService service.AssessmentService, analysisService service.AnalysisService, planService service.PlanService, approvalService service.ApprovalService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		analysisService:   analysisService,
		planService:       planService,
		approvalService:   approvalService,
	}
}

func (h *AssessmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assessments := router.Group("/api/assessments")
	{
		assessments.GET("", middleware.RequireRole(anyRole...), h.ListAssessments)
		assessments.POST("", middleware.RequireRole(model.RoleSurveyor, model.RoleConservationOfficer, model.RoleAdmin), h.CreateAssessment)
		assessments.GET("/:id", middleware.RequireRole(anyRole...), h.GetAssessment)
		assessments.POST("/:id/analyze", middleware.RequireRole(model.RoleSurveyor, model.RoleConservationOfficer, model.RoleAdmin), h.AnalyzeDoor)
		assessments.POST("/:id/plan", middleware.RequireRole(model.RoleConservationOfficer, model.RoleAdmin), h.CreatePlan)
		assessments.GET("/:id/plan", middleware.RequireRole(anyRole...), h.GetPlan)
		assessments.POST("/:id/submit", middleware.RequireRole(anyRole...), h.SubmitForApproval)
	}
}

// CreateAssessment creates a draft assessment from the capture form
// @Summary      Create assessment
// @Description  Creates a draft door assessment with an optional multipart photo
// @Tags         assessments
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        site_id        formData  string  true   "Site ID"
// @Param        door_location  formData  string  true   "Door location within the site"
// @Param        photo          formData  file    false  "Door photo"
// @Success      201  {object}  response.Response{data=model.Assessment}
// @Failure      400  {object}  response.Response
// @Router       /api/assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	var photo *service.PhotoUpload
	if file, err := c.FormFile("photo"); err == nil {
		opened, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Cannot read photo: "+err.Error()))
			return
		}
		defer opened.Close()
		photo = &service.PhotoUpload{
			Reader:      opened,
			Size:        file.Size,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
		}
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), c.GetString("userID"), req, photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assessment))
}

// ListAssessments returns a paginated assessment list
// @Summary      List assessments
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	params := pagination.Parse(c)
	assessments, total, err := h.assessmentService.List(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"assessments": assessments,
		"total":       total,
		"page":        params.Page,
		"limit":       params.Limit,
	}))
}

// GetAssessment returns one assessment joined with site, creator and plan
// @Summary      Get assessment
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=model.Assessment}
// @Failure      404  {object}  response.Response
// @Router       /api/assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.assessmentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

type analyzeRequest struct {
	Image     string `json:"image" binding:"required"`
	MediaType string `json:"media_type" binding:"required"`
}

// AnalyzeDoor runs the AI condition analysis against a door photo
// @Summary      Analyze door
// @Description  Sends the photo to the vision service and stores the structured analysis on the assessment
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Assessment ID"
// @Param        payload  body      analyzeRequest  true  "Base64 photo payload"
// @Success      200      {object}  response.Response{data=model.Assessment}
// @Failure      502      {object}  response.Response
// @Router       /api/assessments/{id}/analyze [post]
func (h *AssessmentHandler) AnalyzeDoor(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid base64 image: "+err.Error()))
		return
	}

	assessment, err := h.analysisService.AnalyzeDoor(c.Request.Context(), c.Param("id"), c.GetString("userID"), image, req.MediaType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// CreatePlan authors the conservation plan for an assessment
// @Summary      Create conservation plan
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Assessment ID"
// @Param        payload  body      service.CreatePlanRequest  true  "Create Plan Payload"
// @Success      201      {object}  response.Response{data=model.ConservationPlan}
// @Failure      409      {object}  response.Response
// @Router       /api/assessments/{id}/plan [post]
func (h *AssessmentHandler) CreatePlan(c *gin.Context) {
	var req service.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// GetPlan returns the conservation plan of an assessment
// @Summary      Get conservation plan
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=model.ConservationPlan}
// @Failure      404  {object}  response.Response
// @Router       /api/assessments/{id}/plan [get]
func (h *AssessmentHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetByAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// SubmitForApproval opens the next approval stage for an assessment
// @Summary      Submit for approval
// @Description  Creates a pending approval for the named approver and moves the assessment into the matching pending status
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Assessment ID"
// @Param        payload  body      service.SubmitApprovalRequest  true  "Submit Payload"
// @Success      201      {object}  response.Response{data=model.Approval}
// @Failure      403      {object}  response.Response
// @Router       /api/assessments/{id}/submit [post]
func (h *AssessmentHandler) SubmitForApproval(c *gin.Context) {
	var req service.SubmitApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Submit(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, approval))
}
