package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	workService service.WorkService
}

func NewWorkHandler(workService service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

func (h *WorkHandler) RegisterRoutes(router *gin.RouterGroup) {
	work := router.Group("/api/work-assignments")
	{
		work.GET("", middleware.RequireRole(anyRole...), h.ListAssignments)
		work.GET("/:id", middleware.RequireRole(anyRole...), h.GetAssignment)
		work.POST("", middleware.RequireRole(model.RoleConservationOfficer, model.RoleAdmin), h.AssignWork)
		work.PUT("/:id/start", middleware.RequireRole(model.RoleContractor, model.RoleAdmin), h.StartWork)
		work.PUT("/:id/complete", middleware.RequireRole(model.RoleContractor, model.RoleAdmin), h.CompleteWork)
	}
}

// ListAssignments returns work assignments, optionally for one contractor.
// Contractors only ever see their own.
// @Summary      List work assignments
// @Tags         work-assignments
// @Security     BearerAuth
// @Produce      json
// @Param        contractor_id  query     string  false  "Filter by contractor"
// @Success      200            {object}  response.Response{data=[]model.WorkAssignment}
// @Failure      500            {object}  response.Response
// @Router       /api/work-assignments [get]
func (h *WorkHandler) ListAssignments(c *gin.Context) {
	contractorID := c.Query("contractor_id")
	if c.GetString("userRole") == model.RoleContractor {
		contractorID = c.GetString("userID")
	}
	assignments, err := h.workService.List(c.Request.Context(), contractorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assignments))
}

// GetAssignment returns one work assignment
// @Summary      Get work assignment
// @Tags         work-assignments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=model.WorkAssignment}
// @Failure      404  {object}  response.Response
// @Router       /api/work-assignments/{id} [get]
func (h *WorkHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.workService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assignment))
}

// AssignWork hands an approved assessment to a contractor
// @Summary      Assign work
// @Tags         work-assignments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AssignWorkRequest  true  "Assign Work Payload"
// @Success      201      {object}  response.Response{data=model.WorkAssignment}
// @Failure      409      {object}  response.Response
// @Router       /api/work-assignments [post]
func (h *WorkHandler) AssignWork(c *gin.Context) {
	var req service.AssignWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assignment, err := h.workService.Assign(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assignment))
}

// StartWork moves an assignment and its assessment to in_progress
// @Summary      Start work
// @Tags         work-assignments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=model.WorkAssignment}
// @Failure      409  {object}  response.Response
// @Router       /api/work-assignments/{id}/start [put]
func (h *WorkHandler) StartWork(c *gin.Context) {
	assignment, err := h.workService.Start(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assignment))
}

// CompleteWork closes an assignment and completes its assessment
// @Summary      Complete work
// @Tags         work-assignments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Assignment ID"
// @Param        payload  body      service.CompleteWorkRequest  true  "Completion Payload"
// @Success      200      {object}  response.Response{data=model.WorkAssignment}
// @Failure      409      {object}  response.Response
// @Router       /api/work-assignments/{id}/complete [put]
func (h *WorkHandler) CompleteWork(c *gin.Context) {
	var req service.CompleteWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assignment, err := h.workService.Complete(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, assignment))
}
