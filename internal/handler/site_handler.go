package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var anyRole = []string{model.RoleSurveyor, model.RoleConservationOfficer, model.RoleBudgetHolder, model.RoleContractor, model.RoleAdmin}

type SiteHandler struct {
	siteService service.SiteService
}

func NewSiteHandler(siteService service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

func (h *SiteHandler) RegisterRoutes(router *gin.RouterGroup) {
	sites := router.Group("/api/sites")
	{
		sites.GET("", middleware.RequireRole(anyRole...), h.ListSites)
		sites.GET("/:id", middleware.RequireRole(anyRole...), h.GetSite)
		sites.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateSite)
	}
}

// ListSites returns every heritage site, ordered by name
// @Summary      List sites
// @Tags         sites
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Site}
// @Failure      500  {object}  response.Response
// @Router       /api/sites [get]
func (h *SiteHandler) ListSites(c *gin.Context) {
	sites, err := h.siteService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sites))
}

// GetSite returns one heritage site by ID
// @Summary      Get site
// @Tags         sites
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Site ID"
// @Success      200  {object}  response.Response{data=model.Site}
// @Failure      404  {object}  response.Response
// @Router       /api/sites/{id} [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	site, err := h.siteService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, site))
}

// CreateSite registers a new heritage site
// @Summary      Create site
// @Tags         sites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSiteRequest  true  "Create Site Payload"
// @Success      201      {object}  response.Response{data=model.Site}
// @Failure      400      {object}  response.Response
// @Router       /api/sites [post]
func (h *SiteHandler) CreateSite(c *gin.Context) {
	var req service.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	site, err := h.siteService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, site))
}
