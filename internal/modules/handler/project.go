package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidProject = "Invalid project data"

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type ListProjectsReq struct {
	ClientID     string `form:"clientId" binding:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	FreelancerID string `form:"freelancerId" binding:"omitempty,uuid"`
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects, optionally restricted to one client or one freelancer (not both)
//	@Tags			project
//	@Produce		json
//	@Param			clientId		query		string	false	"Client user ID"		Format(uuid)
//	@Param			freelancerId	query		string	false	"Freelancer user ID"	Format(uuid)
//	@Success		200				{array}		model.Project
//	@Failure		400				{object}	serializer.ErrorResponse
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req ListProjectsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, "Invalid project filter", err)
		return
	}
	projects, err := h.svc.List(c.Request.Context(), service.ListProjectsInput{
		ClientID:     optionalUUID(req.ClientID),
		FreelancerID: optionalUUID(req.FreelancerID),
	})
	if err != nil {
		writeError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, orEmpty(projects))
}

// GetProject godoc
//
//	@Summary	Get project
//	@Tags		project
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"	Format(uuid)
//	@Success	200	{object}	model.Project
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Post a new project. Status defaults to open and escrow to pending.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		service.CreateProjectInput	true	"CreateProject payload"
//	@Success		201		{object}	model.Project
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var in service.CreateProjectInput
	if !decodeCreate(c, msgInvalidProject, &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Partial update. The client of a project cannot be changed.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"	Format(uuid)
//	@Param			payload	body		service.UpdateProjectInput	true	"UpdateProject payload"
//	@Success		200		{object}	model.Project
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	var in service.UpdateProjectInput
	if !decodePatch(c, msgInvalidProject, &in) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProjectOverview godoc
//
//	@Summary		Project overview
//	@Description	Project with its client, freelancer, modules, active contract, proposals and milestones
//	@Tags			project
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"	Format(uuid)
//	@Success		200	{object}	service.ProjectOverview
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{id}/overview [get]
func (h *ProjectHandler) GetProjectOverview(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	ov, err := h.svc.Overview(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to fetch project overview")
		return
	}
	ov.Modules = orEmpty(ov.Modules)
	ov.Proposals = orEmpty(ov.Proposals)
	ov.Milestones = orEmpty(ov.Milestones)
	c.JSON(http.StatusOK, ov)
}
