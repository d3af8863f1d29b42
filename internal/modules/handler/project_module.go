package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidModule = "Invalid module data"

type ProjectModuleHandler struct {
	svc service.ProjectModuleService
}

func NewProjectModuleHandler(s service.ProjectModuleService) *ProjectModuleHandler {
	return &ProjectModuleHandler{svc: s}
}

// ListModules godoc
//
//	@Summary		List project modules
//	@Description	Modules of a project in ascending order
//	@Tags			module
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Success		200	{array}	model.ProjectModule
//	@Router			/projects/{id}/modules [get]
func (h *ProjectModuleHandler) ListModules(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	modules, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err, "Failed to fetch project modules")
		return
	}
	c.JSON(http.StatusOK, orEmpty(modules))
}

// CreateModule godoc
//
//	@Summary		Create project module
//	@Tags			module
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"	Format(uuid)
//	@Param			payload	body		service.CreateModuleInput	true	"CreateModule payload"
//	@Success		201		{object}	model.ProjectModule
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/projects/{id}/modules [post]
func (h *ProjectModuleHandler) CreateModule(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	var in service.CreateModuleInput
	if !decodeCreate(c, msgInvalidModule, &in) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), projectID, in)
	if err != nil {
		writeError(c, err, "Failed to create project module")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateModule godoc
//
//	@Summary		Update project module
//	@Tags			module
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Module ID"	Format(uuid)
//	@Param			payload	body		service.UpdateModuleInput	true	"UpdateModule payload"
//	@Success		200		{object}	model.ProjectModule
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/modules/{id} [patch]
func (h *ProjectModuleHandler) UpdateModule(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidModule)
	if !ok {
		return
	}
	var in service.UpdateModuleInput
	if !decodePatch(c, msgInvalidModule, &in) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update project module")
		return
	}
	c.JSON(http.StatusOK, m)
}
