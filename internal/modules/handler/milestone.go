package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidMilestone = "Invalid milestone data"

type MilestoneHandler struct {
	svc service.MilestoneService
}

func NewMilestoneHandler(s service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{svc: s}
}

// ListMilestones godoc
//
//	@Summary	List project milestones
//	@Tags		milestone
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"	Format(uuid)
//	@Success	200	{array}	model.Milestone
//	@Router		/projects/{id}/milestones [get]
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	milestones, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err, "Failed to fetch milestones")
		return
	}
	c.JSON(http.StatusOK, orEmpty(milestones))
}

// CreateMilestone godoc
//
//	@Summary	Create milestone
//	@Tags		milestone
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Project ID"	Format(uuid)
//	@Param		payload	body		service.CreateMilestoneInput	true	"CreateMilestone payload"
//	@Success	201		{object}	model.Milestone
//	@Failure	400		{object}	serializer.ErrorResponse
//	@Failure	404		{object}	serializer.ErrorResponse
//	@Router		/projects/{id}/milestones [post]
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	var in service.CreateMilestoneInput
	if !decodeCreate(c, msgInvalidMilestone, &in) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), projectID, in)
	if err != nil {
		writeError(c, err, "Failed to create milestone")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateMilestone godoc
//
//	@Summary		Update milestone
//	@Description	Status moves pending, completed, paid, one step at a time
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Milestone ID"	Format(uuid)
//	@Param			payload	body		service.UpdateMilestoneInput	true	"UpdateMilestone payload"
//	@Success		200		{object}	model.Milestone
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/milestones/{id} [patch]
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidMilestone)
	if !ok {
		return
	}
	var in service.UpdateMilestoneInput
	if !decodePatch(c, msgInvalidMilestone, &in) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update milestone")
		return
	}
	c.JSON(http.StatusOK, m)
}
