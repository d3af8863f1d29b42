package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidProposal = "Invalid proposal data"

type ProposalHandler struct {
	svc service.ProposalService
}

func NewProposalHandler(s service.ProposalService) *ProposalHandler {
	return &ProposalHandler{svc: s}
}

// ListProposals godoc
//
//	@Summary	List project proposals
//	@Tags		proposal
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"	Format(uuid)
//	@Success	200	{array}	model.Proposal
//	@Router		/projects/{id}/proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	proposals, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err, "Failed to fetch proposals")
		return
	}
	c.JSON(http.StatusOK, orEmpty(proposals))
}

// CreateProposal godoc
//
//	@Summary	Submit proposal
//	@Tags		proposal
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Project ID"	Format(uuid)
//	@Param		payload	body		service.CreateProposalInput	true	"CreateProposal payload"
//	@Success	201		{object}	model.Proposal
//	@Failure	400		{object}	serializer.ErrorResponse
//	@Failure	404		{object}	serializer.ErrorResponse
//	@Router		/projects/{id}/proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	var in service.CreateProposalInput
	if !decodeCreate(c, msgInvalidProposal, &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), projectID, in)
	if err != nil {
		writeError(c, err, "Failed to create proposal")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProposal godoc
//
//	@Summary		Update proposal
//	@Description	Accept or reject a proposal, or revise its terms
//	@Tags			proposal
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Proposal ID"	Format(uuid)
//	@Param			payload	body		service.UpdateProposalInput	true	"UpdateProposal payload"
//	@Success		200		{object}	model.Proposal
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/proposals/{id} [patch]
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidProposal)
	if !ok {
		return
	}
	var in service.UpdateProposalInput
	if !decodePatch(c, msgInvalidProposal, &in) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update proposal")
		return
	}
	c.JSON(http.StatusOK, p)
}
