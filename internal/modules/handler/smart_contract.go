package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidContract = "Invalid contract data"

type SmartContractHandler struct {
	svc service.SmartContractService
}

func NewSmartContractHandler(s service.SmartContractService) *SmartContractHandler {
	return &SmartContractHandler{svc: s}
}

// GetSmartContract godoc
//
//	@Summary		Get project smart contract
//	@Description	The active contract terms of a project, or the newest record if none is active
//	@Tags			smart-contract
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"	Format(uuid)
//	@Success		200	{object}	model.SmartContract
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{id}/smart-contract [get]
func (h *SmartContractHandler) GetSmartContract(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	sc, err := h.svc.GetByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err, "Failed to fetch smart contract")
		return
	}
	c.JSON(http.StatusOK, sc)
}

// CreateSmartContract godoc
//
//	@Summary		Create project smart contract
//	@Description	Store payment terms for a project. A project holds at most one active record.
//	@Tags			smart-contract
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Project ID"	Format(uuid)
//	@Param			payload	body		service.CreateSmartContractInput	true	"CreateSmartContract payload"
//	@Success		201		{object}	model.SmartContract
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/projects/{id}/smart-contract [post]
func (h *SmartContractHandler) CreateSmartContract(c *gin.Context) {
	projectID, ok := pathID(c, "id", msgInvalidProject)
	if !ok {
		return
	}
	var in service.CreateSmartContractInput
	if !decodeCreate(c, msgInvalidContract, &in) {
		return
	}
	sc, err := h.svc.Create(c.Request.Context(), projectID, in)
	if err != nil {
		writeError(c, err, "Failed to create smart contract")
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// UpdateSmartContract godoc
//
//	@Summary	Update smart contract
//	@Tags		smart-contract
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Smart contract ID"	Format(uuid)
//	@Param		payload	body		service.UpdateSmartContractInput	true	"UpdateSmartContract payload"
//	@Success	200		{object}	model.SmartContract
//	@Failure	400		{object}	serializer.ErrorResponse
//	@Failure	404		{object}	serializer.ErrorResponse
//	@Router		/smart-contracts/{id} [patch]
func (h *SmartContractHandler) UpdateSmartContract(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidContract)
	if !ok {
		return
	}
	var in service.UpdateSmartContractInput
	if !decodePatch(c, msgInvalidContract, &in) {
		return
	}
	sc, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update smart contract")
		return
	}
	c.JSON(http.StatusOK, sc)
}
