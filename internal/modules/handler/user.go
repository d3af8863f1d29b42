package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const msgInvalidUser = "Invalid user data"

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

// ListFreelancers godoc
//
//	@Summary		List freelancers
//	@Description	List every user flagged as a freelancer, oldest first
//	@Tags			user
//	@Produce		json
//	@Success		200	{array}		model.User
//	@Failure		500	{object}	serializer.ErrorResponse
//	@Router			/users/freelancers [get]
func (h *UserHandler) ListFreelancers(c *gin.Context) {
	users, err := h.svc.ListFreelancers(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to fetch freelancers")
		return
	}
	c.JSON(http.StatusOK, orEmpty(users))
}

// GetUser godoc
//
//	@Summary		Get user
//	@Tags			user
//	@Produce		json
//	@Param			id	path		string	true	"User ID"	Format(uuid)
//	@Success		200	{object}	model.User
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidUser)
	if !ok {
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// CreateUser godoc
//
//	@Summary		Create user
//	@Description	Register a client or freelancer. Username and email must be unique.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		service.CreateUserInput	true	"CreateUser payload"
//	@Success		201		{object}	model.User
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var in service.CreateUserInput
	if !decodeCreate(c, msgInvalidUser, &in) {
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUser godoc
//
//	@Summary		Update user
//	@Description	Change profile fields. Omitted fields keep their value.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID"	Format(uuid)
//	@Param			payload	body		service.UpdateUserInput	true	"UpdateUser payload"
//	@Success		200		{object}	model.User
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidUser)
	if !ok {
		return
	}
	var in service.UpdateUserInput
	if !decodePatch(c, msgInvalidUser, &in) {
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, u)
}
