package handler

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/serializer"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidMessage = "Invalid message data"

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{svc: s}
}

type ListMessagesReq struct {
	UserID     string `form:"userId" binding:"omitempty,uuid"`
	SenderID   string `form:"senderId" binding:"omitempty,uuid"`
	ReceiverID string `form:"receiverId" binding:"omitempty,uuid"`
}

// ListMessages godoc
//
//	@Summary		List messages
//	@Description	With userId, the user's conversations, most recent first.
//	@Description	With senderId and receiverId, the thread between the two users in either direction, oldest first.
//	@Tags			message
//	@Produce		json
//	@Param			userId		query		string	false	"Inbox owner"	Format(uuid)
//	@Param			senderId	query		string	false	"One participant"	Format(uuid)
//	@Param			receiverId	query		string	false	"Other participant"	Format(uuid)
//	@Success		200			{array}		service.Conversation
//	@Failure		400			{object}	serializer.ErrorResponse
//	@Router			/messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	var req ListMessagesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, "Invalid message query", err)
		return
	}

	switch {
	case req.UserID != "":
		convs, err := h.svc.Conversations(c.Request.Context(), uuid.MustParse(req.UserID))
		if err != nil {
			writeError(c, err, "Failed to fetch conversations")
			return
		}
		c.JSON(http.StatusOK, orEmpty(convs))
	case req.SenderID != "" && req.ReceiverID != "":
		msgs, err := h.svc.Thread(c.Request.Context(), uuid.MustParse(req.SenderID), uuid.MustParse(req.ReceiverID))
		if err != nil {
			writeError(c, err, "Failed to fetch messages")
			return
		}
		c.JSON(http.StatusOK, orEmpty(msgs))
	default:
		serializer.Abort(c, http.StatusBadRequest, serializer.ParamErr("Missing required parameters"))
	}
}

// CreateMessage godoc
//
//	@Summary	Send message
//	@Tags		message
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		service.CreateMessageInput	true	"CreateMessage payload"
//	@Success	201		{object}	model.Message
//	@Failure	400		{object}	serializer.ErrorResponse
//	@Router		/messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var in service.CreateMessageInput
	if !decodeCreate(c, msgInvalidMessage, &in) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "Failed to create message")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// MarkMessageRead godoc
//
//	@Summary	Mark message read
//	@Tags		message
//	@Produce	json
//	@Param		id	path		string	true	"Message ID"	Format(uuid)
//	@Success	200	{object}	serializer.Success
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/messages/{id}/read [patch]
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidMessage)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to mark message as read")
		return
	}
	c.JSON(http.StatusOK, serializer.OK())
}
