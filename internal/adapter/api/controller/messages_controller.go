package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// MessagesController handles inbound channel messages
type MessagesController struct {
	engine *dialog.Engine
	logger logger.Logger
}

// NewMessagesController creates a new MessagesController instance
func NewMessagesController(engine *dialog.Engine, logger logger.Logger) *MessagesController {
	return &MessagesController{
		engine: engine,
		logger: logger,
	}
}

// Receive processes one inbound message activity
// @Summary Receive a channel message
// @Description Routes a user utterance into the dialog engine
// @Tags messages
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param activity body dto.ActivityRequest true "Inbound activity"
// @Success 202 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/messages [post]
func (c *MessagesController) Receive(ctx *gin.Context) {
	var req dto.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid activity", err.Error()))
		return
	}

	if req.Type != "" && req.Type != "message" {
		// conversation updates, typing indicators and the like
		c.logger.Debug("Ignoring non-message activity", "type", req.Type)
		ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse("ignored", nil))
		return
	}

	if err := c.engine.ProcessMessage(ctx.Request.Context(), req.Address(), req.Text); err != nil {
		c.logger.Error("Failed to process message",
			"error", err,
			"channel_id", req.ChannelID,
			"conversation_id", req.Conversation.ID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to process message", err.Error()))
		return
	}

	ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse("accepted", nil))
}
