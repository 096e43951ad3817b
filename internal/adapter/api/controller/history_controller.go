package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/commerce-assistant/pkg/chat"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// HistoryController serves the persisted chat history of a conversation
type HistoryController struct {
	history chat.Repository
	logger  logger.Logger
}

// NewHistoryController creates a new HistoryController instance
func NewHistoryController(history chat.Repository, logger logger.Logger) *HistoryController {
	return &HistoryController{
		history: history,
		logger:  logger,
	}
}

// List returns the messages of a conversation, newest first
// @Summary List conversation history
// @Description Returns the stored chat messages of a conversation, newest first
// @Tags history
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param conversationId path string true "Conversation ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/conversations/{conversationId}/history [get]
func (c *HistoryController) List(ctx *gin.Context) {
	conversationID := ctx.Param("conversationId")

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := c.history.GetConversationHistory(ctx.Request.Context(), conversationID, limit, offset)
	if err != nil {
		c.logger.Error("Failed to load chat history",
			"error", err, "conversation_id", conversationID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load history", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("history", messages))
}
