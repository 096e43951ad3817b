package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/controller"
)

// SetupBotRoutes configures the channel-facing routes. Both endpoints sit
// behind the channel authentication middleware.
func SetupBotRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, messagesController *controller.MessagesController, invokeController *controller.InvokeController, historyController *controller.HistoryController) {
	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.POST("/messages", messagesController.Receive)
		api.POST("/invoke", invokeController.Receive)
		api.GET("/conversations/:conversationId/history", historyController.List)
	}
}
