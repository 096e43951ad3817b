package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/commerce-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/metrics"
)

// InvokeController handles out-of-band payment events from the client
// payment UI
type InvokeController struct {
	orchestrator *checkout.Orchestrator
	logger       logger.Logger
}

// NewInvokeController creates a new InvokeController instance
func NewInvokeController(orchestrator *checkout.Orchestrator, logger logger.Logger) *InvokeController {
	return &InvokeController{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Receive processes one payment invoke event. The orchestrator calls the
// reply callback exactly once; its outcome becomes the HTTP response.
// @Summary Receive a payment invoke event
// @Description Dispatches a shipping update or payment completion into the checkout state machine
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param invoke body dto.InvokeRequest true "Invoke event"
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/invoke [post]
func (c *InvokeController) Receive(ctx *gin.Context) {
	var req dto.InvokeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoke event", err.Error()))
		return
	}

	start := time.Now()
	defer func() {
		metrics.InvokeDuration.WithLabelValues(req.Name).Observe(time.Since(start).Seconds())
	}()

	c.orchestrator.HandleInvoke(ctx.Request.Context(), req.Invoke(), func(err error, body interface{}, status int) {
		if err != nil {
			ctx.JSON(status, dto.NewErrorResponse(status, err.Error(), ""))
			return
		}
		ctx.JSON(status, body)
	})
}
