package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/metrics"
)

// Dialog names the orchestrator resumes conversations into
const (
	ReceiptDialog = "checkout_receipt"
	FailedDialog  = "checkout_failed"
)

// ErrUnknownOperation occurs when an invoke carries an unsupported name
var ErrUnknownOperation = errors.New("unknown invoke operation")

// ReplyFunc delivers the single reply of an invoke round-trip back to the
// invoking channel
type ReplyFunc func(err error, body interface{}, status int)

// ConversationResumer opens a dialog at an explicit address. The invoke path
// has no ambient request context, so resumption must be addressed entirely
// by the stored descriptor.
type ConversationResumer interface {
	BeginDialog(ctx context.Context, addr conversation.Address, dialog string, args map[string]interface{}) error
}

// PaymentProcessor is the external charging contract
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, req *payment.Request, resp *payment.Response) (*payment.ChargeResult, error)
}

// Orchestrator is the checkout state machine. It dispatches invoke events
// by operation, drives the calculator and the payment processor, and on
// completion resumes the conversation into a receipt or failure dialog.
//
// Store writes are confined here: clearing the correlation entry happens
// exactly once per terminated checkout, and the reply to the invoke channel
// is issued exactly once per event.
type Orchestrator struct {
	correlator *Correlator
	calculator *Calculator
	processor  PaymentProcessor
	store      conversation.Store
	resumer    ConversationResumer
	logger     logger.Logger
}

// NewOrchestrator wires the checkout state machine
func NewOrchestrator(correlator *Correlator, calculator *Calculator, processor PaymentProcessor, store conversation.Store, resumer ConversationResumer, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		correlator: correlator,
		calculator: calculator,
		processor:  processor,
		store:      store,
		resumer:    resumer,
		logger:     log,
	}
}

// HandleInvoke processes one invoke event. reply is called exactly once,
// whatever path the event takes.
func (o *Orchestrator) HandleInvoke(ctx context.Context, inv *Invoke, reply ReplyFunc) {
	reply = replyOnce(o.logger, reply)

	o.logger.Info("Processing invoke event",
		"operation", inv.Name,
		"channel_id", inv.RelatesTo.ChannelID,
		"conversation_id", inv.RelatesTo.ConversationID)

	res, err := o.correlator.Resolve(ctx, inv)
	if err != nil {
		// ordering anomaly or storage failure: drop with an error, resume
		// nothing, touch nothing
		o.logger.Warn("Could not correlate invoke event", "operation", inv.Name, "error", err)
		metrics.InvokeCounter.WithLabelValues(inv.Name, "not_found").Inc()
		reply(err, nil, http.StatusNotFound)
		return
	}

	switch inv.Name {
	case payment.OperationUpdateShippingAddress, payment.OperationUpdateShippingOption:
		o.handleShippingUpdate(ctx, inv, res, reply)

	case payment.OperationComplete:
		o.handleComplete(ctx, inv, res, reply)

	default:
		o.logger.Warn("Unknown invoke operation", "operation", inv.Name)
		metrics.InvokeCounter.WithLabelValues(inv.Name, "unknown").Inc()
		reply(fmt.Errorf("%w: %s", ErrUnknownOperation, inv.Name), nil, http.StatusBadRequest)
	}
}

// handleShippingUpdate recalculates the request for a changed address or
// option and returns it on the invoke reply channel. The conversation stays
// awaiting payment; no store write happens on this path unless the
// calculation fails hard.
func (o *Orchestrator) handleShippingUpdate(ctx context.Context, inv *Invoke, res *Resolution, reply ReplyFunc) {
	var req payment.Request
	if err := json.Unmarshal(inv.Value, &req); err != nil {
		o.fail(ctx, inv, res, reply, fmt.Errorf("malformed payment request: %w", err))
		return
	}

	updated, err := o.calculator.ValidateAndCalculate(ctx, &req, req.ShippingAddress, req.ShippingOption)
	if err != nil {
		o.fail(ctx, inv, res, reply, err)
		return
	}

	metrics.InvokeCounter.WithLabelValues(inv.Name, "ok").Inc()
	reply(nil, updated, http.StatusOK)
}

// handleComplete runs the final calculation, charges the payment and
// resumes the conversation into the receipt dialog
func (o *Orchestrator) handleComplete(ctx context.Context, inv *Invoke, res *Resolution, reply ReplyFunc) {
	var complete payment.CompletePayload
	if err := json.Unmarshal(inv.Value, &complete); err != nil {
		o.fail(ctx, inv, res, reply, fmt.Errorf("malformed payment response: %w", err))
		return
	}

	req := complete.PaymentRequest
	resp := complete.PaymentResponse

	updated, err := o.calculator.ValidateAndCalculate(ctx, &req, resp.ShippingAddress, resp.ShippingOption)
	if err != nil {
		o.fail(ctx, inv, res, reply, err)
		return
	}

	chargeResult, err := o.processor.ProcessPayment(ctx, updated, &resp)
	if err != nil {
		o.fail(ctx, inv, res, reply, err)
		return
	}

	o.logger.Info("Payment completed",
		"cart_id", res.CartID,
		"order_id", chargeResult.OrderID,
		"user_id", res.UserID)
	metrics.InvokeCounter.WithLabelValues(inv.Name, "ok").Inc()

	reply(nil, map[string]string{"result": "success"}, http.StatusOK)

	o.clearCorrelation(ctx, res)

	if err := o.resumer.BeginDialog(ctx, res.Address, ReceiptDialog, map[string]interface{}{
		"paymentRequest": updated,
		"chargeResult":   chargeResult,
	}); err != nil {
		o.logger.Error("Failed to resume conversation with receipt",
			"error", err, "conversation_id", res.Address.ConversationID)
	}
}

// fail terminates the checkout: one error reply, correlation cleared, and
// the conversation resumed into the failure dialog with the message
func (o *Orchestrator) fail(ctx context.Context, inv *Invoke, res *Resolution, reply ReplyFunc, cause error) {
	o.logger.Warn("Checkout failed", "operation", inv.Name, "cart_id", res.CartID, "error", cause)
	metrics.InvokeCounter.WithLabelValues(inv.Name, "failed").Inc()

	status := http.StatusInternalServerError
	if errors.Is(cause, payment.ErrAddressInvalid) || errors.Is(cause, payment.ErrShippingOptionInvalid) {
		status = http.StatusBadRequest
	}
	reply(cause, nil, status)

	o.clearCorrelation(ctx, res)

	if err := o.resumer.BeginDialog(ctx, res.Address, FailedDialog, map[string]interface{}{
		"errorMessage": cause.Error(),
	}); err != nil {
		o.logger.Error("Failed to resume conversation with failure dialog",
			"error", err, "conversation_id", res.Address.ConversationID)
	}
}

// clearCorrelation deletes the correlation token so a duplicate invoke for
// the same cart resolves to not-found instead of stale data
func (o *Orchestrator) clearCorrelation(ctx context.Context, res *Resolution) {
	delete(res.Data.ConversationData, CartIDKey)
	delete(res.Data.ConversationData, res.CartID)
	delete(res.Data.ConversationData, IssuedKey(res.CartID))

	if err := o.store.SetData(ctx, res.Address, res.Data); err != nil {
		o.logger.Error("Failed to clear correlation data",
			"error", err, "cart_id", res.CartID)
	}
}

// replyOnce guards the invoke reply channel: most channels treat a double
// reply as a protocol violation, so extra calls are dropped and logged
func replyOnce(log logger.Logger, reply ReplyFunc) ReplyFunc {
	done := false
	return func(err error, body interface{}, status int) {
		if done {
			log.Error("Duplicate invoke reply suppressed", "status", status)
			return
		}
		done = true
		reply(err, body, status)
	}
}
