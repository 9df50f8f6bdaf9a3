package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"coloring-studio-backend-go/internal/core"
	"coloring-studio-backend-go/internal/models"
)

// PaymentHandler handles the payment verification endpoint.
type PaymentHandler struct {
	paymentService core.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps core.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// mapPaymentErrorToStatus maps errors from core.PaymentService to HTTP status
// codes and the shared StatusResponse shape.
func mapPaymentErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidSignature):
		// Generic message on purpose: no hints for forgery attempts.
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Invalid payment signature"})
	case errors.Is(err, core.ErrMissingSecret):
		// Broken deployment, not bad input. Logged distinctly from data errors.
		log.Printf("CONFIG_ERROR in PaymentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, StatusResponse{Success: false, Message: "Server configuration error."})
	case errors.Is(err, core.ErrEntitlementNotFound):
		c.JSON(http.StatusNotFound, StatusResponse{Success: false, Message: "User profile not found."})
	case errors.Is(err, core.ErrPaymentReplayed):
		c.JSON(http.StatusConflict, StatusResponse{Success: false, Message: "Payment already processed."})
	default:
		log.Printf("Internal Server Error in PaymentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, StatusResponse{Success: false, Message: err.Error()})
	}
}

// VerifyPayment handles POST /verify-payment.
// It validates the callback shape, verifies the Razorpay signature, and
// upgrades the user's entitlement. No retries: each invocation is a single
// attempt, and repeated calls with identical arguments are safe.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}

	if !ensureRequestUserMatchesToken(c, req.UserID) {
		return
	}

	err := h.paymentService.VerifyAndUpgrade(
		c.Request.Context(),
		req.UserID,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		mapPaymentErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Payment verified. Welcome to Pro!"})
}
