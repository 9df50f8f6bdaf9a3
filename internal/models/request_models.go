package models

// VerifyPaymentRequest represents the payment callback relayed by the client
// after Razorpay checkout completes. Field names match the gateway's payload.
// All fields are required, but "binding:required" is deliberately not used:
// the handler validates presence itself so that missing fields produce the
// exact "Missing required fields" message rather than a binding error dump.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	UserID            string `json:"userId"`
}

// GenerateImageRequest represents the request body for generating an image.
type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
	UserID string `json:"userId"`
}
