package core

import (
	"context"

	"coloring-studio-backend-go/internal/models"
)

// PaymentService defines the interface for payment verification and
// entitlement upgrades.
type PaymentService interface {
	// VerifyAndUpgrade checks the submitted Razorpay signature and, if valid,
	// marks the user as subscribed. Safe to call multiple times with the same
	// arguments; a replayed (orderId, paymentId) pair that was already
	// processed is a no-op success.
	VerifyAndUpgrade(ctx context.Context, userID, orderID, paymentID, submittedSignature string) error
}

// GenerationService defines the interface for quota-gated image generation.
type GenerationService interface {
	// Generate enforces the free-tier limit, invokes the external generation
	// gateway, persists the resulting artifact, and charges the quota for
	// non-subscribed users.
	Generate(ctx context.Context, userID, prompt string) (*models.Artifact, error)

	// GetEntitlement returns the user's current entitlement record.
	GetEntitlement(ctx context.Context, userID string) (*models.Entitlement, error)
}

// GenerationGateway defines the interface for the external image-generation
// webhook. Implementations must honor the context deadline and fail fast
// rather than hang.
type GenerationGateway interface {
	Generate(ctx context.Context, prompt string) (imageURL string, err error)
}
