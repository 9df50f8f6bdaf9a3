package db

import (
	"context"

	"coloring-studio-backend-go/internal/models"
)

// EntitlementRepository defines the interface for entitlement data storage
// operations. All writes are single-document updates scoped to one user.
type EntitlementRepository interface {
	// GetByUserID returns the entitlement record for a user, or an error
	// wrapping ErrNotFound if no record exists. Absence is an error, not a
	// creation trigger: records are created at signup, outside this service.
	GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error)

	// SetSubscribed marks the user as subscribed and records the verified
	// payment identifiers and an upgrade timestamp. Setting isSubscribed=true
	// twice has no additional effect.
	SetSubscribed(ctx context.Context, userID, paymentOrderID, paymentID string) error

	// IncrementGenerationCount atomically increments the user's free-tier
	// counter at the storage layer. Must not be a read-modify-write in
	// handler code, to avoid lost updates under concurrent requests.
	IncrementGenerationCount(ctx context.Context, userID string) error

	// RecordArtifact appends a generated image to the user's artifact
	// subcollection and returns the stored record.
	RecordArtifact(ctx context.Context, userID, imageURL, prompt string) (*models.Artifact, error)
}
