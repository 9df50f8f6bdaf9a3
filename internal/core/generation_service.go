package core

import (
	"context"
	"errors"
	"fmt"

	"coloring-studio-backend-go/internal/db"
	"coloring-studio-backend-go/internal/models"
)

// Errors returned by the generation service.
var (
	// ErrQuotaExceeded is a business-rule rejection: the user has consumed
	// all free-tier generations and has not upgraded.
	ErrQuotaExceeded = errors.New("free generation limit reached")

	// ErrGatewayUnavailable indicates the external generation webhook timed
	// out or returned a malformed response. Retryable by the user, never
	// retried server-side.
	ErrGatewayUnavailable = errors.New("generation gateway unavailable")
)

// generationService implements the GenerationService interface.
type generationService struct {
	entitlementRepo db.EntitlementRepository
	gateway         GenerationGateway
	freeLimit       int64
}

// NewGenerationService creates a new GenerationService instance.
func NewGenerationService(entitlementRepo db.EntitlementRepository, gateway GenerationGateway, freeLimit int64) GenerationService {
	return &generationService{
		entitlementRepo: entitlementRepo,
		gateway:         gateway,
		freeLimit:       freeLimit,
	}
}

// Generate runs the quota-gated generation flow: load entitlement, enforce
// the free-tier limit (subscribed users bypass it), call the gateway, persist
// the artifact, then charge the counter for free-tier users.
//
// The artifact write and the counter increment are deliberately not atomic
// together: a crash between them records the image without charging the
// quota, which fails in the user's favor. Two concurrent requests at the
// limit boundary can both pass the check and overshoot by one; the increment
// itself is atomic at the storage layer, so the counter never loses updates.
func (s *generationService) Generate(ctx context.Context, userID, prompt string) (*models.Artifact, error) {
	entitlement, err := s.GetEntitlement(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !entitlement.IsSubscribed && entitlement.GenerationCount >= s.freeLimit {
		return nil, fmt.Errorf("%w: user '%s' used %d of %d free generations", ErrQuotaExceeded, userID, entitlement.GenerationCount, s.freeLimit)
	}

	imageURL, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	artifact, err := s.entitlementRepo.RecordArtifact(ctx, userID, imageURL, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist artifact for user '%s': %w", userID, err)
	}

	// Free-tier counting is suspended once paid.
	if !entitlement.IsSubscribed {
		if err := s.entitlementRepo.IncrementGenerationCount(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to charge quota for user '%s': %w", userID, err)
		}
	}

	return artifact, nil
}

// GetEntitlement returns the user's entitlement record, translating the
// repository's not-found into the service-level sentinel.
func (s *generationService) GetEntitlement(ctx context.Context, userID string) (*models.Entitlement, error) {
	entitlement, err := s.entitlementRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s'", ErrEntitlementNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load entitlement for user '%s': %w", userID, err)
	}
	return entitlement, nil
}
