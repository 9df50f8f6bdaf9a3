package core

import (
	"context"
	"fmt"

	"coloring-studio-backend-go/internal/db"
	"coloring-studio-backend-go/internal/models"
)

// fakeEntitlementRepo is an in-memory EntitlementRepository for service tests.
type fakeEntitlementRepo struct {
	entitlements map[string]*models.Entitlement
	artifacts    map[string][]*models.Artifact

	setSubscribedCalls int
	incrementCalls     int

	getErr       error
	setErr       error
	incrementErr error
	recordErr    error
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{
		entitlements: make(map[string]*models.Entitlement),
		artifacts:    make(map[string][]*models.Artifact),
	}
}

func (f *fakeEntitlementRepo) GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ent, ok := f.entitlements[userID]
	if !ok {
		return nil, fmt.Errorf("entitlement for user '%s' not found: %w", userID, db.ErrNotFound)
	}
	cp := *ent
	return &cp, nil
}

func (f *fakeEntitlementRepo) SetSubscribed(ctx context.Context, userID, paymentOrderID, paymentID string) error {
	if f.setErr != nil {
		return f.setErr
	}
	ent, ok := f.entitlements[userID]
	if !ok {
		return fmt.Errorf("entitlement for user '%s' not found: %w", userID, db.ErrNotFound)
	}
	f.setSubscribedCalls++
	ent.IsSubscribed = true
	ent.LastPaymentOrderID = paymentOrderID
	ent.LastPaymentID = paymentID
	return nil
}

func (f *fakeEntitlementRepo) IncrementGenerationCount(ctx context.Context, userID string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	ent, ok := f.entitlements[userID]
	if !ok {
		return fmt.Errorf("entitlement for user '%s' not found: %w", userID, db.ErrNotFound)
	}
	f.incrementCalls++
	ent.GenerationCount++
	return nil
}

func (f *fakeEntitlementRepo) RecordArtifact(ctx context.Context, userID, imageURL, prompt string) (*models.Artifact, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	artifact := &models.Artifact{
		ID:       fmt.Sprintf("artifact-%d", len(f.artifacts[userID])+1),
		ImageURL: imageURL,
		Prompt:   prompt,
	}
	f.artifacts[userID] = append(f.artifacts[userID], artifact)
	return artifact, nil
}

var _ db.EntitlementRepository = (*fakeEntitlementRepo)(nil)

// fakeGateway is a canned GenerationGateway for service tests.
type fakeGateway struct {
	imageURL string
	err      error
	calls    int
}

func (f *fakeGateway) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.imageURL, nil
}

var _ GenerationGateway = (*fakeGateway)(nil)
