package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"coloring-studio-backend-go/internal/models"
)

const (
	usersCollection       = "users"
	generationsCollection = "generations"
)

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreEntitlementRepository implements the EntitlementRepository
// interface using Firestore.
type firestoreEntitlementRepository struct {
	client *firestore.Client
}

// NewFirestoreEntitlementRepository creates a new instance of firestoreEntitlementRepository.
func NewFirestoreEntitlementRepository(client *firestore.Client) EntitlementRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for EntitlementRepository.")
	}
	return &firestoreEntitlementRepository{client: client}
}

// GetByUserID retrieves an entitlement document from Firestore by the user's
// Firebase Auth UID.
func (r *firestoreEntitlementRepository) GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("entitlement for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entitlement for user '%s': %w", userID, err)
	}

	var entitlement models.Entitlement
	if err := docSnap.DataTo(&entitlement); err != nil {
		return nil, fmt.Errorf("failed to decode entitlement data for user '%s': %w", userID, err)
	}
	entitlement.UserID = docSnap.Ref.ID // Ensure ID is populated from the document reference ID

	return &entitlement, nil
}

// SetSubscribed flips the subscription flag and records the payment
// identifiers on the user's entitlement document. Update (rather than Set
// with merge) is used so the write fails with NotFound instead of creating a
// record for a user that never signed up.
func (r *firestoreEntitlementRepository) SetSubscribed(ctx context.Context, userID, paymentOrderID, paymentID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for SetSubscribed operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "isSubscribed", Value: true},
		{Path: "lastPaymentOrderId", Value: paymentOrderID},
		{Path: "lastPaymentId", Value: paymentID},
		{Path: "upgradedAt", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("entitlement for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to set subscription for user '%s': %w", userID, err)
	}
	return nil
}

// IncrementGenerationCount bumps the free-tier counter using Firestore's
// server-side Increment transform, so concurrent requests for the same user
// never lose updates.
func (r *firestoreEntitlementRepository) IncrementGenerationCount(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for IncrementGenerationCount operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "generationCount", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("entitlement for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to increment generation count for user '%s': %w", userID, err)
	}
	return nil
}

// RecordArtifact appends a generated image document to the user's
// "generations" subcollection with an auto-generated ID. CreatedAt is
// handled by the serverTimestamp tag on models.Artifact.
func (r *firestoreEntitlementRepository) RecordArtifact(ctx context.Context, userID, imageURL, prompt string) (*models.Artifact, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for RecordArtifact operation")
	}
	artifact := &models.Artifact{
		ImageURL: imageURL,
		Prompt:   prompt,
	}
	docRef := r.client.Collection(usersCollection).Doc(userID).Collection(generationsCollection).NewDoc()
	artifact.ID = docRef.ID
	if _, err := docRef.Create(ctx, artifact); err != nil {
		return nil, fmt.Errorf("failed to record artifact for user '%s': %w", userID, err)
	}
	return artifact, nil
}
