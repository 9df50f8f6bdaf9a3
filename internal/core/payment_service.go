package core

import (
	"context"
	"errors"
	"fmt"

	"coloring-studio-backend-go/internal/config"
	"coloring-studio-backend-go/internal/db"
)

// Errors returned by the payment service.
var (
	// ErrMissingSecret indicates the Razorpay key secret is absent from the
	// deployment configuration. This is a broken deployment, not bad input,
	// and is reported distinctly from verification failures.
	ErrMissingSecret = errors.New("payment secret key is not configured")

	// ErrInvalidSignature indicates the submitted signature did not match the
	// recomputed HMAC. Kept deliberately detail-free so forgery attempts
	// learn nothing about why verification failed.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrPaymentReplayed indicates the user is already subscribed through a
	// different payment, so a reused identifier pair is rejected rather than
	// silently overwriting the audit fields.
	ErrPaymentReplayed = errors.New("payment already processed")

	// ErrEntitlementNotFound indicates no entitlement record exists for the
	// user. Records are created at signup; this path never auto-creates one.
	ErrEntitlementNotFound = errors.New("entitlement not found")
)

// paymentService implements the PaymentService interface.
type paymentService struct {
	entitlementRepo db.EntitlementRepository
	appConfig       *config.Config
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(entitlementRepo db.EntitlementRepository, appConfig *config.Config) PaymentService {
	return &paymentService{
		entitlementRepo: entitlementRepo,
		appConfig:       appConfig,
	}
}

// VerifyAndUpgrade verifies a Razorpay payment callback and upgrades the
// user's entitlement. Signature verification is deterministic and the upgrade
// write is idempotent, so a client retry after a network blip lands in the
// same end state.
func (s *paymentService) VerifyAndUpgrade(ctx context.Context, userID, orderID, paymentID, submittedSignature string) error {
	if s.appConfig == nil || s.appConfig.RazorpayKeySecret == "" {
		return ErrMissingSecret
	}

	if !VerifyPaymentSignature(orderID, paymentID, s.appConfig.RazorpayKeySecret, submittedSignature) {
		return ErrInvalidSignature
	}

	entitlement, err := s.entitlementRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user '%s'", ErrEntitlementNotFound, userID)
		}
		return fmt.Errorf("failed to load entitlement for user '%s': %w", userID, err)
	}

	if entitlement.IsSubscribed {
		// Identical identifiers mean a harmless replay of the same callback
		// (client retry); the record already reflects this payment.
		if entitlement.LastPaymentOrderID == orderID && entitlement.LastPaymentID == paymentID {
			return nil
		}
		return fmt.Errorf("%w: user '%s' already upgraded via payment '%s'", ErrPaymentReplayed, userID, entitlement.LastPaymentID)
	}

	if err := s.entitlementRepo.SetSubscribed(ctx, userID, orderID, paymentID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user '%s'", ErrEntitlementNotFound, userID)
		}
		return fmt.Errorf("failed to upgrade entitlement for user '%s': %w", userID, err)
	}
	return nil
}
