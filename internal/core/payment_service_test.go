package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coloring-studio-backend-go/internal/config"
	"coloring-studio-backend-go/internal/models"
)

func paymentConfig(secret string) *config.Config {
	return &config.Config{RazorpayKeySecret: secret}
}

func TestVerifyAndUpgradeSuccess(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.entitlements["u1"] = &models.Entitlement{UserID: "u1"}
	svc := NewPaymentService(repo, paymentConfig("s3cr3t"))

	sig := signFor("order_1", "pay_1", "s3cr3t")
	err := svc.VerifyAndUpgrade(context.Background(), "u1", "order_1", "pay_1", sig)
	require.NoError(t, err)

	ent := repo.entitlements["u1"]
	assert.True(t, ent.IsSubscribed)
	assert.Equal(t, "order_1", ent.LastPaymentOrderID)
	assert.Equal(t, "pay_1", ent.LastPaymentID)
	assert.Equal(t, 1, repo.setSubscribedCalls)
}

func TestVerifyAndUpgradeInvalidSignature(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.entitlements["u1"] = &models.Entitlement{UserID: "u1"}
	svc := NewPaymentService(repo, paymentConfig("s3cr3t"))

	err := svc.VerifyAndUpgrade(context.Background(), "u1", "order_1", "pay_1", "deadbeef")
	require.ErrorIs(t, err, ErrInvalidSignature)

	// Entitlement unchanged.
	assert.False(t, repo.entitlements["u1"].IsSubscribed)
	assert.Zero(t, repo.setSubscribedCalls)
}

func TestVerifyAndUpgradeMissingSecret(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.entitlements["u1"] = &models.Entitlement{UserID: "u1"}
	svc := NewPaymentService(repo, paymentConfig(""))

	err := svc.VerifyAndUpgrade(context.Background(), "u1", "order_1", "pay_1", "anything")
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.False(t, repo.entitlements["u1"].IsSubscribed)
}

func TestVerifyAndUpgradeUnknownUser(t *testing.T) {
	repo := newFakeEntitlementRepo()
	svc := NewPaymentService(repo, paymentConfig("s3cr3t"))

	sig := signFor("order_1", "pay_1", "s3cr3t")
	err := svc.VerifyAndUpgrade(context.Background(), "ghost", "order_1", "pay_1", sig)
	require.ErrorIs(t, err, ErrEntitlementNotFound)
}

func TestVerifyAndUpgradeIdempotentReplay(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.entitlements["u1"] = &models.Entitlement{UserID: "u1"}
	svc := NewPaymentService(repo, paymentConfig("s3cr3t"))

	sig := signFor("order_1", "pay_1", "s3cr3t")
	require.NoError(t, svc.VerifyAndUpgrade(context.Background(), "u1", "order_1", "pay_1", sig))
	// Second identical call must succeed without a second write.
	require.NoError(t, svc.VerifyAndUpgrade(context.Background(), "u1", "order_1", "pay_1", sig))

	assert.True(t, repo.entitlements["u1"].IsSubscribed)
	assert.Equal(t, 1, repo.setSubscribedCalls)
}

func TestVerifyAndUpgradeRejectsReusedIdentifiers(t *testing.T) {
	repo := newFakeEntitlementRepo()
	repo.entitlements["u1"] = &models.Entitlement{
		UserID:             "u1",
		IsSubscribed:       true,
		LastPaymentOrderID: "order_1",
		LastPaymentID:      "pay_1",
	}
	svc := NewPaymentService(repo, paymentConfig("s3cr3t"))

	// A valid signature over a different payment pair for an already-upgraded
	// user is surfaced, not silently overwritten.
	sig := signFor("order_2", "pay_2", "s3cr3t")
	err := svc.VerifyAndUpgrade(context.Background(), "u1", "order_2", "pay_2", sig)
	require.ErrorIs(t, err, ErrPaymentReplayed)

	assert.Equal(t, "pay_1", repo.entitlements["u1"].LastPaymentID)
	assert.Zero(t, repo.setSubscribedCalls)
}
