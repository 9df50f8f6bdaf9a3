package core

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignatureKnownVector(t *testing.T) {
	// Precomputed: hex(HMAC-SHA256("s3cr3t", "order_1|pay_1")).
	const knownSignature = "c4ba7785e595b717abd8b4847eaf30e97f23acbdbe1b8f5cbbf17d28d63b068f"

	assert.True(t, VerifyPaymentSignature("order_1", "pay_1", "s3cr3t", knownSignature))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "s3cr3t", "deadbeef"))
}

func TestVerifyPaymentSignatureDeterministic(t *testing.T) {
	sig := signFor("order_42", "pay_42", "test-secret")
	// Same computation done out-of-band with openssl.
	require.Equal(t, "9ba92bf5b1c7748cc212dbcbd4fc5f22c56326b33cca401cf13dc4e93486345b", sig)

	for i := 0; i < 10; i++ {
		assert.True(t, VerifyPaymentSignature("order_42", "pay_42", "test-secret", sig))
	}
}

func TestVerifyPaymentSignatureTamperSensitivity(t *testing.T) {
	sig := signFor("order_1", "pay_1", "s3cr3t")

	// Any single-character mutation of a valid signature must fail.
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "s3cr3t", string(mutated)),
			"mutation at index %d should not verify", i)
	}
}

func TestVerifyPaymentSignatureRejectsWrongInputs(t *testing.T) {
	sig := signFor("order_1", "pay_1", "s3cr3t")

	assert.False(t, VerifyPaymentSignature("order_2", "pay_1", "s3cr3t", sig), "different order ID")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_2", "s3cr3t", sig), "different payment ID")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "other", sig), "different secret")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "s3cr3t", ""), "empty signature")
	assert.False(t, VerifyPaymentSignature("", "pay_1", "s3cr3t", sig), "empty order ID")
	assert.False(t, VerifyPaymentSignature("order_1", "", "s3cr3t", sig), "empty payment ID")
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "", sig), "empty secret")

	// Case-sensitive compare: an uppercased hex digest is not accepted.
	upper := []byte(sig)
	for i, b := range upper {
		if b >= 'a' && b <= 'f' {
			upper[i] = b - 'a' + 'A'
		}
	}
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "s3cr3t", string(upper)))
}
