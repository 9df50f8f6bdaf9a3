package core

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature recomputes the Razorpay callback signature and
// compares it to the submitted one. The expected signature is
// HMAC-SHA256(secretKey, orderID + "|" + paymentID), hex-encoded.
//
// The submitted signature arrives from the client and is untrusted; the
// comparison is constant-time so a forger learns nothing from timing. Returns
// false on any mismatch, never an error — a missing secret key is a
// configuration problem the caller must report separately.
func VerifyPaymentSignature(orderID, paymentID, secretKey, submittedSignature string) bool {
	if orderID == "" || paymentID == "" || secretKey == "" || submittedSignature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(submittedSignature))
}
