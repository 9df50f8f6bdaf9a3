package models

import "time"

// Entitlement represents a user's subscription state and free-tier usage.
// The document ID in Firestore is the user's Firebase Auth UID; records are
// created at signup and never deleted by this service.
type Entitlement struct {
	UserID             string    `json:"userId" firestore:"-"` // Firebase Auth UID, will be the document ID
	IsSubscribed       bool      `json:"isSubscribed" firestore:"isSubscribed"`
	GenerationCount    int64     `json:"generationCount" firestore:"generationCount"` // free-tier generations consumed; frozen once subscribed
	LastPaymentOrderID string    `json:"lastPaymentOrderId,omitempty" firestore:"lastPaymentOrderId,omitempty"`
	LastPaymentID      string    `json:"lastPaymentId,omitempty" firestore:"lastPaymentId,omitempty"`
	UpgradedAt         time.Time `json:"upgradedAt,omitempty" firestore:"upgradedAt,omitempty"`
	CreatedAt          time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt          time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
