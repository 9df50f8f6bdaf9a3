package models

import "time"

// Artifact represents one generated image, stored append-only in the
// per-user "generations" subcollection.
type Artifact struct {
	ID        string    `json:"id" firestore:"-"` // Firestore document ID
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl"`
	Prompt    string    `json:"prompt" firestore:"prompt"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
