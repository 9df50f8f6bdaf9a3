package api

// StatusResponse is the discriminated response shape shared by every
// endpoint: the UI renders {success, message} uniformly on all paths.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ArtifactResponse carries a generated image back to the client.
type ArtifactResponse struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

// GenerateImageResponse extends StatusResponse with the generated artifact.
type GenerateImageResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Image   *ArtifactResponse `json:"image,omitempty"`
}

// EntitlementResponse exposes the subscription state and remaining free-tier
// headroom so the client can render an upgrade prompt.
type EntitlementResponse struct {
	Success     bool            `json:"success"`
	Entitlement EntitlementInfo `json:"entitlement"`
}

// EntitlementInfo is the client-facing projection of an entitlement record.
type EntitlementInfo struct {
	UserID          string `json:"userId"`
	IsSubscribed    bool   `json:"isSubscribed"`
	GenerationCount int64  `json:"generationCount"`
	FreeLimit       int64  `json:"freeLimit"`
}
