package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"coloring-studio-backend-go/internal/core"
	"coloring-studio-backend-go/internal/models"
)

const minPromptLength = 3

// quotaExceededMessage is part of the API contract: the UI matches this exact
// phrase to trigger the upgrade prompt.
const quotaExceededMessage = "Free generation limit reached. Please upgrade to Pro."

// GenerationHandler handles image generation and entitlement lookups.
type GenerationHandler struct {
	generationService core.GenerationService
	freeLimit         int64
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(gs core.GenerationService, freeLimit int64) *GenerationHandler {
	return &GenerationHandler{generationService: gs, freeLimit: freeLimit}
}

// mapGenerationErrorToStatus maps errors from core.GenerationService to HTTP
// status codes and the shared response shape.
func mapGenerationErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrEntitlementNotFound):
		c.JSON(http.StatusNotFound, StatusResponse{Success: false, Message: "User profile not found."})
	case errors.Is(err, core.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, StatusResponse{Success: false, Message: quotaExceededMessage})
	case errors.Is(err, core.ErrGatewayUnavailable):
		// Upstream failure; the client is responsible for letting the user retry.
		log.Printf("Generation gateway error: %v", err)
		c.JSON(http.StatusBadGateway, StatusResponse{Success: false, Message: "Image generation failed. Please try again."})
	default:
		log.Printf("Internal Server Error in GenerationHandler: %v", err)
		c.JSON(http.StatusInternalServerError, StatusResponse{Success: false, Message: err.Error()})
	}
}

// GenerateImage handles POST /generate-image.
func (h *GenerationHandler) GenerateImage(c *gin.Context) {
	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}
	if len(req.Prompt) < minPromptLength {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Prompt must be at least 3 characters long."})
		return
	}

	if !ensureRequestUserMatchesToken(c, req.UserID) {
		return
	}

	artifact, err := h.generationService.Generate(c.Request.Context(), req.UserID, req.Prompt)
	if err != nil {
		mapGenerationErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateImageResponse{
		Success: true,
		Message: "Image generated successfully.",
		Image: &ArtifactResponse{
			ImageURL: artifact.ImageURL,
			Prompt:   artifact.Prompt,
		},
	})
}

// GetEntitlement handles GET /api/v1/users/:userId/entitlement.
// Read-only lookup so the client can render remaining free generations and
// subscription state.
func (h *GenerationHandler) GetEntitlement(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}

	if !ensureRequestUserMatchesToken(c, userID) {
		return
	}

	entitlement, err := h.generationService.GetEntitlement(c.Request.Context(), userID)
	if err != nil {
		mapGenerationErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, EntitlementResponse{
		Success: true,
		Entitlement: EntitlementInfo{
			UserID:          entitlement.UserID,
			IsSubscribed:    entitlement.IsSubscribed,
			GenerationCount: entitlement.GenerationCount,
			FreeLimit:       h.freeLimit,
		},
	})
}
