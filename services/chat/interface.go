package chat

import (
	"context"

	"pitchbook/models"
)

// Service is the chat entry point consumed by the HTTP layer.
type Service interface {
	// HandleChat processes one user turn. Every path, including classifier
	// and collaborator failures, yields a response with a non-empty Message.
	HandleChat(ctx context.Context, text, sessionID string) *models.IntentResponse
	// ExtractBooking resolves booking date, slots and pitch type from free
	// text, without shop-action dispatch.
	ExtractBooking(ctx context.Context, text string) *models.IntentResponse
	// TagProductImage returns descriptive tags for a product photo.
	TagProductImage(ctx context.Context, image []byte, format string) ([]string, error)
}

// Classifier is the external-model adapter contract.
type Classifier interface {
	Classify(ctx context.Context, userText string) (*models.IntentResponse, error)
}

// ImageTagger is the image-tagging side of the shop classifier.
type ImageTagger interface {
	TagImage(ctx context.Context, image []byte, format string) ([]string, error)
}

// SessionContextStore keeps per-session conversational context. Entries for
// unknown sessions read back as the zero context; writes are last-write-wins.
type SessionContextStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionContext, error)
	Set(ctx context.Context, sessionID string, sc *models.SessionContext) error
}
