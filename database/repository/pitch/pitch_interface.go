package pitchRepo

import (
	"pitchbook/models"
)

// PitchRepository defines the read surface the chat core consumes.
type PitchRepository interface {
	// GetAll retrieves all pitches.
	GetAll() ([]models.Pitch, error)
}
