package models

// PitchType classifies a pitch by player count per side.
type PitchType string

const (
	PitchTypeFive   PitchType = "FIVE_A_SIDE"
	PitchTypeSeven  PitchType = "SEVEN_A_SIDE"
	PitchTypeEleven PitchType = "ELEVEN_A_SIDE"
	PitchTypeAll    PitchType = "ALL"
)

// ParsePitchType coerces a raw value into a known pitch type.
// Unknown values fall back to ALL.
func ParsePitchType(raw string) PitchType {
	switch PitchType(raw) {
	case PitchTypeFive, PitchTypeSeven, PitchTypeEleven, PitchTypeAll:
		return PitchType(raw)
	default:
		return PitchTypeAll
	}
}

// DisplayName renders a pitch type for end users.
func (t PitchType) DisplayName() string {
	switch t {
	case PitchTypeFive:
		return "sân 5"
	case PitchTypeSeven:
		return "sân 7"
	case PitchTypeEleven:
		return "sân 11"
	default:
		return string(t)
	}
}

// Pitch is a bookable sports pitch.
type Pitch struct {
	ID      string    `bson:"id" json:"id"`
	Name    string    `bson:"name" json:"name"`
	Type    PitchType `bson:"type" json:"type"`
	Price   float64   `bson:"price" json:"price"`
	Address string    `bson:"address,omitempty" json:"address,omitempty"`
}
