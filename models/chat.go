package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Text      string `json:"text"`       // user’s message (typed or voice→text)
	SessionID string `json:"session_id"` // conversation identifier, generated when empty
}

// IntentResponse is the structured query produced for one user turn.
// It carries the resolved booking/shop parameters plus the user-facing reply.
type IntentResponse struct {
	BookingDate string                 `json:"bookingDate,omitempty"` // ISO date, empty = not specified
	SlotList    []int                  `json:"slotList"`              // hour slots 1..18, slot 1 = 06:00–07:00
	PitchType   PitchType              `json:"pitchType"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data"`
}

// NewIntentResponse returns a response with all defaults applied.
func NewIntentResponse() *IntentResponse {
	return &IntentResponse{
		SlotList:  []int{},
		PitchType: PitchTypeAll,
		Data:      map[string]interface{}{},
	}
}

// Action returns the action tag carried in Data, empty when unset.
func (r *IntentResponse) Action() string {
	if r.Data == nil {
		return ""
	}
	tag, _ := r.Data["action"].(string)
	return tag
}

// DataString reads a string value from Data.
func (r *IntentResponse) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data[key].(string)
	return s
}

// SessionContext is the per-conversation memory enabling pronoun
// resolution across turns ("this one", "that size").
type SessionContext struct {
	LastProduct *Product `json:"lastProduct,omitempty"`
	LastSize    string   `json:"lastSize,omitempty"`
}
