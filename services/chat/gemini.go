package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pitchbook/models"
	"pitchbook/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	// minCallInterval keeps each adapter instance under ~0.91 requests/second.
	minCallInterval = 1100 * time.Millisecond
	classifyTimeout = 15 * time.Second
)

// GeminiClassifier turns free text (and optionally images) into structured
// intents using a Gemini model. Each instance serializes its remote calls
// through a token-bucket-of-one limiter.
type GeminiClassifier struct {
	model   *genai.GenerativeModel
	limiter *rate.Limiter
	logger  *zap.Logger
}

func newGeminiClassifier(apiKey, modelName, systemPrompt string) (*GeminiClassifier, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &GeminiClassifier{
		model:   model,
		limiter: rate.NewLimiter(rate.Every(minCallInterval), 1),
		logger:  utils.GetLogger(),
	}, nil
}

// NewBookingClassifier builds the classifier extracting booking date, slots
// and pitch type only.
func NewBookingClassifier(apiKey, modelName string) (*GeminiClassifier, error) {
	return newGeminiClassifier(apiKey, modelName, bookingSystemPrompt)
}

// NewShopClassifier builds the combined booking+shop classifier, which also
// resolves data.action, product name, size and quantity.
func NewShopClassifier(apiKey, modelName string) (*GeminiClassifier, error) {
	return newGeminiClassifier(apiKey, modelName, shopSystemPrompt)
}

// NewImageTagger builds the product-photo tagging instance. It needs its own
// system instruction: the classifier instances demand the intent-object JSON
// shape, which would conflict with the tag-array output.
func NewImageTagger(apiKey, modelName string) (*GeminiClassifier, error) {
	return newGeminiClassifier(apiKey, modelName, imageTagSystemPrompt)
}

// Classify sends user text to the model and parses the structured intent.
func (g *GeminiClassifier) Classify(ctx context.Context, userText string) (*models.IntentResponse, error) {
	raw, err := g.generate(ctx, genai.Text(userText))
	if err != nil {
		return nil, err
	}
	res, err := parseIntentJSON(raw)
	if err != nil {
		g.logger.Warn("classifier returned unparseable intent", zap.String("raw", raw), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// TagImage sends an inline image to the model and parses the tag-list shape.
// Only meaningful on instances built with NewImageTagger.
func (g *GeminiClassifier) TagImage(ctx context.Context, image []byte, format string) ([]string, error) {
	raw, err := g.generate(ctx, genai.ImageData(format, image))
	if err != nil {
		return nil, err
	}
	return parseTagList(raw)
}

// parseTagList strips code fences and parses a JSON array of tags.
func parseTagList(raw string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &tags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return tags, nil
}

func (g *GeminiClassifier) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	// Callers arriving faster than minCallInterval block here.
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	cctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(cctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty candidate list", ErrClassifierUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// intentWire is the JSON shape the classifier prompts ask for.
type intentWire struct {
	BookingDate string                 `json:"bookingDate"`
	SlotList    []int                  `json:"slotList"`
	PitchType   string                 `json:"pitchType"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data"`
}

// parseIntentJSON strips code fences, parses the wire shape and normalizes
// it: out-of-range slots are dropped and unknown pitch types coerced to ALL.
func parseIntentJSON(raw string) (*models.IntentResponse, error) {
	cleaned := stripCodeFences(raw)

	var wire intentWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	res := models.NewIntentResponse()
	res.BookingDate = wire.BookingDate
	res.SlotList = SanitizeSlots(wire.SlotList)
	if wire.PitchType != "" {
		res.PitchType = models.ParsePitchType(wire.PitchType)
	}
	res.Message = wire.Message
	if wire.Data != nil {
		res.Data = wire.Data
	}
	return res, nil
}

// stripCodeFences removes leading/trailing Markdown code-fence markers, with
// or without a language tag. Absence of fences is a no-op.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
