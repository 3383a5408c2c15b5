package chat

import (
	"context"
	"time"

	"pitchbook/models"
	"pitchbook/utils"

	"go.uber.org/zap"
)

const (
	cannotUnderstandMessage = "Xin lỗi, mình chưa hiểu ý bạn lúc này. Bạn diễn đạt lại giúp mình nhé."
	defaultFallbackMessage  = "Mình đã ghi nhận yêu cầu của bạn. Bạn muốn đặt sân hay tìm sản phẩm nào ạ?"
	bookingPromptMessage    = "Bạn muốn đặt sân loại nào, ngày nào và khung giờ nào ạ?"
)

// DefaultChatService implements Service as a fixed-priority decision
// cascade: greeting/pitch-rule short-circuit, external classification,
// weather/shop dispatch, legacy catalog shortcuts, then the current
// response as-is.
type DefaultChatService struct {
	shopClassifier    Classifier
	bookingClassifier Classifier
	tagger            ImageTagger
	dispatcher        *Dispatcher
	rules             *RuleEngine
	logger            *zap.Logger
}

func NewDefaultChatService(shop Classifier, booking Classifier, tagger ImageTagger, dispatcher *Dispatcher, rules *RuleEngine) *DefaultChatService {
	return &DefaultChatService{
		shopClassifier:    shop,
		bookingClassifier: booking,
		tagger:            tagger,
		dispatcher:        dispatcher,
		rules:             rules,
		logger:            utils.GetLogger(),
	}
}

func (s *DefaultChatService) HandleChat(ctx context.Context, text, sessionID string) *models.IntentResponse {
	// Greeting and the deterministic pitch-catalog questions never reach
	// the external model.
	if res := s.rules.Resolve(text); res != nil {
		return res
	}

	res, err := s.shopClassifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("intent classification failed", zap.Error(err))
		res = models.NewIntentResponse()
		res.Message = cannotUnderstandMessage
		return res
	}

	tag := res.Action()
	if tag == string(ActionGetWeather) || IsShopAction(tag) {
		return s.dispatcher.Dispatch(ctx, sessionID, res)
	}

	if out := s.rules.ApplyFallback(text); out != nil {
		return out
	}

	if res.Message == "" {
		res.Message = defaultFallbackMessage
	}
	return res
}

// ExtractBooking resolves booking parameters from free text. When the
// classifier fails or leaves fields empty, the deterministic slot/date
// helpers fill in what they can.
func (s *DefaultChatService) ExtractBooking(ctx context.Context, text string) *models.IntentResponse {
	now := time.Now()

	res, err := s.bookingClassifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("booking extraction failed, using deterministic fallback", zap.Error(err))
		res = models.NewIntentResponse()
	}

	if res.BookingDate == "" {
		if date, ok := RelativeDate(text, now); ok {
			res.BookingDate = date
		}
	}
	if len(res.SlotList) == 0 {
		for _, h := range HoursInText(text) {
			if slot, ok := SlotForHour(h); ok {
				res.SlotList = append(res.SlotList, slot)
			}
		}
	}

	if res.Message == "" {
		if res.BookingDate == "" && len(res.SlotList) == 0 {
			res.Message = bookingPromptMessage
		} else {
			res.Message = "Mình đã ghi nhận yêu cầu đặt sân của bạn."
		}
	}
	return res
}

func (s *DefaultChatService) TagProductImage(ctx context.Context, image []byte, format string) ([]string, error) {
	return s.tagger.TagImage(ctx, image, format)
}
