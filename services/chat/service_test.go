package chat

import (
	"context"
	"testing"
	"time"

	"pitchbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(classifier *stubClassifier) (*DefaultChatService, *MemoryContextStore) {
	products := &fakeProductRepo{products: testProducts()}
	pitches := &fakePitchRepo{pitches: testPitches()}
	store := NewMemoryContextStore(0)

	dispatcher := NewDispatcher(products, store, &fakeWeatherService{desc: "trời quang, 30°C"}, "Hà Nội")
	rules := NewRuleEngine(products, pitches)
	svc := NewDefaultChatService(classifier, classifier, nil, dispatcher, rules)
	return svc, store
}

func TestHandleChatGreetingSkipsClassifier(t *testing.T) {
	classifier := &stubClassifier{}
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "Xin chào shop", "s1")
	assert.Equal(t, welcomeMessage, res.Message)
	assert.Zero(t, classifier.calls)
}

func TestHandleChatPitchTypesSkipsClassifier(t *testing.T) {
	classifier := &stubClassifier{}
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "Có bao nhiêu loại sân?", "s1")
	assert.Contains(t, res.Message, "3 loại sân")
	assert.Contains(t, res.Message, "sân 5")
	assert.Zero(t, classifier.calls)
}

func TestHandleChatCheapestProductScenario(t *testing.T) {
	intent := models.NewIntentResponse()
	intent.Data["action"] = "cheapest_product"
	classifier := &stubClassifier{res: intent}
	svc, store := newTestService(classifier)
	ctx := context.Background()

	res := svc.HandleChat(ctx, "Sản phẩm nào rẻ nhất?", "s1")
	assert.Contains(t, res.Message, "Bitis Hunter")
	assert.Contains(t, res.Message, "500000")
	assert.Equal(t, 1, classifier.calls)

	sc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sc.LastProduct)
	assert.Equal(t, "Bitis Hunter", sc.LastProduct.Name)
}

func TestHandleChatClassifierFailureDegrades(t *testing.T) {
	classifier := &stubClassifier{err: ErrClassifierUnavailable}
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "Tư vấn giúp mình", "s1")
	require.NotNil(t, res)
	assert.Equal(t, cannotUnderstandMessage, res.Message)
	assert.Empty(t, res.Action())
}

func TestHandleChatWeatherRouted(t *testing.T) {
	intent := models.NewIntentResponse()
	intent.Data["action"] = "get_weather"
	intent.Data["city"] = "Huế"
	classifier := &stubClassifier{res: intent}
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "Thời tiết Huế thế nào?", "s1")
	assert.Contains(t, res.Message, "Huế")
	assert.Contains(t, res.Message, "trời quang")
}

func TestHandleChatLegacyFallback(t *testing.T) {
	classifier := &stubClassifier{} // no action resolved
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "đôi nào bán chạy nhất shop", "s1")
	assert.Contains(t, res.Message, "Bitis Hunter")
	assert.Equal(t, 1, classifier.calls)
}

func TestHandleChatDefaultFallbackMessage(t *testing.T) {
	classifier := &stubClassifier{}
	svc, _ := newTestService(classifier)

	res := svc.HandleChat(context.Background(), "kể chuyện cười đi", "s1")
	assert.Equal(t, defaultFallbackMessage, res.Message)
}

func TestHandleChatNoSuchSizeScenario(t *testing.T) {
	intent := models.NewIntentResponse()
	intent.Data["action"] = "check_size"
	intent.Data["size"] = "42"
	classifier := &stubClassifier{res: intent}
	svc, store := newTestService(classifier)
	ctx := context.Background()

	nike := testProducts()[0]
	require.NoError(t, store.Set(ctx, "s1", &models.SessionContext{LastProduct: &nike}))

	res := svc.HandleChat(ctx, "Có size 42 không?", "s1")
	assert.Contains(t, res.Message, "Nike Air Max")
	assert.Contains(t, res.Message, "không có size 42")
}

func TestHandleChatPrepareOrderScenario(t *testing.T) {
	intent := models.NewIntentResponse()
	intent.Data["action"] = "prepare_order"
	classifier := &stubClassifier{res: intent}
	svc, store := newTestService(classifier)
	ctx := context.Background()

	nike := testProducts()[0]
	require.NoError(t, store.Set(ctx, "s1", &models.SessionContext{LastProduct: &nike, LastSize: "40"}))

	res := svc.HandleChat(ctx, "Chốt đơn", "s1")
	assert.Equal(t, "ready_to_order", res.Action())
	assert.Equal(t, "40", res.Data["selectedSize"])
	assert.Contains(t, res.Message, "Nike Air Max")
}

func TestTagProductImageUsesDedicatedTagger(t *testing.T) {
	tagger := &stubTagger{tags: []string{"giày đá bóng", "Nike"}}
	classifier := &stubClassifier{}

	products := &fakeProductRepo{products: testProducts()}
	store := NewMemoryContextStore(0)
	dispatcher := NewDispatcher(products, store, &fakeWeatherService{}, "Hà Nội")
	rules := NewRuleEngine(products, &fakePitchRepo{pitches: testPitches()})
	svc := NewDefaultChatService(classifier, classifier, tagger, dispatcher, rules)

	tags, err := svc.TagProductImage(context.Background(), []byte{0xff, 0xd8}, "jpeg")
	require.NoError(t, err)
	assert.Equal(t, []string{"giày đá bóng", "Nike"}, tags)
	assert.Equal(t, "jpeg", tagger.format)
	// Tagging never goes through the intent classifiers.
	assert.Zero(t, classifier.calls)
}

func TestExtractBookingDeterministicFallback(t *testing.T) {
	classifier := &stubClassifier{err: ErrClassifierUnavailable}
	svc, _ := newTestService(classifier)

	res := svc.ExtractBooking(context.Background(), "Đặt sân lúc 19h ngày mai")
	wantDate := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Equal(t, wantDate, res.BookingDate)
	assert.Equal(t, []int{14}, res.SlotList)
	assert.NotEmpty(t, res.Message)
}

func TestExtractBookingPromptsWhenNothingResolved(t *testing.T) {
	classifier := &stubClassifier{err: ErrClassifierUnavailable}
	svc, _ := newTestService(classifier)

	res := svc.ExtractBooking(context.Background(), "cho mình hỏi chút")
	assert.Equal(t, bookingPromptMessage, res.Message)
	assert.Empty(t, res.BookingDate)
	assert.Empty(t, res.SlotList)
}
