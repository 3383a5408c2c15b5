package chat

import (
	"fmt"
	"sort"
	"strings"

	pitchRepo "pitchbook/database/repository/pitch"
	productRepo "pitchbook/database/repository/product"
	"pitchbook/models"
	"pitchbook/utils"

	"go.uber.org/zap"
)

const (
	welcomeMessage = "Xin chào! Mình là trợ lý của PitchBook. Bạn muốn đặt sân hay tìm sản phẩm nào ạ?"
	outageMessage  = "Xin lỗi, hệ thống đang gặp sự cố. Bạn thử lại sau nhé."
)

// catalogRule is one entry of the deterministic fallback resolver: a keyword
// predicate over the raw (lowercased) text and the responder producing a
// fresh IntentResponse when it fires.
type catalogRule struct {
	name    string
	match   func(lower string) bool
	respond func(lower string) (*models.IntentResponse, error)
}

// RuleEngine answers a fixed set of catalog questions without calling the
// external model. Pitch rules run ahead of any model call; the legacy
// product shortcuts only run when classification yields nothing actionable.
// Within each list, first match wins.
type RuleEngine struct {
	products    productRepo.ProductRepository
	pitches     pitchRepo.PitchRepository
	logger      *zap.Logger
	pitchRules  []catalogRule
	legacyRules []catalogRule
}

func NewRuleEngine(products productRepo.ProductRepository, pitches pitchRepo.PitchRepository) *RuleEngine {
	e := &RuleEngine{
		products: products,
		pitches:  pitches,
		logger:   utils.GetLogger(),
	}

	e.pitchRules = []catalogRule{
		{
			name: "pitch_total_count",
			match: func(lower string) bool {
				if strings.Contains(lower, "mỗi loại") || strings.Contains(lower, "từng loại") {
					return false
				}
				return strings.Contains(lower, "bao nhiêu sân") || (strings.Contains(lower, "tổng số") && strings.Contains(lower, "sân"))
			},
			respond: e.pitchTotalCount,
		},
		{
			name:    "pitch_types",
			match:   func(lower string) bool { return strings.Contains(lower, "loại sân") || (strings.Contains(lower, "các loại") && strings.Contains(lower, "sân")) },
			respond: e.pitchTypes,
		},
		{
			name: "pitch_count_by_type",
			match: func(lower string) bool {
				return (strings.Contains(lower, "mỗi loại") || strings.Contains(lower, "từng loại")) && strings.Contains(lower, "sân")
			},
			respond: e.pitchCountByType,
		},
	}

	// Older keyword shortcuts, kept for the turns where the classifier
	// yields nothing actionable.
	e.legacyRules = []catalogRule{
		{
			name:    "legacy_cheapest",
			match:   func(lower string) bool { return strings.Contains(lower, "rẻ nhất") },
			respond: e.legacyCheapest,
		},
		{
			name:    "legacy_most_expensive",
			match:   func(lower string) bool { return strings.Contains(lower, "đắt nhất") },
			respond: e.legacyMostExpensive,
		},
		{
			name:    "legacy_best_seller",
			match:   func(lower string) bool { return strings.Contains(lower, "bán chạy") },
			respond: e.legacyBestSeller,
		},
		{
			name:    "legacy_stock",
			match:   func(lower string) bool { return strings.Contains(lower, "còn hàng") || strings.Contains(lower, "tồn kho") },
			respond: e.legacyStock,
		},
		{
			name:    "legacy_detail",
			match:   func(lower string) bool { return strings.Contains(lower, "chi tiết") || strings.Contains(lower, "thông tin") },
			respond: e.legacyDetail,
		},
	}
	return e
}

var greetingPhrases = []string{"xin chào", "chào bạn", "chào shop"}
var greetingWords = []string{"hi", "hello", "alo", "chào"}

// Greeting short-circuits the pipeline before any model call.
func (e *RuleEngine) Greeting(text string) *models.IntentResponse {
	lower := strings.ToLower(strings.TrimSpace(text))
	matched := false
	for _, p := range greetingPhrases {
		if strings.Contains(lower, p) {
			matched = true
			break
		}
	}
	if !matched {
		for _, w := range greetingWords {
			if lower == w {
				matched = true
				break
			}
		}
	}
	if !matched {
		return nil
	}
	res := models.NewIntentResponse()
	res.Message = welcomeMessage
	return res
}

// Resolve runs the checks that happen ahead of any model call: greeting
// first, then the pitch-catalog rules. Nil means nothing matched.
func (e *RuleEngine) Resolve(text string) *models.IntentResponse {
	if res := e.Greeting(text); res != nil {
		return res
	}
	return e.apply(e.pitchRules, text)
}

// ApplyFallback runs the legacy product shortcuts used when classification
// yields nothing actionable.
func (e *RuleEngine) ApplyFallback(text string) *models.IntentResponse {
	return e.apply(e.legacyRules, text)
}

func (e *RuleEngine) apply(rules []catalogRule, text string) *models.IntentResponse {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if !r.match(lower) {
			continue
		}
		res, err := r.respond(lower)
		if err != nil {
			e.logger.Error("catalog rule failed", zap.String("rule", r.name), zap.Error(err))
			out := models.NewIntentResponse()
			out.Message = outageMessage
			return out
		}
		if res != nil {
			return res
		}
	}
	return nil
}

func (e *RuleEngine) pitchTotalCount(string) (*models.IntentResponse, error) {
	pitches, err := e.pitches.GetAll()
	if err != nil {
		return nil, err
	}
	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Hiện hệ thống có %d sân bóng.", len(pitches))
	return res, nil
}

func (e *RuleEngine) pitchTypes(string) (*models.IntentResponse, error) {
	pitches, err := e.pitches.GetAll()
	if err != nil {
		return nil, err
	}

	seen := map[models.PitchType]bool{}
	for _, p := range pitches {
		seen[p.Type] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, string(t))
	}
	sort.Strings(types)

	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, models.PitchType(t).DisplayName())
	}

	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Hệ thống hiện có %d loại sân: %s.", len(names), strings.Join(names, ", "))
	return res, nil
}

func (e *RuleEngine) pitchCountByType(string) (*models.IntentResponse, error) {
	pitches, err := e.pitches.GetAll()
	if err != nil {
		return nil, err
	}

	counts := map[models.PitchType]int{}
	for _, p := range pitches {
		counts[p.Type]++
	}

	// Fixed rendering order: 5-a-side, 7-a-side, 11-a-side, then the rest.
	order := []models.PitchType{models.PitchTypeFive, models.PitchTypeSeven, models.PitchTypeEleven}
	parts := []string{}
	for _, t := range order {
		if n, ok := counts[t]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", t.DisplayName(), n))
			delete(counts, t)
		}
	}
	rest := make([]string, 0, len(counts))
	for t := range counts {
		rest = append(rest, string(t))
	}
	sort.Strings(rest)
	for _, t := range rest {
		parts = append(parts, fmt.Sprintf("%s: %d", models.PitchType(t).DisplayName(), counts[models.PitchType(t)]))
	}

	res := models.NewIntentResponse()
	res.Message = "Số sân theo từng loại: " + strings.Join(parts, ", ") + "."
	return res, nil
}

func (e *RuleEngine) legacyCheapest(string) (*models.IntentResponse, error) {
	products, err := e.products.GetAll()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	best := products[0]
	for _, p := range products[1:] {
		if p.Price < best.Price {
			best = p
		}
	}
	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Sản phẩm rẻ nhất hiện nay là %s với giá %.0f₫.", best.Name, best.Price)
	return res, nil
}

func (e *RuleEngine) legacyMostExpensive(string) (*models.IntentResponse, error) {
	products, err := e.products.GetAll()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	best := products[0]
	for _, p := range products[1:] {
		if p.Price > best.Price {
			best = p
		}
	}
	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Sản phẩm đắt nhất hiện nay là %s với giá %.0f₫.", best.Name, best.Price)
	return res, nil
}

func (e *RuleEngine) legacyBestSeller(string) (*models.IntentResponse, error) {
	top, err := e.products.GetTopSelling(1)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, nil
	}
	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Sản phẩm bán chạy nhất hiện nay là %s.", top[0].Name)
	return res, nil
}

func (e *RuleEngine) legacyStock(lower string) (*models.IntentResponse, error) {
	p, err := e.findProductInText(lower)
	if err != nil || p == nil {
		return nil, err
	}
	res := models.NewIntentResponse()
	if p.StockQuantity() > 0 {
		res.Message = fmt.Sprintf("%s hiện vẫn còn hàng tại cửa hàng.", p.Name)
	} else {
		res.Message = fmt.Sprintf("%s hiện đã hết hàng.", p.Name)
	}
	return res, nil
}

func (e *RuleEngine) legacyDetail(lower string) (*models.IntentResponse, error) {
	p, err := e.findProductInText(lower)
	if err != nil || p == nil {
		return nil, err
	}
	res := models.NewIntentResponse()
	res.Message = fmt.Sprintf("Đây là thông tin chi tiết về %s.", p.Name)
	res.Data["product"] = p
	return res, nil
}

// findProductInText scans the catalog for a product whose name appears in the
// text, preferring longer names so "Nike Air Max 97" beats "Nike Air Max".
func (e *RuleEngine) findProductInText(lower string) (*models.Product, error) {
	products, err := e.products.GetAll()
	if err != nil {
		return nil, err
	}
	var best *models.Product
	for i := range products {
		name := strings.ToLower(products[i].Name)
		if name == "" || !strings.Contains(lower, name) {
			continue
		}
		if best == nil || len(products[i].Name) > len(best.Name) {
			best = &products[i]
		}
	}
	return best, nil
}
