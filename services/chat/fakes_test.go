package chat

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pitchbook/models"
)

type fakeProductRepo struct {
	products []models.Product
	err      error
}

func (f *fakeProductRepo) GetAll() ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeProductRepo) GetByName(name string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	lower := strings.ToLower(name)
	for i := range f.products {
		if strings.Contains(strings.ToLower(f.products[i].Name), lower) {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetTopSelling(limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	sorted := append([]models.Product{}, f.products...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TotalSold > sorted[j].TotalSold })
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

type fakePitchRepo struct {
	pitches []models.Pitch
	err     error
}

func (f *fakePitchRepo) GetAll() ([]models.Pitch, error) {
	return f.pitches, f.err
}

type fakeWeatherService struct {
	desc string
	err  error
}

func (f *fakeWeatherService) GetCurrentWeather(ctx context.Context, city string) (string, error) {
	return f.desc, f.err
}

type stubClassifier struct {
	res   *models.IntentResponse
	err   error
	calls int
}

func (s *stubClassifier) Classify(ctx context.Context, userText string) (*models.IntentResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.res == nil {
		return models.NewIntentResponse(), nil
	}
	// Hand out a shallow copy so dispatch mutations don't leak across calls.
	cp := *s.res
	cp.Data = map[string]interface{}{}
	for k, v := range s.res.Data {
		cp.Data[k] = v
	}
	return &cp, nil
}

type stubTagger struct {
	tags   []string
	err    error
	format string
}

func (s *stubTagger) TagImage(ctx context.Context, image []byte, format string) ([]string, error) {
	s.format = format
	return s.tags, s.err
}

var errFakeDown = errors.New("collaborator down")

func testProducts() []models.Product {
	return []models.Product{
		{
			ID:    "p1",
			Name:  "Nike Air Max",
			Price: 2000000,
			Variants: []models.ProductVariant{
				{Size: "40", Quantity: 5},
				{Size: "41", Quantity: 0},
			},
			TotalSold: 10,
		},
		{
			ID:          "p2",
			Name:        "Adidas Predator",
			Price:       1500000,
			SalePercent: 20,
			SalePrice:   1200000,
			Variants: []models.ProductVariant{
				{Size: "42", Quantity: 3},
			},
			TotalSold: 0,
		},
		{
			ID:        "p3",
			Name:      "Bitis Hunter",
			Price:     500000,
			TotalSold: 50,
		},
	}
}

func testPitches() []models.Pitch {
	return []models.Pitch{
		{ID: "s1", Name: "Sân A1", Type: models.PitchTypeFive, Price: 300000},
		{ID: "s2", Name: "Sân A2", Type: models.PitchTypeFive, Price: 300000},
		{ID: "s3", Name: "Sân A3", Type: models.PitchTypeFive, Price: 350000},
		{ID: "s4", Name: "Sân B1", Type: models.PitchTypeSeven, Price: 500000},
		{ID: "s5", Name: "Sân B2", Type: models.PitchTypeSeven, Price: 500000},
		{ID: "s6", Name: "Sân C1", Type: models.PitchTypeEleven, Price: 900000},
	}
}
