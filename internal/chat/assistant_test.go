package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"skincare-advisor/internal/models"
)

type stubCatalog struct {
	products []models.Product
	err      error
}

func (s stubCatalog) ListProducts(context.Context) ([]models.Product, error) {
	return s.products, s.err
}

type stubProfiles map[int64]string

func (s stubProfiles) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	skinType, ok := s[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.Profile{UserID: userID, SkinType: skinType}, nil
}

func catalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Clear Serum", Brand: "Acme", ProductType: "Serum", SuitableSkinTypes: []string{"dry"}, Concerns: []string{"acne"}, Rating: 4.0},
		{ID: 2, Name: "Spot Serum", Brand: "Zed", ProductType: "serum", SuitableSkinTypes: []string{"oily"}, Concerns: []string{"acne", "oiliness"}, Rating: 4.8, ReviewCount: 12,
			KeyIngredients: []string{"salicylic acid", "zinc", "niacinamide", "tea tree"}},
		{ID: 3, Name: "Foam", Brand: "Acme", ProductType: "cleanser", Concerns: []string{"acne"}, Rating: 4.9},
		{ID: 4, Name: "Hydra Serum", Brand: "Acme", ProductType: "serum", Concerns: []string{"dryness"}, Rating: 5},
	}
}

func TestFAQMatch(t *testing.T) {
	tests := []struct {
		message  string
		question string
		want     bool
	}{
		{"what is retinol?", "what is retinol", true},
		{"what's retinol", "what is retinol", true},
		{"tell me about retinol", "what is retinol", false},
		{"how do i layer my skincare", "how to layer skincare", true},
		{"what order should i apply skincare in", "what order to apply skincare", true},
		{"hi", "how to", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := faqMatch(tt.message, tt.question); got != tt.want {
				t.Errorf("faqMatch(%q, %q) = %v", tt.message, tt.question, got)
			}
		})
	}
}

func TestReplyIntents(t *testing.T) {
	a := NewAssistant(stubCatalog{products: catalog()}, nil)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"faq", "What is retinol?", faq[0].answer},
		{"evening routine", "What's a good evening routine", routineEvening},
		{"morning routine", "morning routine please", routineMorning},
		{"general routine", "which steps matter", routineGeneral},
		{"ingredient lookup", "Tell me the benefits of niacinamide", ingredientInfo[3].info},
		{"ingredient by what is", "what is azelaic acid", ingredientInfo[8].info},
		{"frequency rule", "Is daily sunscreen enough?", frequencyRules[6].answer},
		{"frequency general", "weekly plan", frequencyGeneral},
		{"compatibility pair", "Can I mix retinol and vitamin c?", compatibilityPairs[[2]string{"retinol", "vitamin c"}]},
		{"compatibility reversed key", "combine retinol with benzoyl peroxide", compatibilityPairs[[2]string{"benzoyl peroxide", "retinol"}]},
		{"compatibility general", "can i use retinol with stuff", compatibilityGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Reply(context.Background(), tt.message, nil)
			if err != nil {
				t.Fatalf("Reply: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestReplyUnknownIngredient(t *testing.T) {
	got, err := NewAssistant(stubCatalog{}, nil).Reply(context.Background(), "benefits of snail mucin", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "snail mucin") {
		t.Errorf("got %q", got)
	}
}

func TestReplyRecommendation(t *testing.T) {
	a := NewAssistant(stubCatalog{products: catalog()}, stubProfiles{5: "oily"})

	t.Run("anonymous", func(t *testing.T) {
		got, err := a.Reply(context.Background(), "Can you recommend a serum for acne?", nil)
		if err != nil {
			t.Fatalf("Reply: %v", err)
		}
		first := strings.Index(got, "1. Spot Serum by Zed")
		second := strings.Index(got, "2. Clear Serum by Acme")
		if first < 0 || second < first {
			t.Errorf("unexpected order:\n%s", got)
		}
		if strings.Contains(got, "Foam") || strings.Contains(got, "Hydra") {
			t.Errorf("unexpected product:\n%s", got)
		}
		if !strings.Contains(got, "Key ingredients: salicylic acid, zinc, niacinamide\n") {
			t.Errorf("key ingredients not capped at three:\n%s", got)
		}
	})

	t.Run("saved skin type", func(t *testing.T) {
		uid := int64(5)
		got, err := a.Reply(context.Background(), "recommend a serum for acne", &uid)
		if err != nil {
			t.Fatalf("Reply: %v", err)
		}
		if !strings.Contains(got, "Spot Serum") || strings.Contains(got, "Clear Serum") {
			t.Errorf("profile skin type not applied:\n%s", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		got, err := a.Reply(context.Background(), "recommend a sunscreen for melasma", nil)
		if err != nil {
			t.Fatalf("Reply: %v", err)
		}
		if got != noProducts {
			t.Errorf("got %q", got)
		}
	})
}

func TestReplyCatalogFailure(t *testing.T) {
	a := NewAssistant(stubCatalog{err: errors.New("down")}, nil)
	if _, err := a.Reply(context.Background(), "recommend a cleanser", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestReplyFallbackIsDeterministic(t *testing.T) {
	a := NewAssistant(stubCatalog{}, nil)

	first, err := a.Reply(context.Background(), "blorp zzz", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := a.Reply(context.Background(), "  BLORP zzz ", nil)
	if first != second {
		t.Errorf("replies differ: %q vs %q", first, second)
	}
	if !slices.Contains(fallbackReplies, first) {
		t.Errorf("unexpected reply %q", first)
	}
}
