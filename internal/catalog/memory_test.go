package catalog

import (
	"context"
	"errors"
	"testing"

	"skincare-advisor/internal/models"
)

func seeded(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	if err := Seed(context.Background(), s); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	if err := Seed(ctx, s); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	n, _ := s.CountProducts(ctx)
	if want := int64(len(DemoProducts())); n != want {
		t.Errorf("count = %d, want %d", n, want)
	}

	products, _ := s.ListProducts(ctx)
	for i, p := range products {
		if p.ID != int64(i+1) {
			t.Errorf("product %d has id %d", i, p.ID)
		}
	}
}

func TestGetProduct(t *testing.T) {
	s := seeded(t)

	p, err := s.GetProduct(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if p.Name != "Niacinamide 10% + Zinc 1%" {
		t.Errorf("name = %q", p.Name)
	}

	if _, err := s.GetProduct(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateProductsKeepsExplicitIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.CreateProducts(ctx, []models.Product{{ID: 10, Name: "a"}, {Name: "b"}}); err != nil {
		t.Fatal(err)
	}
	p, err := s.GetProduct(ctx, 11)
	if err != nil || p.Name != "b" {
		t.Errorf("GetProduct(11) = %+v, %v", p, err)
	}
}

func TestUpsertFeedback(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	steps := []struct {
		fb        models.Feedback
		wantAvg   float64
		wantCount int
	}{
		{models.Feedback{UserID: 1, ProductID: 2, Rating: 5}, 5, 1},
		{models.Feedback{UserID: 2, ProductID: 2, Rating: 4}, 4.5, 2},
		{models.Feedback{UserID: 3, ProductID: 2, Rating: 4}, 4.3, 3},
		// resubmission replaces the earlier rating
		{models.Feedback{UserID: 1, ProductID: 2, Rating: 1, Text: "changed my mind"}, 3, 3},
	}

	for _, step := range steps {
		got, err := s.UpsertFeedback(ctx, step.fb)
		if err != nil {
			t.Fatalf("UpsertFeedback(%+v): %v", step.fb, err)
		}
		if got.Rating != step.wantAvg || got.ReviewCount != step.wantCount {
			t.Errorf("after %+v: got %+v, want %.1f/%d", step.fb, got, step.wantAvg, step.wantCount)
		}
	}

	p, _ := s.GetProduct(ctx, 2)
	if p.Rating != 3 || p.ReviewCount != 3 {
		t.Errorf("product aggregate = %.1f/%d", p.Rating, p.ReviewCount)
	}

	all, _ := s.ListFeedback(ctx)
	if len(all) != 3 {
		t.Fatalf("feedback rows = %d, want 3", len(all))
	}
	if all[0].Rating != 1 || all[0].Text != "changed my mind" {
		t.Errorf("row not replaced in place: %+v", all[0])
	}

	mine, _ := s.ListUserFeedback(ctx, 3)
	if len(mine) != 1 || mine[0].ProductID != 2 {
		t.Errorf("ListUserFeedback(3) = %+v", mine)
	}
}

func TestUpsertFeedbackUnknownProduct(t *testing.T) {
	s := seeded(t)
	_, err := s.UpsertFeedback(context.Background(), models.Feedback{UserID: 1, ProductID: 404, Rating: 3})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if all, _ := s.ListFeedback(context.Background()); len(all) != 0 {
		t.Errorf("feedback stored for unknown product: %+v", all)
	}
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{4.25, 4.3},
		{13.0 / 3, 4.3},
		{11.0 / 3, 3.7},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundRating(tt.in); got != tt.want {
			t.Errorf("roundRating(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
