package catalog

import (
	"context"
	"sync"
	"time"

	"skincare-advisor/internal/models"
)

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

type feedbackKey struct {
	userID, productID int64
}

// MemoryStore keeps everything in process memory. It backs local runs
// without a database and the handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[int64]int
	nextID   int64

	feedback      []models.Feedback
	feedbackIndex map[feedbackKey]int
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index:         make(map[int64]int),
		feedbackIndex: make(map[feedbackKey]int),
		nextID:        1,
		now:           time.Now,
	}
}

func (s *MemoryStore) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *MemoryStore) CountProducts(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryStore) CreateProducts(_ context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		if i, ok := s.index[p.ID]; ok {
			s.products[i] = p
			continue
		}
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return nil
}

func (s *MemoryStore) ListFeedback(context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, len(s.feedback))
	copy(out, s.feedback)
	return out, nil
}

func (s *MemoryStore) ListUserFeedback(_ context.Context, userID int64) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, 0)
	for _, f := range s.feedback {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpsertFeedback(_ context.Context, fb models.Feedback) (RatingSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi, ok := s.index[fb.ProductID]
	if !ok {
		return RatingSummary{}, ErrNotFound
	}

	key := feedbackKey{fb.UserID, fb.ProductID}
	if i, exists := s.feedbackIndex[key]; exists {
		fb.CreatedAt = s.feedback[i].CreatedAt
		s.feedback[i] = fb
	} else {
		fb.CreatedAt = s.now()
		s.feedbackIndex[key] = len(s.feedback)
		s.feedback = append(s.feedback, fb)
	}

	var sum, count int
	for _, f := range s.feedback {
		if f.ProductID == fb.ProductID {
			sum += f.Rating
			count++
		}
	}

	summary := RatingSummary{
		Rating:      roundRating(float64(sum) / float64(count)),
		ReviewCount: count,
	}
	s.products[pi].Rating = summary.Rating
	s.products[pi].ReviewCount = summary.ReviewCount
	return summary, nil
}
