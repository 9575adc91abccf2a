package accounts

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"skincare-advisor/internal/models"
)

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[int64]Account
	byEmail  map[string]int64
	profiles map[int64]models.Profile
	nextID   int64

	lifestyles     map[int64]map[string]any
	routines       map[int64]models.Routine
	progress       map[int64][]models.ProgressEntry
	nextProgressID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[int64]Account),
		byEmail:  make(map[string]int64),
		profiles: make(map[int64]models.Profile),
		nextID:   1,

		lifestyles:     make(map[int64]map[string]any),
		routines:       make(map[int64]models.Routine),
		progress:       make(map[int64][]models.ProgressEntry),
		nextProgressID: 1,
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[a.Email]; taken {
		return ErrEmailTaken
	}
	a.ID = s.nextID
	a.CreatedAt = time.Now().UTC()
	s.nextID++

	s.accounts[a.ID] = *a
	s.byEmail[a.Email] = a.ID
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	a := s.accounts[id]
	return &a, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := a.User
	return &u, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[userID]; !ok {
		return nil, ErrNotFound
	}
	p, ok := s.profiles[userID]
	if !ok {
		p = *emptyProfile(userID)
	}
	p.SkinConcerns = slices.Clone(p.SkinConcerns)
	p.Allergies = slices.Clone(p.Allergies)
	p.Lifestyle = maps.Clone(s.lifestyles[userID])
	return &p, nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[p.UserID]; !ok {
		return ErrNotFound
	}
	if p.SkinConcerns == nil {
		p.SkinConcerns = []models.SkinConcern{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	p.SkinConcerns = slices.Clone(p.SkinConcerns)
	p.Allergies = slices.Clone(p.Allergies)
	p.Lifestyle = nil
	s.profiles[p.UserID] = p
	return nil
}

func (s *MemoryStore) SaveLifestyle(_ context.Context, userID int64, lifestyle map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[userID]; !ok {
		return ErrNotFound
	}
	s.lifestyles[userID] = maps.Clone(lifestyle)
	return nil
}

func (s *MemoryStore) UpdatePasswordHash(_ context.Context, userID int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	s.accounts[userID] = a
	return nil
}

func (s *MemoryStore) GetRoutine(_ context.Context, userID int64) (*models.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[userID]; !ok {
		return nil, ErrNotFound
	}
	r := s.routines[userID]
	return &models.Routine{Morning: nonNilMap(maps.Clone(r.Morning)), Evening: nonNilMap(maps.Clone(r.Evening))}, nil
}

func (s *MemoryStore) SaveRoutine(_ context.Context, userID int64, r models.Routine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[userID]; !ok {
		return ErrNotFound
	}
	s.routines[userID] = models.Routine{Morning: maps.Clone(r.Morning), Evening: maps.Clone(r.Evening)}
	return nil
}

func (s *MemoryStore) AddProgress(_ context.Context, e *models.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[e.UserID]; !ok {
		return ErrNotFound
	}
	e.ID = s.nextProgressID
	s.nextProgressID++

	stored := *e
	stored.Concerns = slices.Clone(e.Concerns)
	stored.SkinAnalysis = maps.Clone(e.SkinAnalysis)
	s.progress[e.UserID] = append(s.progress[e.UserID], stored)
	return nil
}

func (s *MemoryStore) ListProgress(_ context.Context, userID int64) ([]models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[userID]; !ok {
		return nil, ErrNotFound
	}
	out := slices.Clone(s.progress[userID])
	if out == nil {
		out = []models.ProgressEntry{}
	}
	sortProgress(out)
	return out, nil
}
