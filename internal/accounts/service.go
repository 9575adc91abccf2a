package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skincare-advisor/internal/auth"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/validation"
)

// Service implements registration, login and profile management on top of
// a Store. Requests are validated before they reach the store.
type Service struct {
	store  Store
	issuer *auth.Issuer
	cost   int
}

func NewService(store Store, issuer *auth.Issuer) *Service {
	return &Service{store: store, issuer: issuer, cost: bcrypt.DefaultCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		User:         models.User{Email: req.Email, Name: strings.TrimSpace(req.Name)},
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, a); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("user_id", a.ID).Msg("User registered")
	return s.token(&a.User)
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	a, err := s.store.UserByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		logging.Ctx(ctx).Warn().Int64("user_id", a.ID).Msg("Failed login attempt")
		return nil, ErrInvalidCredentials
	}
	return s.token(&a.User)
}

func (s *Service) token(u *models.User) (*models.TokenResponse, error) {
	tok, exp, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *Service) User(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

// UpdateProfile replaces the saved profile. Skin type is stored lower-case.
func (s *Service) UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	p.SkinType = strings.ToLower(strings.TrimSpace(p.SkinType))
	if err := validation.Struct(&p); err != nil {
		return nil, err
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.store.GetProfile(ctx, p.UserID)
}

// UpdatePassword replaces the password after checking the current one.
func (s *Service) UpdatePassword(ctx context.Context, userID int64, req models.PasswordUpdateRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	a, err := s.store.UserByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		logging.Ctx(ctx).Warn().Int64("user_id", userID).Msg("Password change with wrong current password")
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int64("user_id", userID).Msg("Password updated")
	return nil
}

func (s *Service) UpdateLifestyle(ctx context.Context, userID int64, lifestyle map[string]any) (map[string]any, error) {
	if err := s.store.SaveLifestyle(ctx, userID, lifestyle); err != nil {
		return nil, err
	}
	return nonNilMap(lifestyle), nil
}

func (s *Service) Routine(ctx context.Context, userID int64) (*models.Routine, error) {
	return s.store.GetRoutine(ctx, userID)
}

// SaveRoutine overwrites the halves present in r and keeps the others.
func (s *Service) SaveRoutine(ctx context.Context, userID int64, r models.Routine) (*models.Routine, error) {
	current, err := s.store.GetRoutine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.Morning != nil {
		current.Morning = r.Morning
	}
	if r.Evening != nil {
		current.Evening = r.Evening
	}
	if err := s.store.SaveRoutine(ctx, userID, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) Progress(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	return s.store.ListProgress(ctx, userID)
}

// AddProgress stores a check-in. A zero date means now; an empty mood is
// recorded as neutral.
func (s *Service) AddProgress(ctx context.Context, e models.ProgressEntry) (*models.ProgressEntry, error) {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if e.Mood == "" {
		e.Mood = "neutral"
	}
	if e.Concerns == nil {
		e.Concerns = []string{}
	}
	if err := validation.Struct(&e); err != nil {
		return nil, err
	}
	if err := s.store.AddProgress(ctx, &e); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", e.UserID).Int("skin_score", e.SkinScore).Msg("Progress entry added")
	return &e, nil
}
