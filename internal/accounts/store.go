// Package accounts owns users, their password hashes and their saved skin
// profiles.
package accounts

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"skincare-advisor/internal/models"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Account is a user together with the bcrypt hash of their password.
type Account struct {
	models.User
	PasswordHash string
}

// Every per-user method returns ErrNotFound for an unknown user.
type Store interface {
	// CreateUser assigns ID and CreatedAt. Emails are unique.
	CreateUser(ctx context.Context, a *Account) error
	UserByEmail(ctx context.Context, email string) (*Account, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetProfile returns an empty profile for a user who never saved one.
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) error
	SaveLifestyle(ctx context.Context, userID int64, lifestyle map[string]any) error
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error

	// GetRoutine returns empty halves for a user who never saved one.
	GetRoutine(ctx context.Context, userID int64) (*models.Routine, error)
	SaveRoutine(ctx context.Context, userID int64, r models.Routine) error

	// AddProgress assigns the entry's ID.
	AddProgress(ctx context.Context, e *models.ProgressEntry) error
	// ListProgress returns a user's entries, newest first.
	ListProgress(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// sortProgress orders entries newest first; same-day entries keep the later
// upload on top.
func sortProgress(entries []models.ProgressEntry) {
	slices.SortStableFunc(entries, func(a, b models.ProgressEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
