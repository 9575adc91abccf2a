package services

import (
	"context"
	"fmt"
	"net/http"

	"skincare-advisor/internal/config"
	"skincare-advisor/internal/models"
)

// UserClient talks to user-service. GetProfile makes it a chat.ProfileSource.
type UserClient struct {
	*ServiceClient
}

func NewUserClient(cfg config.ServicesConfig) *UserClient {
	return &UserClient{newServiceClient("user-service", cfg.UserURL, cfg)}
}

func (c *UserClient) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	var tok models.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *UserClient) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var tok models.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *UserClient) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var p models.Profile
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/profile", userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *UserClient) UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	var out models.Profile
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/profile", p.UserID), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *UserClient) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", userID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *UserClient) UpdatePassword(ctx context.Context, userID int64, req models.PasswordUpdateRequest) error {
	var out models.MessageResponse
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password", userID), req, &out)
}

func (c *UserClient) UpdateLifestyle(ctx context.Context, userID int64, lifestyle map[string]any) (map[string]any, error) {
	var out models.LifestyleResponse
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/lifestyle", userID), lifestyle, &out); err != nil {
		return nil, err
	}
	return out.Lifestyle, nil
}

func (c *UserClient) GetRoutine(ctx context.Context, userID int64) (*models.Routine, error) {
	var r models.Routine
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/routine", userID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *UserClient) SaveRoutine(ctx context.Context, userID int64, r models.Routine) (*models.Routine, error) {
	var out models.Routine
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/routine", userID), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *UserClient) ListProgress(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	var out []models.ProgressEntry
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/progress", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserClient) AddProgress(ctx context.Context, e models.ProgressEntry) (*models.ProgressEntry, error) {
	var out models.ProgressEntry
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/progress", e.UserID), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
