// Package services holds the gateway's HTTP clients for catalog-service and
// user-service. Every call is retried and guarded by a per-target breaker.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"skincare-advisor/internal/config"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/resilience"
	"skincare-advisor/internal/telemetry"
)

var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx upstream response. Message is the upstream
// "error" field when it sent one.
type StatusError struct {
	Target  string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %d: %s", e.Target, e.Code, e.Message)
	}
	return fmt.Sprintf("%s returned %d", e.Target, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

type ServiceClient struct {
	name     string
	baseURL  string
	client   *http.Client
	attempts int
	delay    time.Duration
	cb       *gobreaker.CircuitBreaker[struct{}]
}

func newServiceClient(name, baseURL string, cfg config.ServicesConfig) *ServiceClient {
	return &ServiceClient{
		name:    name,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		attempts: cfg.RetryAttempts,
		delay:    cfg.RetryDelay,
		cb: resilience.NewCircuitBreaker[struct{}](resilience.BreakerSettings{
			Name:      name,
			Threshold: cfg.BreakerThreshold,
			Timeout:   cfg.BreakerTimeout,
		}),
	}
}

func (s *ServiceClient) getJSON(ctx context.Context, path string, target any) error {
	return s.doJSON(ctx, http.MethodGet, path, nil, target)
}

func (s *ServiceClient) doJSON(ctx context.Context, method, path string, body, target any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode %s request: %w", s.name, err)
		}
	}
	url := s.baseURL + path

	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, resilience.Retry(ctx, s.attempts, s.delay, func() error {
			return s.roundTrip(ctx, method, url, payload, target)
		})
	})

	telemetry.UpstreamRequests.WithLabelValues(s.name, resultLabel(err)).Inc()
	if err != nil {
		var status *StatusError
		if !errors.As(err, &status) {
			logging.Ctx(ctx).Error().Err(err).Str("target", s.name).Str("url", url).Msg("Upstream request failed")
		}
		var perm *resilience.Permanent
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}
	return nil
}

func (s *ServiceClient) roundTrip(ctx context.Context, method, url string, payload []byte, target any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &resilience.Permanent{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%s server error: %d", s.name, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		return &resilience.Permanent{Err: &StatusError{Target: s.name, Code: resp.StatusCode, Message: apiErr.Error}}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &resilience.Permanent{Err: fmt.Errorf("decode %s response: %w", s.name, err)}
	}
	return nil
}

func resultLabel(err error) string {
	var status *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.As(err, &status):
		return "client_error"
	default:
		return "error"
	}
}
