package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"skincare-advisor/internal/config"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

func testConfig(url string) config.ServicesConfig {
	return config.ServicesConfig{
		CatalogURL:       url,
		UserURL:          url,
		Timeout:          time.Second,
		RetryAttempts:    3,
		RetryDelay:       time.Millisecond,
		BreakerThreshold: 2,
		BreakerTimeout:   time.Hour,
	}
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Request-ID"); got != "req-1" {
			t.Errorf("request id = %q", got)
		}
		json.NewEncoder(w).Encode([]models.Product{{ID: 1, Name: "Cleanser"}, {ID: 2, Name: "Serum"}})
	}))
	defer srv.Close()

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	products, err := NewCatalogClient(testConfig(srv.URL)).ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 || products[1].Name != "Serum" {
		t.Errorf("products = %+v", products)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]models.Feedback{{UserID: 1, ProductID: 2, Rating: 5}})
	}))
	defer srv.Close()

	fb, err := NewCatalogClient(testConfig(srv.URL)).ListFeedback(context.Background())
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if calls.Load() != 3 || len(fb) != 1 {
		t.Errorf("calls = %d, feedback = %+v", calls.Load(), fb)
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"product not found","code":"not_found"}`))
	}))
	defer srv.Close()

	_, err := NewCatalogClient(testConfig(srv.URL)).GetProduct(context.Background(), 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var status *StatusError
	if !errors.As(err, &status) || status.Message != "product not found" {
		t.Errorf("status error = %+v", status)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RetryAttempts = 1
	c := NewCatalogClient(cfg)

	for i := 0; i < 2; i++ {
		if _, err := c.ListProducts(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	}

	rejected := testutil.ToFloat64(telemetry.UpstreamRequests.WithLabelValues("catalog-service", "rejected"))
	if _, err := c.ListProducts(context.Background()); err == nil {
		t.Fatal("expected breaker rejection")
	}
	if calls.Load() != 2 {
		t.Errorf("open breaker still reached the server: calls = %d", calls.Load())
	}
	if got := testutil.ToFloat64(telemetry.UpstreamRequests.WithLabelValues("catalog-service", "rejected")); got != rejected+1 {
		t.Errorf("rejected counter = %v, want %v", got, rejected+1)
	}
}

func TestSubmitFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/feedback" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var fb models.Feedback
		if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(models.FeedbackResponse{
			Message: "ok", ProductID: fb.ProductID, Rating: fb.Rating, AvgRating: 4.5, ReviewCount: 2,
		})
	}))
	defer srv.Close()

	resp, err := NewCatalogClient(testConfig(srv.URL)).SubmitFeedback(context.Background(),
		models.Feedback{UserID: 4, ProductID: 2, Rating: 5})
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if resp.ProductID != 2 || resp.AvgRating != 4.5 || resp.ReviewCount != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/5/profile" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Profile{UserID: 5, SkinType: "oily"})
	}))
	defer srv.Close()

	p, err := NewUserClient(testConfig(srv.URL)).GetProfile(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if p.SkinType != "oily" {
		t.Errorf("profile = %+v", p)
	}
}

func TestAddProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/3/progress" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var e models.ProgressEntry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Errorf("decode: %v", err)
		}
		e.ID = 11
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(e)
	}))
	defer srv.Close()

	out, err := NewUserClient(testConfig(srv.URL)).AddProgress(context.Background(), models.ProgressEntry{
		UserID:       3,
		SkinScore:    64,
		SkinAnalysis: map[string]int{"hydration": 70},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != 11 || out.SkinScore != 64 || out.SkinAnalysis["hydration"] != 70 {
		t.Errorf("entry = %+v", out)
	}
}

func TestUpdatePasswordRejected(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "current password is incorrect"})
	}))
	defer srv.Close()

	err := NewUserClient(testConfig(srv.URL)).UpdatePassword(context.Background(), 3, models.PasswordUpdateRequest{CurrentPassword: "a", NewPassword: "b"})
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusUnauthorized || status.Message != "current password is incorrect" {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}
