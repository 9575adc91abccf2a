// Package api holds the chi routers and HTTP handlers of the three services.
package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skincare-advisor/internal/analysis"
	"skincare-advisor/internal/auth"
	"skincare-advisor/internal/cache"
	"skincare-advisor/internal/chat"
	"skincare-advisor/internal/ingredients"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/recommend"
	"skincare-advisor/internal/services"
	"skincare-advisor/internal/telemetry"
	"skincare-advisor/internal/validation"
)

type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error)
}

type ProductReader interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type FeedbackWriter interface {
	SubmitFeedback(ctx context.Context, fb models.Feedback) (*models.FeedbackResponse, error)
}

// AccountsClient is the gateway's view of user-service.
type AccountsClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, req models.PasswordUpdateRequest) error
	UpdateLifestyle(ctx context.Context, userID int64, lifestyle map[string]any) (map[string]any, error)
	GetRoutine(ctx context.Context, userID int64) (*models.Routine, error)
	SaveRoutine(ctx context.Context, userID int64, r models.Routine) (*models.Routine, error)
	ListProgress(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
	AddProgress(ctx context.Context, e models.ProgressEntry) (*models.ProgressEntry, error)
}

// GatewayDeps wires the gateway. Cache and RateLimiter may be nil.
type GatewayDeps struct {
	Engine       Recommender
	DefaultLimit int
	Cache        *cache.Recommendations
	Analyzer     *analysis.Analyzer
	Assistant    *chat.Assistant
	Products     ProductReader
	Feedback     FeedbackWriter
	Accounts     AccountsClient
	Auth         *auth.Middleware

	CORSOrigins     []string
	RateLimiter     RateLimiter
	RateLimit       int
	RateLimitWindow time.Duration
	MaxUploadBytes  int64
	// TrustProxy enables chi's RealIP, so forwarded headers decide the
	// client IP used for rate limiting.
	TrustProxy bool
}

type Gateway struct {
	deps GatewayDeps
}

func NewGateway(deps GatewayDeps) *Gateway {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 10 << 20
	}
	return &Gateway{deps: deps}
}

func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	if g.deps.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(telemetry.Middleware("api-gateway"))
	r.Use(CORS(g.deps.CORSOrigins))

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimit(g.deps.RateLimiter, g.deps.RateLimit, g.deps.RateLimitWindow))
		r.Use(g.deps.Auth.OptionalToken)

		r.Post("/recommendations", g.recommendations)
		r.Post("/ingredients", g.ingredients)
		r.Post("/analyze-skin/quiz", g.analyzeQuiz)
		r.Post("/analyze-skin/image", g.analyzeImage)
		r.Post("/chatbot", g.chatbot)
		r.Get("/products", g.listProducts)
		r.Get("/products/{id}", g.getProduct)

		r.Post("/auth/register", g.register)
		r.Post("/auth/login", g.login)

		r.Group(func(r chi.Router) {
			r.Use(g.deps.Auth.RequireToken)
			r.Post("/feedback", g.submitFeedback)
			r.Get("/profile", g.getProfile)
			r.Put("/profile", g.updateProfile)
			r.Get("/user/profile", g.getProfile)
			r.Put("/user/profile", g.updateProfile)
			r.Put("/user/lifestyle", g.updateLifestyle)
			r.Get("/user/routine", g.getRoutine)
			r.Post("/user/routine", g.saveRoutine)
			r.Get("/user/progress", g.listProgress)
			r.Post("/user/progress", g.addProgress)

			r.Get("/auth/verify", g.verify)
			r.Put("/auth/update-password", g.updatePassword)
		})
	})
	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recommendations serves POST /api/recommendations. An authenticated caller's
// ID replaces any userId in the body.
func (g *Gateway) recommendations(w http.ResponseWriter, r *http.Request) {
	req, err := recommend.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		req.UserID = &uid
	}

	req, err = recommend.Normalize(req, g.deps.DefaultLimit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	// Personalised results change with every rating the user leaves, so
	// only anonymous requests are cached.
	cacheable := g.deps.Cache != nil && req.UserID == nil
	if cacheable {
		if res, ok := g.deps.Cache.Get(r.Context(), &req); ok {
			respondJSON(w, http.StatusOK, res)
			return
		}
	}

	res, err := g.deps.Engine.Recommend(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if cacheable {
		g.deps.Cache.Set(r.Context(), &req, res)
	}
	respondJSON(w, http.StatusOK, res)
}

func (g *Gateway) ingredients(w http.ResponseWriter, r *http.Request) {
	var req models.IngredientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	req.SkinType = strings.ToLower(strings.TrimSpace(req.SkinType))
	if err := validation.Struct(&req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	for _, c := range req.SkinConcerns {
		if !ingredients.KnownConcern(c.Name) {
			logging.Ctx(r.Context()).Debug().Str("concern", c.Name).Msg("Concern has no ingredient table")
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"ingredients": ingredients.Recommend(req.SkinType, req.SkinConcerns),
	})
}

func (g *Gateway) analyzeQuiz(w http.ResponseWriter, r *http.Request) {
	var answers analysis.QuizAnswers
	if err := decodeJSON(w, r, &answers); err != nil {
		respondServiceError(w, r, err)
		return
	}

	res, err := g.deps.Analyzer.Quiz(r.Context(), answers)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// parseImageForm parses a multipart upload and returns its "image" file.
// On failure it has already written the response. Callers must close the
// file and remove the form.
func (g *Gateway) parseImageForm(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, g.deps.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(g.deps.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "expected a multipart form with an image field")
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		respondError(w, http.StatusBadRequest, "missing_image", "no image uploaded")
		return nil, false
	}
	return file, true
}

func (g *Gateway) analyzeImage(w http.ResponseWriter, r *http.Request) {
	file, ok := g.parseImageForm(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()
	defer file.Close()

	res, err := g.deps.Analyzer.Image(r.Context(), file)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (g *Gateway) chatbot(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var userID *int64
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		userID = &uid
	}

	reply, err := g.deps.Assistant.Reply(r.Context(), req.Message, userID)
	if err != nil {
		respondServiceError(w, r, fmt.Errorf("%w: %w", recommend.ErrCatalogUnavailable, err))
		return
	}
	respondJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// listProducts serves GET /api/products with optional productType, skinType
// and brand query filters.
func (g *Gateway) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := g.deps.Products.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, r, fmt.Errorf("%w: %w", recommend.ErrCatalogUnavailable, err))
		return
	}

	q := r.URL.Query()
	products = recommend.Filter(products, recommend.Criteria{
		SkinType:     strings.ToLower(q.Get("skinType")),
		ProductTypes: q["productType"],
		Brands:       q["brand"],
	})
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (g *Gateway) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := g.deps.Products.GetProduct(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (g *Gateway) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	uid, _ := auth.UserIDFromContext(r.Context())
	res, err := g.deps.Feedback.SubmitFeedback(r.Context(), models.Feedback{
		UserID:    uid,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Text:      strings.TrimSpace(req.Feedback),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", uid).Int64("product_id", req.ProductID).Msg("Feedback submitted")
	respondJSON(w, http.StatusOK, res)
}

func (g *Gateway) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	tok, err := g.deps.Accounts.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, tok)
}

func (g *Gateway) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	tok, err := g.deps.Accounts.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tok)
}

func (g *Gateway) getProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	p, err := g.deps.Accounts.GetProfile(r.Context(), uid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (g *Gateway) updateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		respondServiceError(w, r, err)
		return
	}
	p.UserID, _ = auth.UserIDFromContext(r.Context())

	out, err := g.deps.Accounts.UpdateProfile(r.Context(), p)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (g *Gateway) verify(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	u, err := g.deps.Accounts.GetUser(r.Context(), uid)
	if errors.Is(err, services.ErrNotFound) {
		// A valid signature for a deleted account.
		respondJSON(w, http.StatusUnauthorized, models.VerifyResponse{Valid: false})
		return
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.VerifyResponse{Valid: true, User: u})
}

func (g *Gateway) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := g.deps.Accounts.UpdatePassword(r.Context(), uid, req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Password updated successfully"})
}

func (g *Gateway) updateLifestyle(w http.ResponseWriter, r *http.Request) {
	var lifestyle map[string]any
	if err := decodeJSON(w, r, &lifestyle); err != nil {
		respondServiceError(w, r, err)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	out, err := g.deps.Accounts.UpdateLifestyle(r.Context(), uid, lifestyle)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.LifestyleResponse{Message: "Lifestyle factors updated successfully", Lifestyle: out})
}

func (g *Gateway) getRoutine(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	routine, err := g.deps.Accounts.GetRoutine(r.Context(), uid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, routine)
}

// saveRoutine updates the halves present in the body; an absent half keeps
// its saved steps.
func (g *Gateway) saveRoutine(w http.ResponseWriter, r *http.Request) {
	var routine models.Routine
	if err := decodeJSON(w, r, &routine); err != nil {
		respondServiceError(w, r, err)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	out, err := g.deps.Accounts.SaveRoutine(r.Context(), uid, routine)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.RoutineResponse{Message: "Routine saved successfully", Routine: *out})
}

func (g *Gateway) listProgress(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entries, err := g.deps.Accounts.ListProgress(r.Context(), uid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// addProgress analyses an uploaded photo and records the scores with the
// form's notes, date, concerns (a JSON array) and mood. The photo itself is
// not kept.
func (g *Gateway) addProgress(w http.ResponseWriter, r *http.Request) {
	file, ok := g.parseImageForm(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()
	defer file.Close()

	entry, err := progressFromForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	entry.UserID, _ = auth.UserIDFromContext(r.Context())

	res, err := g.deps.Analyzer.Image(r.Context(), file)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	entry.SkinScore = res.SkinScore
	entry.SkinAnalysis = res.SkinHealthMetrics.Map()

	saved, err := g.deps.Accounts.AddProgress(r.Context(), entry)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, models.ProgressResponse{Message: "Progress image uploaded successfully", ProgressEntry: *saved})
}

// progressFromForm reads the text fields of a progress upload. date accepts
// RFC 3339 or YYYY-MM-DD and defaults to now.
func progressFromForm(r *http.Request) (models.ProgressEntry, error) {
	e := models.ProgressEntry{
		Notes: r.FormValue("notes"),
		Mood:  strings.TrimSpace(r.FormValue("mood")),
		Date:  time.Now().UTC(),
	}

	if raw := strings.TrimSpace(r.FormValue("date")); raw != "" {
		d, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			if d, err = time.Parse(time.DateOnly, raw); err != nil {
				return e, errors.New("date must be RFC 3339 or YYYY-MM-DD")
			}
		}
		e.Date = d
	}

	if raw := strings.TrimSpace(r.FormValue("concerns")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &e.Concerns); err != nil {
			return e, errors.New("concerns must be a JSON array of strings")
		}
	}
	return e, nil
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("%s must be a positive integer", param))
		return 0, false
	}
	return id, true
}
