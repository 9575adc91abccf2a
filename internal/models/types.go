package models

import "time"

// Skin types accepted by the analysis and recommendation endpoints.
const (
	SkinTypeDry         = "dry"
	SkinTypeOily        = "oily"
	SkinTypeCombination = "combination"
	SkinTypeNormal      = "normal"
	SkinTypeSensitive   = "sensitive"
)

// Concern severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type SkinConcern struct {
	Name     string `json:"name" validate:"required"`
	Severity string `json:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
}

// Product is a catalog record. Price is nil when unknown.
type Product struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Brand             string   `json:"brand"`
	ProductType       string   `json:"productType"`
	SuitableSkinTypes []string `json:"suitableFor"`
	Ingredients       string   `json:"ingredients"`
	Price             *float64 `json:"price"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"imageUrl,omitempty"`
	Size              string   `json:"size,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	HowToUse          string   `json:"howToUse,omitempty"`
	KeyIngredients    []string `json:"keyIngredients"`
	Concerns          []string `json:"concerns"`
	Rating            float64  `json:"rating"`
	ReviewCount       int      `json:"reviewCount"`
}

// ScoredProduct is a recommended product with its presentation score.
type ScoredProduct struct {
	Product
	MatchScore int `json:"matchScore"`
}

type Feedback struct {
	UserID    int64     `json:"userId" validate:"required,gt=0"`
	ProductID int64     `json:"productId" validate:"required,gt=0"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Text      string    `json:"feedback,omitempty" validate:"max=2000"`
	CreatedAt time.Time `json:"createdAt"`
}

type Ingredient struct {
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
}

// RecommendationRequest is the filter payload posted by the front-end.
// Every field is optional.
type RecommendationRequest struct {
	SkinType          string        `json:"skinType" validate:"omitempty,oneof=dry oily combination normal sensitive"`
	SkinConcerns      []SkinConcern `json:"skinConcerns" validate:"omitempty,dive"`
	Allergies         []string      `json:"allergies"`
	ProductTypes      []string      `json:"productTypes"`
	Concerns          []string      `json:"concerns"`
	Brands            []string      `json:"brands"`
	Ingredients       []string      `json:"ingredients"`
	MinPrice          *float64      `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice          *float64      `json:"maxPrice" validate:"omitempty,gte=0"`
	AdditionalFilters []string      `json:"additionalFilters"`
	UserID            *int64        `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Limit             int           `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type RecommendationResult struct {
	Products    []ScoredProduct `json:"products"`
	Ingredients []Ingredient    `json:"ingredients"`
}

type IngredientRequest struct {
	SkinType     string        `json:"skinType" validate:"omitempty,oneof=dry oily combination normal sensitive"`
	SkinConcerns []SkinConcern `json:"skinConcerns" validate:"omitempty,dive"`
}

type FeedbackRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback  string `json:"feedback" validate:"max=2000"`
}

// FeedbackResponse mirrors the product aggregate after a feedback write.
type FeedbackResponse struct {
	Message     string  `json:"message"`
	ProductID   int64   `json:"productId"`
	Rating      int     `json:"rating"`
	AvgRating   float64 `json:"productRating"`
	ReviewCount int     `json:"reviewCount"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Profile struct {
	UserID       int64         `json:"userId"`
	SkinType     string        `json:"skinType" validate:"omitempty,oneof=dry oily combination normal sensitive"`
	SkinConcerns []SkinConcern `json:"skinConcerns" validate:"omitempty,dive"`
	Allergies    []string      `json:"allergies"`
	// Lifestyle holds free-form answers (sleep, diet, stress, ...). It is
	// written through its own endpoint and ignored by profile updates.
	Lifestyle map[string]any `json:"lifestyle,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,bcryptlen"`
	Name     string `json:"name" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,bcryptlen"`
}

type VerifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LifestyleResponse struct {
	Message   string         `json:"message"`
	Lifestyle map[string]any `json:"lifestyle"`
}

// Routine is a user's saved morning and evening steps. The step layout is
// owned by the front-end and stored as given. A nil half in an update keeps
// the saved one.
type Routine struct {
	Morning map[string]any `json:"morning"`
	Evening map[string]any `json:"evening"`
}

type RoutineResponse struct {
	Message string `json:"message"`
	Routine
}

// ProgressEntry is one dated skin check-in with the image analysis scores.
type ProgressEntry struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"userId"`
	Date         time.Time      `json:"date"`
	Notes        string         `json:"notes" validate:"max=2000"`
	Concerns     []string       `json:"concerns" validate:"max=20,dive,max=60"`
	Mood         string         `json:"mood" validate:"max=30"`
	SkinScore    int            `json:"skinScore" validate:"min=0,max=100"`
	SkinAnalysis map[string]int `json:"skinAnalysis"`
}

type ProgressResponse struct {
	Message string `json:"message"`
	ProgressEntry
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
