// Package analysis derives a skin profile from quiz answers or a photo.
package analysis

import "skincare-advisor/internal/models"

const (
	MethodQuiz  = "quiz"
	MethodImage = "image"
)

// QuizAnswers is the skin questionnaire submitted by the front-end. Every
// answer is optional; option values are snake_case identifiers.
type QuizAnswers struct {
	SkinType      string   `json:"skinType" validate:"omitempty,oneof=dry oily combination normal sensitive"`
	Oiliness      string   `json:"oiliness" validate:"omitempty,oneof=very_dry normal slightly_oily very_oily"`
	Sensitivity   string   `json:"sensitivity" validate:"omitempty,oneof=very_sensitive somewhat_sensitive not_sensitive never_sensitive"`
	Concerns      []string `json:"concerns" validate:"omitempty,max=10,dive,required,max=40"`
	AcneFrequency string   `json:"acneFrequency"`
	SkinTone      string   `json:"skinTone"`
	Aging         []string `json:"aging" validate:"omitempty,max=10,dive,required,max=40"`
	Environment   string   `json:"environment"`
	Allergies     []string `json:"allergies"`
}

type SkinProperties struct {
	Hydration     int `json:"hydration"`
	OilProduction int `json:"oilProduction"`
	UVSensitivity int `json:"uvSensitivity"`
	Sensitivity   int `json:"sensitivity"`
}

// HealthMetrics are 0-100 scores; higher is healthier.
type HealthMetrics struct {
	Texture      int `json:"texture"`
	Pores        int `json:"pores"`
	Redness      int `json:"redness"`
	Pigmentation int `json:"pigmentation"`
	Wrinkles     int `json:"wrinkles"`
	Hydration    int `json:"hydration"`
}

// Map keys the metrics by their JSON names.
func (m HealthMetrics) Map() map[string]int {
	return map[string]int{
		"texture":      m.Texture,
		"pores":        m.Pores,
		"redness":      m.Redness,
		"pigmentation": m.Pigmentation,
		"wrinkles":     m.Wrinkles,
		"hydration":    m.Hydration,
	}
}

func (m HealthMetrics) mean() int {
	sum := m.Texture + m.Pores + m.Redness + m.Pigmentation + m.Wrinkles + m.Hydration
	return sum / 6
}

type Recommendations struct {
	Ingredients []models.Ingredient `json:"ingredients"`
}

// Result is the analysis payload returned to the client.
type Result struct {
	SkinType          string               `json:"skinType"`
	SkinConcerns      []models.SkinConcern `json:"skinConcerns"`
	SkinProperties    SkinProperties       `json:"skinProperties"`
	SkinHealthMetrics HealthMetrics        `json:"skinHealthMetrics"`
	SkinScore         int                  `json:"skinScore"`
	SkinAge           *int                 `json:"skinAge"`
	Recommendations   Recommendations      `json:"recommendations"`
	AnalysisMethod    string               `json:"analysisMethod"`
}
