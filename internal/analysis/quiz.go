package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skincare-advisor/internal/ingredients"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/validation"
)

var (
	hydrationByOiliness = map[string]int{"very_dry": 30, "normal": 70, "slightly_oily": 60, "very_oily": 50}
	oilByOiliness       = map[string]int{"very_dry": 20, "normal": 50, "slightly_oily": 70, "very_oily": 90}
	uvBySkinTone        = map[string]int{"very_fair": 90, "fair": 80, "medium": 60, "olive": 50, "tan": 40, "deep": 30}
	sensitivityLevels   = map[string]int{"very_sensitive": 90, "somewhat_sensitive": 70, "not_sensitive": 30, "never_sensitive": 10}
)

const (
	defaultHydration   = 70
	defaultOil         = 50
	defaultUV          = 50
	defaultSensitivity = 50
)

// Quiz turns questionnaire answers into a skin profile. The skin type,
// concerns and properties follow fixed rules; health metrics come from the
// analyzer's MetricScorer seeded with the answers.
func (a *Analyzer) Quiz(ctx context.Context, answers QuizAnswers) (*Result, error) {
	if err := validation.Struct(&answers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	skinType := quizSkinType(answers)
	concerns := quizConcerns(answers)
	props := SkinProperties{
		Hydration:     lookup(hydrationByOiliness, answers.Oiliness, defaultHydration),
		OilProduction: lookup(oilByOiliness, answers.Oiliness, defaultOil),
		UVSensitivity: lookup(uvBySkinTone, answers.SkinTone, defaultUV),
		Sensitivity:   lookup(sensitivityLevels, answers.Sensitivity, defaultSensitivity),
	}

	metrics := scoreMetrics(a.scorer, quizSeed(answers), props.Hydration)

	for _, c := range concerns {
		if !ingredients.KnownConcern(c.Name) {
			logging.Ctx(ctx).Warn().Str("concern", c.Name).Msg("Concern has no ingredient table")
		}
	}

	logging.Ctx(ctx).Info().
		Str("skin_type", skinType).
		Int("concerns", len(concerns)).
		Msg("Quiz analysis complete")

	return &Result{
		SkinType:          skinType,
		SkinConcerns:      concerns,
		SkinProperties:    props,
		SkinHealthMetrics: metrics,
		SkinScore:         metrics.mean(),
		Recommendations: Recommendations{
			Ingredients: ingredients.Recommend(skinType, concerns),
		},
		AnalysisMethod: MethodQuiz,
	}, nil
}

// quizSkinType prefers the direct answer. Otherwise oiliness decides and any
// reported sensitivity overrides it.
func quizSkinType(q QuizAnswers) string {
	if q.SkinType != "" {
		return q.SkinType
	}

	skinType := models.SkinTypeNormal
	switch q.Oiliness {
	case "very_oily":
		skinType = models.SkinTypeOily
	case "very_dry":
		skinType = models.SkinTypeDry
	case "slightly_oily":
		skinType = models.SkinTypeCombination
	}

	if q.Sensitivity == "very_sensitive" || q.Sensitivity == "somewhat_sensitive" {
		skinType = models.SkinTypeSensitive
	}
	return skinType
}

// quizConcerns lists selected concerns at high severity (acne follows the
// reported frequency), then aging concerns at medium unless "none" was picked.
func quizConcerns(q QuizAnswers) []models.SkinConcern {
	concerns := make([]models.SkinConcern, 0, len(q.Concerns)+len(q.Aging))
	seen := make(map[string]struct{})

	for _, c := range q.Concerns {
		severity := models.SeverityHigh
		if c == "acne" {
			switch q.AcneFrequency {
			case "occasionally":
				severity = models.SeverityLow
			case "monthly":
				severity = models.SeverityMedium
			}
		}
		concerns = append(concerns, models.SkinConcern{Name: concernTitle(c), Severity: severity})
		seen[snakeCase(concernTitle(c))] = struct{}{}
	}

	if slices.Contains(q.Aging, "none") {
		return concerns
	}
	for _, c := range q.Aging {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		concerns = append(concerns, models.SkinConcern{Name: concernTitle(c), Severity: models.SeverityMedium})
	}
	return concerns
}

// concernTitle maps "dark_spots" to "Dark Spots", the form the ingredient
// tables are keyed by. A Caser holds state, so each call gets its own.
func concernTitle(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func snakeCase(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

func lookup(table map[string]int, key string, fallback int) int {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func quizSeed(q QuizAnswers) uint64 {
	raw, err := json.Marshal(q)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(raw)
}
