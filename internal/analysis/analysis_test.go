package analysis

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

type fixedScorer struct{ value, age int }

func (f fixedScorer) Metric(uint64, string) int { return f.value }
func (f fixedScorer) SkinAge(uint64) int        { return f.age }

func TestQuizSkinType(t *testing.T) {
	tests := []struct {
		name    string
		answers QuizAnswers
		want    string
	}{
		{"direct answer wins", QuizAnswers{SkinType: "dry", Oiliness: "very_oily"}, "dry"},
		{"very oily", QuizAnswers{Oiliness: "very_oily"}, "oily"},
		{"very dry", QuizAnswers{Oiliness: "very_dry"}, "dry"},
		{"slightly oily", QuizAnswers{Oiliness: "slightly_oily"}, "combination"},
		{"nothing answered", QuizAnswers{}, "normal"},
		{"sensitivity overrides oiliness", QuizAnswers{Oiliness: "very_oily", Sensitivity: "somewhat_sensitive"}, "sensitive"},
		{"low sensitivity keeps oiliness", QuizAnswers{Oiliness: "very_dry", Sensitivity: "not_sensitive"}, "dry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quizSkinType(tt.answers); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuizConcerns(t *testing.T) {
	tests := []struct {
		name    string
		answers QuizAnswers
		want    []models.SkinConcern
	}{
		{
			name:    "acne severity follows frequency",
			answers: QuizAnswers{Concerns: []string{"acne", "dark_spots"}, AcneFrequency: "monthly"},
			want:    []models.SkinConcern{{Name: "Acne", Severity: "medium"}, {Name: "Dark Spots", Severity: "high"}},
		},
		{
			name:    "occasional acne is low",
			answers: QuizAnswers{Concerns: []string{"acne"}, AcneFrequency: "occasionally"},
			want:    []models.SkinConcern{{Name: "Acne", Severity: "low"}},
		},
		{
			name:    "aging concerns at medium without duplicates",
			answers: QuizAnswers{Concerns: []string{"wrinkles"}, Aging: []string{"wrinkles", "dark_circles"}},
			want:    []models.SkinConcern{{Name: "Wrinkles", Severity: "high"}, {Name: "Dark Circles", Severity: "medium"}},
		},
		{
			name:    "none disables aging concerns",
			answers: QuizAnswers{Aging: []string{"wrinkles", "none"}},
			want:    []models.SkinConcern{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quizConcerns(tt.answers)
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("concern %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQuiz(t *testing.T) {
	a := NewAnalyzer(WithMetricScorer(fixedScorer{value: 60}))

	res, err := a.Quiz(context.Background(), QuizAnswers{
		Oiliness:    "very_dry",
		Sensitivity: "never_sensitive",
		SkinTone:    "fair",
		Concerns:    []string{"dryness"},
	})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}

	wantProps := SkinProperties{Hydration: 30, OilProduction: 20, UVSensitivity: 80, Sensitivity: 10}
	if res.SkinProperties != wantProps {
		t.Errorf("properties = %+v, want %+v", res.SkinProperties, wantProps)
	}
	if res.SkinHealthMetrics.Hydration != 30 || res.SkinHealthMetrics.Texture != 60 {
		t.Errorf("metrics = %+v", res.SkinHealthMetrics)
	}
	// (5*60 + 30) / 6
	if res.SkinScore != 55 {
		t.Errorf("score = %d, want 55", res.SkinScore)
	}
	if res.SkinAge != nil {
		t.Errorf("quiz must not estimate age, got %d", *res.SkinAge)
	}
	if res.AnalysisMethod != MethodQuiz || res.SkinType != "dry" {
		t.Errorf("got method %q type %q", res.AnalysisMethod, res.SkinType)
	}

	// dry: Hyaluronic Acid, Glycerin, Ceramides; Dryness adds nothing new.
	if n := len(res.Recommendations.Ingredients); n != 3 {
		t.Errorf("got %d ingredients: %+v", n, res.Recommendations.Ingredients)
	}
}

func TestQuizLogsConcernsWithoutIngredients(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "warn", Format: "json", Output: &buf})
	defer logging.Init(logging.Config{Level: "info", Format: "json"})

	_, err := NewAnalyzer().Quiz(context.Background(), QuizAnswers{Concerns: []string{"dark_spots", "rosacea"}})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"concern":"Rosacea"`) {
		t.Errorf("missing warning for Rosacea: %s", out)
	}
	if strings.Contains(out, "Dark Spots") {
		t.Errorf("warned about a known concern: %s", out)
	}
}

func TestQuizRejectsUnknownOptions(t *testing.T) {
	_, err := NewAnalyzer().Quiz(context.Background(), QuizAnswers{Oiliness: "greasy"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHashScorerDeterministic(t *testing.T) {
	var s HashScorer
	for _, name := range []string{"texture", "pores", "redness"} {
		a, b := s.Metric(42, name), s.Metric(42, name)
		if a != b {
			t.Errorf("%s: %d != %d", name, a, b)
		}
		if a < 40 || a >= 90 {
			t.Errorf("%s: %d out of range", name, a)
		}
	}
	if age := s.SkinAge(42); age < 20 || age >= 45 {
		t.Errorf("age %d out of range", age)
	}
}

func solidPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func concernNames(concerns []models.SkinConcern) string {
	parts := make([]string, len(concerns))
	for i, c := range concerns {
		parts[i] = c.Name + ":" + c.Severity
	}
	return strings.Join(parts, ",")
}

func TestImage(t *testing.T) {
	tests := []struct {
		name     string
		color    color.Color
		skinType string
		concerns string
	}{
		{"bright photo reads as oily", color.White, "oily", "Oiliness:high,Large Pores:high"},
		{"flat grey photo has no concerns", color.Gray{Y: 128}, "normal", ""},
		{"red photo reads as sensitive", color.RGBA{R: 220, G: 60, B: 60, A: 255}, "sensitive",
			"Acne:high,Redness:high,Dullness:medium,Sensitivity:high"},
	}

	a := NewAnalyzer(WithMetricScorer(fixedScorer{value: 50, age: 30}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Image(context.Background(), bytes.NewReader(solidPNG(t, tt.color)))
			if err != nil {
				t.Fatalf("Image: %v", err)
			}
			if res.SkinType != tt.skinType {
				t.Errorf("skin type = %q, want %q", res.SkinType, tt.skinType)
			}
			if got := concernNames(res.SkinConcerns); got != tt.concerns {
				t.Errorf("concerns = %q, want %q", got, tt.concerns)
			}
			if res.SkinAge == nil || *res.SkinAge != 30 {
				t.Errorf("age = %v", res.SkinAge)
			}
			if res.AnalysisMethod != MethodImage || res.SkinScore != 50 {
				t.Errorf("method %q score %d", res.AnalysisMethod, res.SkinScore)
			}
		})
	}
}

type stubClassifier string

func (s stubClassifier) Classify(image.Image) string { return string(s) }

type stubDetector []Detection

func (s stubDetector) Detect(image.Image) []Detection { return s }

func TestImageUsesInjectedStrategies(t *testing.T) {
	a := NewAnalyzer(
		WithClassifier(stubClassifier("combination")),
		WithConcernDetector(stubDetector{
			{Concern: "acne", Confidence: 0.4},
			{Concern: "large_pores", Confidence: 0.41},
			{Concern: "wrinkles", Confidence: 0.71},
		}),
	)

	res, err := a.Image(context.Background(), bytes.NewReader(solidPNG(t, color.Black)))
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if res.SkinType != "combination" {
		t.Errorf("skin type = %q", res.SkinType)
	}
	if got, want := concernNames(res.SkinConcerns), "Large Pores:medium,Wrinkles:high"; got != want {
		t.Errorf("concerns = %q, want %q", got, want)
	}
}

func TestImageRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		max  int64
	}{
		{"text upload", []byte("definitely not an image"), 0},
		{"truncated png", solidPNG(t, color.White)[:40], 0},
		{"too large", solidPNG(t, color.White), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(WithMaxImageBytes(tt.max))
			if _, err := a.Image(context.Background(), bytes.NewReader(tt.data)); !errors.Is(err, ErrUnsupportedImage) {
				t.Errorf("expected ErrUnsupportedImage, got %v", err)
			}
		})
	}
}
