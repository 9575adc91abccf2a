package analysis

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"

	"skincare-advisor/internal/ingredients"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

const (
	detectionThreshold = 0.4
	highSeverity       = 0.7
)

var acceptedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Image analyses an uploaded photo. The upload is sniffed and decoded here;
// classification and concern detection are delegated to the configured
// strategies. Concerns at or below 0.4 confidence are dropped.
func (a *Analyzer) Image(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, a.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > a.maxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrUnsupportedImage, a.maxBytes)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), acceptedImageTypes...) {
		return nil, fmt.Errorf("%w: content type %s", ErrUnsupportedImage, mt.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	skinType := a.classifier.Classify(img)
	concerns := severities(a.detector.Detect(img))

	seed := xxhash.Sum64(data)
	props := SkinProperties{
		Hydration:     a.scorer.Metric(seed, "hydration"),
		OilProduction: a.scorer.Metric(seed, "oil"),
		UVSensitivity: a.scorer.Metric(seed, "uv"),
		Sensitivity:   a.scorer.Metric(seed, "sensitivity"),
	}
	metrics := scoreMetrics(a.scorer, seed, props.Hydration)
	age := a.scorer.SkinAge(seed)

	logging.Ctx(ctx).Info().
		Str("skin_type", skinType).
		Int("concerns", len(concerns)).
		Str("content_type", mt.String()).
		Msg("Image analysis complete")

	return &Result{
		SkinType:          skinType,
		SkinConcerns:      concerns,
		SkinProperties:    props,
		SkinHealthMetrics: metrics,
		SkinScore:         metrics.mean(),
		SkinAge:           &age,
		Recommendations: Recommendations{
			Ingredients: ingredients.Recommend(skinType, concerns),
		},
		AnalysisMethod: MethodImage,
	}, nil
}

func severities(detections []Detection) []models.SkinConcern {
	out := make([]models.SkinConcern, 0, len(detections))
	for _, d := range detections {
		if d.Confidence <= detectionThreshold {
			continue
		}
		severity := models.SeverityMedium
		if d.Confidence > highSeverity {
			severity = models.SeverityHigh
		}
		out = append(out, models.SkinConcern{Name: concernTitle(d.Concern), Severity: severity})
	}
	return out
}
