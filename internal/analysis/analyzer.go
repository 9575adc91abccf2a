package analysis

import (
	"errors"
	"image"
)

var (
	// ErrInvalidInput covers malformed quiz answers.
	ErrInvalidInput = errors.New("invalid analysis input")
	// ErrUnsupportedImage is returned for uploads that are not a decodable
	// JPEG, PNG or GIF, or that exceed the size limit.
	ErrUnsupportedImage = errors.New("unsupported image")
)

// Classifier assigns one of the five skin types to a photo.
type Classifier interface {
	Classify(img image.Image) string
}

// Detection is a concern with a confidence in [0, 1].
type Detection struct {
	Concern    string
	Confidence float64
}

// ConcernDetector scores every concern it knows for a photo. Concern
// identifiers are snake_case ("dark_spots").
type ConcernDetector interface {
	Detect(img image.Image) []Detection
}

type Analyzer struct {
	classifier Classifier
	detector   ConcernDetector
	scorer     MetricScorer
	maxBytes   int64
}

type Option func(*Analyzer)

func WithClassifier(c Classifier) Option {
	return func(a *Analyzer) { a.classifier = c }
}

func WithConcernDetector(d ConcernDetector) Option {
	return func(a *Analyzer) { a.detector = d }
}

func WithMetricScorer(s MetricScorer) Option {
	return func(a *Analyzer) { a.scorer = s }
}

// WithMaxImageBytes caps the accepted upload size.
func WithMaxImageBytes(n int64) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxBytes = n
		}
	}
}

const defaultMaxImageBytes = 10 << 20

// NewAnalyzer defaults to the luminance model for both image strategies and
// HashScorer for metrics.
func NewAnalyzer(opts ...Option) *Analyzer {
	lm := LuminanceModel{}
	a := &Analyzer{
		classifier: lm,
		detector:   lm,
		scorer:     HashScorer{},
		maxBytes:   defaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
