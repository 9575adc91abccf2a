package recommend

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"skincare-advisor/internal/models"
	"skincare-advisor/internal/validation"
)

// DecodeRequest reads a JSON filter payload. Unknown fields, type
// mismatches (a string where a price is expected) and data after the object
// are rejected with ErrInvalidRequest. An empty body is an empty request.
func DecodeRequest(r io.Reader) (models.RecommendationRequest, error) {
	var req models.RecommendationRequest

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidRequest)
	}
	return req, nil
}

// Normalize returns a trimmed copy of req with the skin type lower-cased and
// the default limit applied, then validates it.
func Normalize(req models.RecommendationRequest, defaultLimit int) (models.RecommendationRequest, error) {
	req.SkinType = strings.ToLower(strings.TrimSpace(req.SkinType))

	concerns := make([]models.SkinConcern, 0, len(req.SkinConcerns))
	for _, c := range req.SkinConcerns {
		c.Name = strings.TrimSpace(c.Name)
		c.Severity = strings.ToLower(strings.TrimSpace(c.Severity))
		concerns = append(concerns, c)
	}
	req.SkinConcerns = concerns

	req.Allergies = trimAll(req.Allergies)
	req.ProductTypes = trimAll(req.ProductTypes)
	req.Concerns = trimAll(req.Concerns)
	req.Brands = trimAll(req.Brands)
	req.Ingredients = trimAll(req.Ingredients)
	req.AdditionalFilters = trimAll(req.AdditionalFilters)

	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	if err := validation.Struct(&req); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return req, fmt.Errorf("%w: minPrice %.2f is greater than maxPrice %.2f",
			ErrInvalidRequest, *req.MinPrice, *req.MaxPrice)
	}
	return req, nil
}

// trimAll drops blank entries; a blank allergen would otherwise match every product.
func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CriteriaFrom converts a normalized request into filter criteria.
func CriteriaFrom(req models.RecommendationRequest) Criteria {
	return Criteria{
		SkinType:          req.SkinType,
		SkinConcerns:      ConcernNames(req.SkinConcerns),
		Allergies:         req.Allergies,
		ProductTypes:      req.ProductTypes,
		Concerns:          req.Concerns,
		Brands:            req.Brands,
		Ingredients:       req.Ingredients,
		MinPrice:          req.MinPrice,
		MaxPrice:          req.MaxPrice,
		AdditionalFilters: req.AdditionalFilters,
	}
}

// ConcernNames lists the non-empty concern names in request order.
func ConcernNames(concerns []models.SkinConcern) []string {
	names := make([]string, 0, len(concerns))
	for _, c := range concerns {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
