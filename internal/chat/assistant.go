// Package chat is a rule-based skincare assistant. Messages are matched
// against a small FAQ first, then routed by keyword to an intent handler.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

// Catalog lists products for recommendation questions.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ProfileSource resolves a signed-in user's saved skin type.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

const suggestionCount = 3

var (
	recommendIntent     = regexp.MustCompile(`\b(recommend|suggestion|what should i use for)\b`)
	routineIntent       = regexp.MustCompile(`\b(routine|regimen|steps|order)\b`)
	ingredientIntent    = regexp.MustCompile(`\b(ingredient|what is|purpose of|benefits of)\b`)
	frequencyIntent     = regexp.MustCompile(`\b(how often|frequency|daily|weekly)\b`)
	compatibilityIntent = regexp.MustCompile(`\b(can i use|mix|combine|together)\b`)

	morningPattern = regexp.MustCompile(`\b(morning|am|day|daytime)\b`)
	eveningPattern = regexp.MustCompile(`\b(evening|night|pm|bedtime)\b`)

	ingredientPatterns = []*regexp.Regexp{
		regexp.MustCompile(`what is ([\w\s]+)`),
		regexp.MustCompile(`([\w\s]+) ingredient`),
		regexp.MustCompile(`benefits of ([\w\s]+)`),
	}
)

var concernPatterns = []struct {
	re      *regexp.Regexp
	concern string
}{
	{regexp.MustCompile(`\b(acne|pimples?|breakouts?|blemish\w*)\b`), "acne"},
	{regexp.MustCompile(`\b(wrinkles?|aging|fine lines?|anti-aging)\b`), "aging"},
	{regexp.MustCompile(`\b(dry|dehydrat\w*|flak\w*)\b`), "dryness"},
	{regexp.MustCompile(`\b(oily|shine|greasy)\b`), "oiliness"},
	{regexp.MustCompile(`\b(sensitive|irritat\w*|redness|react\w*)\b`), "sensitivity"},
	{regexp.MustCompile(`\b(dark spots?|hyperpigment\w*|discolou?r\w*|melasma)\b`), "dark spots"},
	{regexp.MustCompile(`\b(dull\w*|uneven|tone|brightening|glow)\b`), "dullness"},
}

var productTypePatterns = []struct {
	re          *regexp.Regexp
	productType string
}{
	{regexp.MustCompile(`\b(cleanser|face wash|cleaning)\b`), "cleanser"},
	{regexp.MustCompile(`\b(moisturi[sz]er|cream|lotion|hydrat\w*)\b`), "moisturizer"},
	{regexp.MustCompile(`\b(serum|treatment)\b`), "serum"},
	{regexp.MustCompile(`\b(sunscreen|spf|sun protection)\b`), "sunscreen"},
	{regexp.MustCompile(`\b(toner|essence)\b`), "toner"},
	{regexp.MustCompile(`\b(mask|masque)\b`), "mask"},
	{regexp.MustCompile(`\b(exfoliat\w*|scrub|peel)\b`), "exfoliator"},
}

var skinTypePatterns = []struct {
	re       *regexp.Regexp
	skinType string
}{
	{regexp.MustCompile(`\bdry\b`), models.SkinTypeDry},
	{regexp.MustCompile(`\boily\b`), models.SkinTypeOily},
	{regexp.MustCompile(`\b(combination|combo)\b`), models.SkinTypeCombination},
	{regexp.MustCompile(`\bsensitive\b`), models.SkinTypeSensitive},
	{regexp.MustCompile(`\bnormal\b`), models.SkinTypeNormal},
}

var compiledFrequency = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(frequencyRules))
	for i, rule := range frequencyRules {
		out[i] = regexp.MustCompile(rule.pattern)
	}
	return out
}()

var compiledCompatibility = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(compatibilityTerms))
	for i, term := range compatibilityTerms {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return out
}()

type Assistant struct {
	catalog  Catalog
	profiles ProfileSource
}

// NewAssistant builds an assistant. profiles may be nil, in which case the
// skin type is only taken from the message text.
func NewAssistant(catalog Catalog, profiles ProfileSource) *Assistant {
	return &Assistant{catalog: catalog, profiles: profiles}
}

// Reply answers one message. userID is nil for anonymous users. The only
// error source is the product lookup behind recommendation questions.
func (a *Assistant) Reply(ctx context.Context, message string, userID *int64) (string, error) {
	q := strings.ToLower(strings.TrimSpace(message))

	for _, entry := range faq {
		if faqMatch(q, entry.question) {
			return entry.answer, nil
		}
	}

	switch {
	case recommendIntent.MatchString(q):
		return a.recommend(ctx, q, userID)
	case routineIntent.MatchString(q):
		return routine(q), nil
	case ingredientIntent.MatchString(q):
		return ingredient(q), nil
	case frequencyIntent.MatchString(q):
		return frequency(q), nil
	case compatibilityIntent.MatchString(q):
		return compatibility(q), nil
	}

	return fallbackReplies[xxhash.Sum64String(q)%uint64(len(fallbackReplies))], nil
}

// faqMatch reports whether at least 60% of the question's words longer than
// three letters occur in the message.
func faqMatch(message, question string) bool {
	var terms, hits int
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(question) {
		if len(w) <= 3 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms++
		if strings.Contains(message, w) {
			hits++
		}
	}
	return terms > 0 && float64(hits) >= float64(terms)*0.6
}

func (a *Assistant) recommend(ctx context.Context, q string, userID *int64) (string, error) {
	var concerns []string
	for _, p := range concernPatterns {
		if p.re.MatchString(q) {
			concerns = append(concerns, p.concern)
		}
	}

	var productType string
	for _, p := range productTypePatterns {
		if p.re.MatchString(q) {
			productType = p.productType
			break
		}
	}

	skinType := a.savedSkinType(ctx, userID)
	if skinType == "" {
		for _, p := range skinTypePatterns {
			if p.re.MatchString(q) {
				skinType = p.skinType
				break
			}
		}
	}

	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("list products: %w", err)
	}

	matches := suggest(products, productType, skinType, concerns)
	if len(matches) == 0 {
		return noProducts, nil
	}

	var b strings.Builder
	b.WriteString("Based on your question, here are some products to try:\n\n")
	for i, p := range matches {
		fmt.Fprintf(&b, "%d. %s by %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   • Type: %s\n", p.ProductType)
		fmt.Fprintf(&b, "   • Rating: %.1f/5 (%d reviews)\n", p.Rating, p.ReviewCount)
		if len(p.KeyIngredients) > 0 {
			keys := p.KeyIngredients
			if len(keys) > 3 {
				keys = keys[:3]
			}
			fmt.Fprintf(&b, "   • Key ingredients: %s\n", strings.Join(keys, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("For more personalised recommendations, try the skin analysis!")
	return b.String(), nil
}

func (a *Assistant) savedSkinType(ctx context.Context, userID *int64) string {
	if userID == nil || a.profiles == nil {
		return ""
	}
	profile, err := a.profiles.GetProfile(ctx, *userID)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Int64("user_id", *userID).Msg("Profile lookup failed, using message text")
		return ""
	}
	return profile.SkinType
}

// suggest keeps products whose type contains productType, whose skin types
// mention skinType and whose concerns mention every concern, best rated first.
func suggest(products []models.Product, productType, skinType string, concerns []string) []models.Product {
	var out []models.Product
	for _, p := range products {
		if productType != "" && !strings.Contains(strings.ToLower(p.ProductType), productType) {
			continue
		}
		if skinType != "" && !mentions(p.SuitableSkinTypes, skinType) {
			continue
		}
		ok := true
		for _, c := range concerns {
			if !mentions(p.Concerns, c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > suggestionCount {
		out = out[:suggestionCount]
	}
	return out
}

func mentions(tags []string, term string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func routine(q string) string {
	switch {
	case morningPattern.MatchString(q):
		return routineMorning
	case eveningPattern.MatchString(q):
		return routineEvening
	default:
		return routineGeneral
	}
}

func ingredient(q string) string {
	var name string
	for _, re := range ingredientPatterns {
		if m := re.FindStringSubmatch(q); m != nil {
			name = strings.TrimSpace(m[1])
			break
		}
	}
	if name == "" {
		return unknownIngredient
	}

	for _, entry := range ingredientInfo {
		if strings.Contains(entry.name, name) || strings.Contains(name, entry.name) {
			return entry.info
		}
	}
	return fmt.Sprintf("I don't have details on %s yet. A dermatologist or a dedicated ingredient database can tell you more.", name)
}

func frequency(q string) string {
	for i, re := range compiledFrequency {
		if re.MatchString(q) {
			return frequencyRules[i].answer
		}
	}
	return frequencyGeneral
}

func compatibility(q string) string {
	var found []string
	for i, re := range compiledCompatibility {
		if re.MatchString(q) {
			found = append(found, compatibilityTerms[i])
		}
	}
	if len(found) < 2 {
		return compatibilityGeneral
	}

	for i := range found {
		for j := i + 1; j < len(found); j++ {
			if answer, ok := compatibilityPairs[[2]string{found[i], found[j]}]; ok {
				return answer
			}
			if answer, ok := compatibilityPairs[[2]string{found[j], found[i]}]; ok {
				return answer
			}
		}
	}
	return fmt.Sprintf("Generally %s can share a routine. Introduce them one at a time, go from thinnest to thickest, and split strong actives between morning and evening if you see irritation.",
		strings.Join(found, " and "))
}
