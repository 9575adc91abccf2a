package recommend

import "errors"

var (
	// ErrInvalidRequest marks a malformed filter payload. It is returned
	// before any filtering happens and is never retried.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrCatalogUnavailable means the product or feedback collaborator failed
	// or returned no products. Recommendations cannot be built without it.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	errEmptyVocabulary = errors.New("empty vocabulary after stop-word removal")
)
