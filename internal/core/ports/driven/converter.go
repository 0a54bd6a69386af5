package driven

import "github.com/custodia-labs/querytrans/internal/core/domain"

// Converter maps a spelling to its form under a conversion scheme.
// Backed by OpenCC. Implementations must be deterministic for a given
// scheme and text.
type Converter interface {
	// Convert returns text converted under scheme.
	Convert(scheme domain.Scheme, text string) (string, error)
}
