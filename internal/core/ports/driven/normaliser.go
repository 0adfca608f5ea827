package driven

import (
	"context"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// Normaliser turns feed markup into plain article text.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise returns a copy of fields with text fields converted to
	// plain text. Timestamps and identifiers are left untouched.
	Normalise(ctx context.Context, fields domain.ArticleFields) (domain.ArticleFields, error)
}
