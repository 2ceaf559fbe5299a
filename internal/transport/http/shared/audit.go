package shared

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// Auditor records a completed write.
type Auditor interface {
	Record(ctx context.Context, action, entityType, entityID string, before, after any) error
}

// RecordAudit records the write against the request context. Failures are
// logged and never change the response.
func RecordAudit(r *http.Request, a Auditor, action, entityType, entityID string, before, after any) {
	if a == nil {
		return
	}
	if err := a.Record(r.Context(), action, entityType, entityID, before, after); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("action", action).Str("entity_id", entityID).Msg("audit record failed")
	}
}
