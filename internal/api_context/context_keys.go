package api_context

import (
	"context"

	"github.com/fhuszti/event-medias-go/internal/uuid"
)

type ctxKey string

const (
	IDKey          ctxKey = "id"
	AuthSubjectKey ctxKey = "authSubject"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	return id, ok
}

// AuthSubjectFromContext returns the "sub" claim of the bearer token, if any.
func AuthSubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(AuthSubjectKey).(string)
	return sub, ok && sub != ""
}
