package llm

import "context"

// Purposes label requests in the event log and the llm_requests_total metric.
const (
	PurposeQuestion    = "question-gen"
	PurposeVideos      = "video-queries"
	PurposeFinalVideos = "final-video-queries"

	purposeOther = "other"
)

// Purposes lists every label histquiz sends, in quiz order.
func Purposes() []string {
	return []string{PurposeQuestion, PurposeVideos, PurposeFinalVideos}
}

type purposeKey struct{}

// WithPurpose labels the requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "other".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeOther
}
