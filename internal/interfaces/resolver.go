package interfaces

import (
	"context"

	"investai/internal/types"
)

// FinancialResolver resolves financial momentum for an entity. It never
// fails for a non-empty entity: provider errors end in the synthetic
// fallback snapshot.
type FinancialResolver interface {
	Resolve(ctx context.Context, entity string, demoMode bool) types.FinancialSnapshot
}

// FounderResolver produces the synthetic founder reliability profile.
type FounderResolver interface {
	Resolve(ctx context.Context, entity string, demoMode bool) types.FounderProfile
}

// SocialResolver resolves social sentiment for an entity, walking its
// provider chain down to the synthetic fallback.
type SocialResolver interface {
	Resolve(ctx context.Context, entity string, demoMode bool) types.SocialSnapshot
}
