package interfaces

import (
	"context"

	"investai/internal/types"
)

// Notifier delivers a finished research result to an outbound channel.
// Delivery failure never affects the stored result.
type Notifier interface {
	Active() bool
	SendResultCard(ctx context.Context, result *types.ResearchResult) bool
	SendTest(ctx context.Context) bool
}
