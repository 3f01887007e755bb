package notify

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// ModeratorNotifier delivers a moderation alert for a newly submitted spot.
// Delivery is best-effort: the core dispatches it fire-and-forget and a
// failure must never surface to the submitting transaction.
type ModeratorNotifier interface {
	NotifyNewSpot(ctx context.Context, spot *entity.Spot) error
}
