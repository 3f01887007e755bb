package notify

import "github.com/Alex-KostPy/roofnn/internal/domain/entity"

// Dispatcher hands a moderation alert off for asynchronous delivery.
// Dispatch never blocks and never returns an error to the caller; delivery
// failures are the dispatcher's to log.
type Dispatcher interface {
	Dispatch(spot *entity.Spot)
}
