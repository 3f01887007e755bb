package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/notify"
)

const deliveryTimeout = 15 * time.Second

// AsyncDispatcher delivers moderation alerts on a background goroutine so a
// failing or slow notification can never roll back or delay the submission
// that triggered it. Failures are logged and dropped.
type AsyncDispatcher struct {
	notifier notify.ModeratorNotifier
	logger   coreport.Logger
	queue    chan *entity.Spot
	wg       sync.WaitGroup
	once     sync.Once
}

// NewAsyncDispatcher creates and starts a dispatcher with the given queue depth
func NewAsyncDispatcher(notifier notify.ModeratorNotifier, logger coreport.Logger, queueSize int) *AsyncDispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &AsyncDispatcher{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan *entity.Spot, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch hands off a moderation alert without blocking. If the queue is
// full the alert is dropped with a warning; submissions must never wait.
func (d *AsyncDispatcher) Dispatch(spot *entity.Spot) {
	select {
	case d.queue <- spot:
	default:
		d.logger.Warn("Moderation alert queue full, dropping notification", map[string]any{
			"spot_id": spot.ID,
		})
	}
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()

	for spot := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		err := d.notifier.NotifyNewSpot(ctx, spot)
		cancel()

		if err != nil {
			d.logger.Warn("Moderation alert delivery failed", map[string]any{
				"spot_id": spot.ID,
				"error":   err.Error(),
			})
			continue
		}
		d.logger.Debug("Moderation alert delivered", map[string]any{
			"spot_id": spot.ID,
		})
	}
}

// Shutdown stops accepting alerts and waits for in-flight deliveries
func (d *AsyncDispatcher) Shutdown() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
