package access

import (
	"context"
	"sync"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// grantProcessorFunc is the function signature for processing a single grant
type grantProcessorFunc func(ctx context.Context, tgID int64, spotID uint64) (string, error)

// grantRequest represents a queued access request
type grantRequest struct {
	ctx        context.Context
	tgID       int64
	spotID     uint64
	resultChan chan *grantResult
}

// grantResult represents the outcome of a processed access request
type grantResult struct {
	contentURL string
	err        error
}

// GrantQueue serializes access requests per user so two concurrent requests
// from the same user can never race the check-then-debit sequence in-process.
// Cross-user requests run fully independently.
type GrantQueue struct {
	logger coreport.Logger

	// Per-user request queues for strict ordering
	userQueues     sync.Map // map[int64]chan *grantRequest
	queueWaitGroup sync.WaitGroup

	processor grantProcessorFunc
}

// NewGrantQueue creates a new grant queue
func NewGrantQueue(logger coreport.Logger, processor grantProcessorFunc) *GrantQueue {
	if processor == nil {
		panic("grant processor function cannot be nil")
	}
	return &GrantQueue{
		logger:    logger,
		processor: processor,
	}
}

// Enqueue adds an access request to the user's queue and waits for its result
func (q *GrantQueue) Enqueue(ctx context.Context, tgID int64, spotID uint64) (string, error) {
	q.logger.Debug("Enqueuing access request for sequential processing", map[string]any{
		"tg_id":   tgID,
		"spot_id": spotID,
	})

	resultChan := make(chan *grantResult, 1)

	// Get or create queue for this user
	var queue chan *grantRequest
	queueIface, loaded := q.userQueues.LoadOrStore(tgID, make(chan *grantRequest, 100))
	if queueCh, ok := queueIface.(chan *grantRequest); ok {
		queue = queueCh
	} else {
		q.logger.Error("Failed to type assert queue channel", nil)
		return "", errs.ErrInternalServer
	}

	// Start worker if this is a new queue
	if !loaded {
		q.queueWaitGroup.Add(1)
		go q.processUserRequests(tgID, queue)
	}

	req := &grantRequest{
		ctx:        ctx,
		tgID:       tgID,
		spotID:     spotID,
		resultChan: resultChan,
	}

	select {
	case queue <- req:
	case <-ctx.Done():
		q.logger.Warn("Context canceled while enqueueing access request", map[string]any{
			"tg_id":   tgID,
			"spot_id": spotID,
			"error":   ctx.Err().Error(),
		})
		return "", ctx.Err()
	}

	select {
	case result := <-resultChan:
		return result.contentURL, result.err
	case <-ctx.Done():
		q.logger.Warn("Context canceled while waiting for grant result", map[string]any{
			"tg_id":   tgID,
			"spot_id": spotID,
			"error":   ctx.Err().Error(),
		})
		return "", ctx.Err()
	}
}

// processUserRequests handles the worker goroutine for a user's request queue
func (q *GrantQueue) processUserRequests(tgID int64, queue chan *grantRequest) {
	defer q.queueWaitGroup.Done()

	for req := range queue {
		contentURL, err := q.processor(req.ctx, req.tgID, req.spotID)
		req.resultChan <- &grantResult{contentURL: contentURL, err: err}
		close(req.resultChan)
	}
}

// Shutdown stops all worker goroutines cleanly
func (q *GrantQueue) Shutdown() {
	q.logger.Info("Shutting down grant queue", nil)

	q.userQueues.Range(func(tgID, queueIface interface{}) bool {
		if queue, ok := queueIface.(chan *grantRequest); ok {
			close(queue)
		}
		return true
	})

	q.queueWaitGroup.Wait()
	q.logger.Info("Grant queue shut down successfully", nil)
}
