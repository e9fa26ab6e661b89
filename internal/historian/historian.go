// internal/historian/historian.go drains the action queue in Redis into Postgres
// and marks sessions abandoned once they go quiet.
package historian

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/cache"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Sink is where batches of records end up.
type Sink interface {
	AppendActions(ctx context.Context, recs []models.ActionRecord) error
	MarkAbandoned(ctx context.Context, id uuid.UUID) error
}

// Options tune batching and the inactivity sweep.
type Options struct {
	Queue         string
	BatchSize     int
	FlushInterval time.Duration
	Inactivity    time.Duration
	SweepInterval time.Duration
	PopTimeout    time.Duration
}

func (o *Options) applyDefaults() {
	if o.Queue == "" {
		o.Queue = "cattledrive_actions"
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 20
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = 500 * time.Millisecond
	}
	if o.Inactivity <= 0 {
		o.Inactivity = 10 * time.Minute
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = time.Minute
	}
	if o.PopTimeout <= 0 {
		o.PopTimeout = 3 * time.Second
	}
}

// Service batches queued action records and flushes them to a Sink.
type Service struct {
	rdb  redis.Cmdable
	sink Sink
	opts Options
	log  *logrus.Entry
	now  func() time.Time

	lastActivity sync.Map // uuid.UUID -> time.Time

	batchMu sync.Mutex
	batch   []models.ActionRecord
}

func New(rdb redis.Cmdable, sink Sink, opts Options) *Service {
	opts.applyDefaults()
	return &Service{
		rdb:   rdb,
		sink:  sink,
		opts:  opts,
		log:   logrus.WithField("component", "historian"),
		now:   time.Now,
		batch: make([]models.ActionRecord, 0, opts.BatchSize),
	}
}

// Run blocks until ctx is cancelled, then flushes whatever is still batched.
func (hs *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); hs.readLoop(ctx) }()
	go func() { defer wg.Done(); hs.flushLoop(ctx) }()
	go func() { defer wg.Done(); hs.inactivityLoop(ctx) }()

	hs.log.WithField("queue", hs.opts.Queue).Info("historian started")
	wg.Wait()

	// final flush outlives the cancelled context
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hs.Flush(flushCtx)
	hs.log.Info("historian stopped")
}

// readLoop pops records with BLPop; the timeout lets it notice cancellation.
func (hs *Service) readLoop(ctx context.Context) {
	for ctx.Err() == nil {
		res, err := hs.rdb.BLPop(ctx, hs.opts.PopTimeout, hs.opts.Queue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				hs.log.WithError(err).Error("BLPop failed")
				time.Sleep(100 * time.Millisecond)
			}
			continue
		}
		// res[0] is the queue name and res[1] the payload
		if len(res) < 2 {
			continue
		}
		hs.Handle(ctx, []byte(res[1]))
	}
}

func (hs *Service) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(hs.opts.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hs.Flush(ctx)
		}
	}
}

func (hs *Service) inactivityLoop(ctx context.Context) {
	ticker := time.NewTicker(hs.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hs.Sweep(ctx)
		}
	}
}

// Handle decodes one queue payload and batches it, flushing once the batch is full.
func (hs *Service) Handle(ctx context.Context, payload []byte) {
	rec, err := cache.DecodeRecord(payload)
	if err != nil {
		hs.log.WithError(err).Warn("dropping queue payload")
		return
	}
	hs.lastActivity.Store(rec.SessionID, hs.now())
	if rec.ActionType == "game_end" {
		hs.lastActivity.Delete(rec.SessionID)
	}
	if hs.appendToBatch(rec) {
		hs.Flush(ctx)
	}
}

// appendToBatch reports whether the batch reached its size threshold.
func (hs *Service) appendToBatch(rec models.ActionRecord) bool {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()
	hs.batch = append(hs.batch, rec)
	return len(hs.batch) >= hs.opts.BatchSize
}

// Pending is the number of records waiting for the next flush.
func (hs *Service) Pending() int {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()
	return len(hs.batch)
}

// Flush writes the current batch in one call to the sink. A failed batch is put
// back in front of newer records and retried on the next flush.
func (hs *Service) Flush(ctx context.Context) {
	hs.batchMu.Lock()
	if len(hs.batch) == 0 {
		hs.batchMu.Unlock()
		return
	}
	pending := hs.batch
	hs.batch = make([]models.ActionRecord, 0, hs.opts.BatchSize)
	hs.batchMu.Unlock()

	if err := hs.sink.AppendActions(ctx, pending); err != nil {
		hs.log.WithError(err).WithField("records", len(pending)).Error("flush failed")
		hs.batchMu.Lock()
		hs.batch = append(pending, hs.batch...)
		hs.batchMu.Unlock()
		return
	}
	hs.log.WithField("records", len(pending)).Debug("flushed actions")
}

// Sweep marks every session idle for longer than the inactivity timeout abandoned.
func (hs *Service) Sweep(ctx context.Context) {
	now := hs.now()
	hs.lastActivity.Range(func(key, val interface{}) bool {
		id, ok1 := key.(uuid.UUID)
		last, ok2 := val.(time.Time)
		if !ok1 || !ok2 || now.Sub(last) <= hs.opts.Inactivity {
			return true
		}
		if err := hs.sink.MarkAbandoned(ctx, id); err != nil {
			hs.log.WithError(err).WithField("game_id", id).Error("failed to mark session abandoned")
			return true
		}
		hs.lastActivity.Delete(id)
		hs.log.WithField("game_id", id).Info("marked session abandoned due to inactivity")
		return true
	})
}
