package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

const (
	defaultWorkers   = 4
	channelBuffer    = 256
	defaultScanEvery = time.Minute
	scanBatchSize    = 100
)

// Dispatcher routes review jobs to a fixed set of workers using consistent
// hashing on the request id, guaranteeing per-request send ordering. A
// scanning ticker periodically collects due follow-ups and feeds them in.
type Dispatcher struct {
	workers   []chan ports.ReviewJob
	service   ports.ReviewService
	scanEvery time.Duration
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, scanEvery time.Duration, service ports.ReviewService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if scanEvery <= 0 {
		scanEvery = defaultScanEvery
	}
	d := &Dispatcher{
		workers:   make([]chan ports.ReviewJob, numWorkers),
		service:   service,
		scanEvery: scanEvery,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReviewJob, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines and the due-follow-up scanner.
// Everything stops when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go d.runScanner(ctx)
}

// Enqueue sends a job to the worker responsible for its request id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.ReviewJob) {
	idx := d.shardIndex(job.RequestID)
	d.workers[idx] <- job
	metrics.ReviewQueueDepth.WithLabelValues(fmt.Sprint(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a request id deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID int64) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%d", requestID)
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReviewJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, job); err != nil {
				d.log.Error().Err(err).
					Int64("request_id", job.RequestID).
					Bool("follow_up", job.FollowUp).
					Int("worker_id", id).
					Msg("review job failed")
			} else {
				kind := "initial"
				if job.FollowUp {
					kind = "follow_up"
				}
				metrics.ReviewJobsProcessedTotal.WithLabelValues(kind).Inc()
			}
			metrics.ReviewQueueDepth.WithLabelValues(fmt.Sprint(id)).Set(float64(len(ch)))
		}
	}
}

// runScanner polls for due follow-ups. CollectDue claims each returned job,
// so a scan tick never double-enqueues.
func (d *Dispatcher) runScanner(ctx context.Context) {
	ticker := time.NewTicker(d.scanEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobs, err := d.service.CollectDue(ctx, scanBatchSize)
			if err != nil {
				d.log.Error().Err(err).Msg("follow-up scan failed")
				continue
			}
			for _, job := range jobs {
				d.Enqueue(job)
			}
			if len(jobs) > 0 {
				d.log.Info().Int("count", len(jobs)).Msg("enqueued due follow-ups")
			}
		}
	}
}
