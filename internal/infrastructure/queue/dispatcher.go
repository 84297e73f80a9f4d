package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes job activities to a fixed set of workers using consistent
// hashing on the job id, so activities for one job are recorded in order.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop once ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an activity to the worker responsible for its job. It never
// blocks: when that worker's buffer is full the activity is dropped.
func (d *Dispatcher) Enqueue(in ports.ActivityInput) {
	idx := d.shardIndex(in.JobID)
	ch := d.workers[idx]
	select {
	case ch <- in:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("kind", in.Kind).
			Str("job_id", in.JobID).
			Int("worker_id", idx).
			Msg("activity queue full, dropping")
	}
}

// shardIndex maps a job id deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case in := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, in)
		}
	}
}

// drain records whatever is still buffered using a context detached from the
// cancelled one.
func (d *Dispatcher) drain(id int, ch <-chan ports.ActivityInput) {
	ctx := context.Background()
	for {
		select {
		case in := <-ch:
			d.process(ctx, id, in)
		default:
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, in ports.ActivityInput) {
	if err := d.service.Process(ctx, in); err != nil {
		d.log.Error().Err(err).
			Str("kind", in.Kind).
			Str("job_id", in.JobID).
			Int("worker_id", id).
			Msg("activity processing failed")
	}
}
