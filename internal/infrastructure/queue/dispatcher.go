package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/api/metrics"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes batch-ingested registrations to a fixed set of workers
// using consistent hashing on the record name, so the same record is never
// processed by two workers at once.
type Dispatcher struct {
	workers  []chan ports.RegistrationInput
	ingestor ports.RegistrationIngestor
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, ingestor ports.RegistrationIngestor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.RegistrationInput, numWorkers),
		ingestor: ingestor,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RegistrationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its name.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.RegistrationInput) {
	i := d.shardIndex(input.Name)
	d.workers[i] <- input
	metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple records preserving per-name ordering.
func (d *Dispatcher) EnqueueBatch(inputs []ports.RegistrationInput) {
	for _, in := range inputs {
		d.Enqueue(in)
	}
}

// shardIndex maps a record name deterministically to a worker index.
func (d *Dispatcher) shardIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RegistrationInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.IngestQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.ingestor.Ingest(ctx, input); err != nil {
				d.log.Error().Err(err).
					Str("name", input.Name).
					Int("worker_id", id).
					Msg("registration ingest failed")
			}
		}
	}
}
