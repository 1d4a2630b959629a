package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ArnavTheExploit/EventSphere/internal/api/metrics"
	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes registration submissions to a fixed set of workers
// using consistent hashing on the event ID, so submissions for one event
// are processed in arrival order.
type Dispatcher struct {
	workers []chan ports.RegistrationInput
	service ports.RegistrationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.RegistrationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RegistrationInput, numWorkers),
		service: service,
		log:     log,
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

// Enqueue sends a submission to the worker responsible for its event.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.RegistrationInput) {
	idx := d.shardIndex(in.EventID)
	d.workers[idx] <- in
	metrics.RegistrationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an event ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RegistrationInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.RegistrationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			err := d.service.Submit(ctx, in)
			switch {
			case err == nil:
				metrics.RegistrationsProcessedTotal.WithLabelValues("accepted").Inc()
			case errors.Is(err, domain.ErrDuplicateRegistration):
				metrics.RegistrationsProcessedTotal.WithLabelValues("duplicate").Inc()
				d.log.Debug().Str("event_id", in.EventID).Msg("duplicate registration skipped")
			default:
				metrics.RegistrationsProcessedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("event_id", in.EventID).
					Int("worker_id", id).
					Msg("registration processing failed")
			}
		}
	}
}
