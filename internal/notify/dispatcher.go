package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender delivers one payload to one URL.
type Sender interface {
	Send(ctx context.Context, url string, payload any) error
}

type DispatcherConfig struct {
	QueueSize int
	// Per-delivery deadline, delay included.
	Timeout time.Duration
	// Simulated sync latency before each delivery.
	Delay time.Duration
}

type job struct {
	url     string
	payload any
}

// Dispatcher delivers payloads in the background, at most once. Failures
// are logged and never reported back to the caller.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	delay   time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan job

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher starts the delivery worker. Call Close to stop it.
func NewDispatcher(sender Sender, cfg DispatcherConfig) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sender:  sender,
		timeout: timeout,
		delay:   cfg.Delay,
		jobs:    make(chan job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go d.run()

	return d
}

// Dispatch queues a delivery and returns immediately. It reports false when
// the payload was dropped because the queue is full or the dispatcher is closed.
func (d *Dispatcher) Dispatch(url string, payload any) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("url", url).Msg("notify: dispatcher closed, notification dropped")
		return false
	}

	select {
	case d.jobs <- job{url: url, payload: payload}:
		return true
	default:
		log.Warn().Str("url", url).Int("queue_size", cap(d.jobs)).Msg("notify: queue full, notification dropped")
		return false
	}
}

// Close stops accepting work and waits for queued deliveries. If ctx ends
// first, in-flight and pending deliveries are cancelled.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for j := range d.jobs {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			log.Warn().Err(ctx.Err()).Str("url", j.url).Msg("notify: delivery cancelled before sending")
			return
		}
	}

	start := time.Now()
	if err := d.sender.Send(ctx, j.url, j.payload); err != nil {
		log.Error().Err(err).Str("url", j.url).Msg("notify: webhook delivery failed")
		return
	}

	log.Info().Str("url", j.url).Dur("took", time.Since(start)).Msg("notify: webhook delivered")
}
