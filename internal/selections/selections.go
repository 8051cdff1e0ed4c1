// Package selections publishes dashboard filter selections to Kafka.
package selections

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/observability"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
)

// Event records one served dashboard selection.
type Event struct {
	Criteria  filter.Criteria `json:"criteria"`
	Matched   int             `json:"matched"`
	Fallbacks int             `json:"fallbacks"`
	Cache     string          `json:"cache,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	TS        time.Time       `json:"ts"`
}

// Sink accepts events without blocking the request path.
type Sink interface {
	Publish(ev Event) bool
}

// Nop discards everything; used when publishing is disabled.
type Nop struct{}

func (Nop) Publish(Event) bool { return false }

type Publisher struct {
	topic   string
	log     *slog.Logger
	prod    sarama.AsyncProducer
	events  chan Event
	stopped chan struct{}
	errDone chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewPublisher(brokers []string, topic string, queueSize int, log *slog.Logger) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Errors = true
	cfg.Producer.Return.Successes = false
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	prod, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("selections: create async producer: %w", err)
	}
	return NewWithProducer(prod, topic, queueSize, log), nil
}

// NewWithProducer wraps an existing producer (tests pass a sarama mock).
func NewWithProducer(prod sarama.AsyncProducer, topic string, queueSize int, log *slog.Logger) *Publisher {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Publisher{
		topic:   topic,
		log:     log,
		prod:    prod,
		events:  make(chan Event, queueSize),
		stopped: make(chan struct{}),
		errDone: make(chan struct{}),
	}

	go func() {
		defer close(p.stopped)
		for ev := range p.events {
			b, err := json.Marshal(ev)
			if err != nil {
				p.log.Warn("selections: marshal event", "err", err)
				observability.IncSelectionEvent("error")
				continue
			}
			p.prod.Input() <- &sarama.ProducerMessage{
				Topic: p.topic,
				Key:   sarama.StringEncoder(ev.Criteria.Key()),
				Value: sarama.ByteEncoder(b),
			}
		}
	}()

	go func() {
		defer close(p.errDone)
		for err := range p.prod.Errors() {
			if err != nil {
				p.log.Warn("selections: producer error", "err", err.Err)
				observability.IncSelectionEvent("error")
			}
		}
	}()

	return p
}

// Publish enqueues ev; it returns false when the queue is full or the
// publisher is closed. It never blocks.
func (p *Publisher) Publish(ev Event) bool {
	if ev.TS.IsZero() {
		ev.TS = time.Now().UTC()
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.events <- ev:
		observability.IncSelectionEvent("queued")
		return true
	default:
		observability.IncSelectionEvent("dropped")
		return false
	}
}

// Close drains queued events into the producer and shuts it down.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.events)
	p.mu.Unlock()

	<-p.stopped
	err := p.prod.Close()
	<-p.errDone
	if err != nil {
		return fmt.Errorf("selections: close producer: %w", err)
	}
	return nil
}
