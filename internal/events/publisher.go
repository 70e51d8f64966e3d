package events

import (
	"sync"

	"go.uber.org/zap"
)

// Subscriber receives every published event, synchronously, in publish order.
type Subscriber func(Event)

// Publisher fans events out to in-process subscribers.
type Publisher struct {
	mu     sync.RWMutex
	subs   []Subscriber
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{
		logger: logger,
	}
}

func (p *Publisher) Subscribe(fn Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	subs := p.subs
	p.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}

	p.logger.Debug("Event published",
		zap.String("event", event.EventName()))
}
