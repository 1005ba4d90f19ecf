// Package pubsub provides a basic Publish/Subscribe implementation, where subscribers only receive the latest update.
package pubsub

import (
	"log/slog"
	"sync"
)

// Publisher allows clients to subscribe and sends them the information provided by Publish.
//
// Publish never blocks: each subscriber has room for one update. If a subscriber hasn't read its previous update yet,
// that update is replaced by the new one. A new subscriber immediately receives the latest update, if there is one.
type Publisher[T any] struct {
	clients   map[<-chan T]chan T
	logger    *slog.Logger
	lock      sync.Mutex
	latest    T
	published bool
}

// New returns a new Publisher
func New[T any](logger *slog.Logger) *Publisher[T] {
	return &Publisher[T]{
		clients: make(map[<-chan T]chan T),
		logger:  logger,
	}
}

// Subscribe registers the caller and returns a new channel on which it will publish updates.
func (p *Publisher[T]) Subscribe() <-chan T {
	p.lock.Lock()
	defer p.lock.Unlock()
	ch := make(chan T, 1)
	if p.published {
		ch <- p.latest
	}
	p.clients[ch] = ch
	p.logger.Debug("subscriber added", slog.Int("subscribers", len(p.clients)))
	return ch
}

// Unsubscribe removes the registered client/channel.
func (p *Publisher[T]) Unsubscribe(ch <-chan T) {
	p.lock.Lock()
	defer p.lock.Unlock()
	delete(p.clients, ch)
	p.logger.Debug("subscriber removed", slog.Int("subscribers", len(p.clients)))
}

// Publish sends info to all registered clients.
func (p *Publisher[T]) Publish(info T) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.latest = info
	p.published = true
	for _, ch := range p.clients {
		select {
		case <-ch:
			p.logger.Debug("subscriber missed an update")
		default:
		}
		select {
		case ch <- info:
		default:
		}
	}
}

// Subscribers returns the current number of subscribers
func (p *Publisher[T]) Subscribers() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.clients)
}
