package storage

import "sync"

type subscription struct {
	filter TransactionFilter
	fn     func(TransactionEvent)
}

// Broadcaster fans transaction events out to subscribers. Stores embed one to
// implement SubscribeTransactions. The zero value is ready to use.
type Broadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[int]subscription
}

// Subscribe registers fn for events matching filter.
func (b *Broadcaster) Subscribe(filter TransactionFilter, fn func(TransactionEvent)) func() {
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]subscription)
	}
	id := b.next
	b.next++
	b.subs[id] = subscription{filter: filter, fn: fn}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

type delivery struct {
	fn func(TransactionEvent)
	ev TransactionEvent
}

// Publish delivers ev to every matching subscriber on the calling goroutine.
// Subscribers whose filter matched only the record before an update receive
// it as a deletion.
func (b *Broadcaster) Publish(ev TransactionEvent) {
	b.mu.RLock()
	targets := make([]delivery, 0, len(b.subs))
	for _, s := range b.subs {
		if out, ok := s.filter.eventFor(ev); ok {
			targets = append(targets, delivery{fn: s.fn, ev: out})
		}
	}
	b.mu.RUnlock()

	for _, d := range targets {
		d.fn(d.ev)
	}
}

// Len returns the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
