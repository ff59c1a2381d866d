package queue

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
)

const subscriberBuffer = 16

// Broadcaster fans store changes out to stream subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the change.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan domain.Change
	nextID int
	log    zerolog.Logger
}

func NewBroadcaster(log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]chan domain.Change),
		log:  log,
	}
}

// Attach forwards every change of store until the returned func is called.
func (b *Broadcaster) Attach(store ports.BoardStore) func() {
	return store.Subscribe(b.Publish)
}

// Publish delivers change to every subscriber that has room for it.
func (b *Broadcaster) Publish(change domain.Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- change:
		default:
			b.log.Warn().Int("subscriber_id", id).Str("op", change.Op).Msg("subscriber buffer full, change dropped")
		}
	}
}

// Subscribe returns a channel of changes and a cancel func that closes it.
func (b *Broadcaster) Subscribe() (<-chan domain.Change, func()) {
	ch := make(chan domain.Change, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports how many streams are attached.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
