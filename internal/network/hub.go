package network

import (
	"sync"

	"hivelings-server/pkg/api"
)

// SubscriberID - номер подписки наблюдателя.
type SubscriberID uint64

// Broadcaster занимается только рассылкой завершенных тиков подписчикам
type Broadcaster struct {
	mu     sync.RWMutex
	nextID SubscriberID
	// Мапа: SubscriberID -> Личный канал
	subscribers map[SubscriberID]chan api.TickUpdate
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[SubscriberID]chan api.TickUpdate),
	}
}

// Register создает личный канал для наблюдателя
func (b *Broadcaster) Register() (SubscriberID, <-chan api.TickUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan api.TickUpdate, 100)
	b.subscribers[b.nextID] = ch
	return b.nextID, ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет всем. Медленный наблюдатель пропускает тики, движок не ждет.
func (b *Broadcaster) Broadcast(msg api.TickUpdate) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Close отключает всех подписчиков.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
