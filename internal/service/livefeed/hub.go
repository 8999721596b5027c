package livefeed

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const defaultBuffer = 16

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Message событие в формате ленты администратора
type Message struct {
	Type      string    `json:"type"`
	BookingID string    `json:"bookingId"`
	SlotID    string    `json:"slotId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

// FromEvent конвертирует доменное событие в сообщение ленты
func FromEvent(event domain.BookingEvent) Message {
	return Message{
		Type:      string(event.Type),
		BookingID: event.BookingID,
		SlotID:    event.Slot.String(),
		Date:      event.Slot.Date,
		Time:      event.Slot.Time.String(),
		Status:    string(event.Status),
		At:        event.At,
	}
}

// Hub раздаёт события всем подписчикам
// Publish не блокируется: медленный подписчик теряет сообщения
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int]chan Message
	nextID      int
	buffer      int
	logger      Logger
}

// NewHub создает хаб; buffer <= 0 означает значение по умолчанию
func NewHub(buffer int, logger Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subscribers: make(map[int]chan Message),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe регистрирует подписчика; cancel закрывает канал
func (h *Hub) Subscribe() (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Message, h.buffer)
	h.subscribers[id] = ch
	h.logger.Info("LiveFeed: subscriber %d connected, total=%d", id, len(h.subscribers))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, id)
			close(ch)
			h.logger.Info("LiveFeed: subscriber %d disconnected, total=%d", id, len(h.subscribers))
		})
	}
	return ch, cancel
}

// Publish рассылает событие подписчикам
func (h *Hub) Publish(event domain.BookingEvent) {
	msg := FromEvent(event)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			h.logger.Warn("LiveFeed: subscriber %d is too slow, dropping %s for booking id=%s", id, msg.Type, msg.BookingID)
		}
	}
}

// Subscribers количество активных подписчиков
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
