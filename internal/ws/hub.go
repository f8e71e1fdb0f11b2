package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/logger"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
)

// Hub рассылает уведомления движка всем подключённым клиентам.
// Лента публичная: события уже анонимизированы движком.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	ctx        context.Context
}

// NewHub создаёт новый хаб.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		ctx:        ctx,
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish рассылает уведомление. Формат сообщения: поле "type" — имя
// события, "data" — само событие.
func (h *Hub) Publish(event models.Event) {
	payload := map[string]any{
		"type": event.Type,
		"data": event,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.WithComponent("ws").WithError(err).Error("не удалось сериализовать событие")
		return
	}

	// Не блокируем публикующего: переполненный канал — потеря кадра,
	// журнал в Postgres остаётся полным.
	select {
	case h.broadcast <- raw:
	default:
		logger.WithComponent("ws").Warn("канал рассылки переполнен, событие пропущено")
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент не тормозит рассылку.
		}
	}
}
