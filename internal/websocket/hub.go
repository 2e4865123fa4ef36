package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType определяет типы событий
type MessageType string

const (
	// Системные типы
	TypePing  MessageType = "ping"
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"

	// Общий чат
	TypeMessageSend    MessageType = "message_send"
	TypeMessageReceive MessageType = "message_receive"

	// Личный чат. join_private обязаны отправить обе стороны —
	// сервер не подключает второго участника автоматически.
	TypeJoinPrivate    MessageType = "join_private"
	TypePrivateSend    MessageType = "private_send"
	TypePrivateReceive MessageType = "private_receive"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Room      string          `json:"room,omitempty"`
	User      string          `json:"user,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID   uuid.UUID
	Name string
	Conn *websocket.Conn
	Send chan []byte
	// Ключи личных комнат, в которые вошло это соединение
	Rooms map[string]bool
	Hub   *Hub
	mu    sync.RWMutex
}

// PresenceListener получает переходы первое-подключение/последнее-отключение
type PresenceListener interface {
	UserOnline(name string)
	UserOffline(name string)
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Соединения по имени пользователя (у пользователя их может быть несколько)
	userClients map[string]map[uuid.UUID]*Client

	// Соединения в личных комнатах по ключу комнаты
	rooms map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	presence PresenceListener

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(presence PresenceListener) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[string]map[uuid.UUID]*Client),
		rooms:       make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		presence:    presence,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и отпускает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}

	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[string]map[uuid.UUID]*Client)
	h.rooms = make(map[string]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()

	h.clients[client.ID] = client

	first := false
	if _, ok := h.userClients[client.Name]; !ok {
		h.userClients[client.Name] = make(map[uuid.UUID]*Client)
		first = true
	}
	h.userClients[client.Name][client.ID] = client

	h.mu.Unlock()

	log.Printf("Client registered: %s (User: %s)", client.ID, client.Name)

	if first && h.presence != nil {
		h.presence.UserOnline(client.Name)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	last := false
	if _, ok := h.clients[client.ID]; ok {
		for roomKey := range client.Rooms {
			h.removeFromRoomUnsafe(client, roomKey)
		}

		if userClients, ok := h.userClients[client.Name]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.Name)
				last = true
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.Name)
	}

	h.mu.Unlock()

	// Переход offline срабатывает один раз — когда ушло последнее соединение
	if last && h.presence != nil {
		h.presence.UserOffline(client.Name)
	}
}

// JoinRoom добавляет соединение в личную комнату по ключу
func (h *Hub) JoinRoom(client *Client, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomKey]; !ok {
		h.rooms[roomKey] = make(map[uuid.UUID]*Client)
	}

	h.rooms[roomKey][client.ID] = client
	client.mu.Lock()
	client.Rooms[roomKey] = true
	client.mu.Unlock()
}

// LeaveRoom удаляет соединение из комнаты
func (h *Hub) LeaveRoom(client *Client, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, roomKey)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, roomKey string) {
	if room, ok := h.rooms[roomKey]; ok {
		if _, ok := room[client.ID]; ok {
			delete(room, client.ID)
			client.mu.Lock()
			delete(client.Rooms, roomKey)
			client.mu.Unlock()

			if len(room) == 0 {
				delete(h.rooms, roomKey)
			}
		}
	}
}

// Broadcast отправляет сообщение каждому подключенному соединению
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- message:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// SendToRoom отправляет сообщение только вошедшим в комнату соединениям
func (h *Hub) SendToRoom(roomKey string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[roomKey]; ok {
		for _, client := range room {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

// SendToUser отправляет сообщение всем соединениям пользователя
func (h *Hub) SendToUser(name string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[name]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetOnlineUsers возвращает список подключенных пользователей
func (h *Hub) GetOnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.userClients))
	for name := range h.userClients {
		users = append(users, name)
	}
	return users
}

// GetRoomUsers возвращает список пользователей в комнате
func (h *Hub) GetRoomUsers(roomKey string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[string]bool)
	if room, ok := h.rooms[roomKey]; ok {
		for _, client := range room {
			userMap[client.Name] = true
		}
	}

	users := make([]string, 0, len(userMap))
	for name := range userMap {
		users = append(users, name)
	}
	return users
}
