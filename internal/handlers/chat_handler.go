package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/handlers/dto"
	"github.com/thereayou/chat-lite/internal/websocket"
)

// Формат метки времени сообщений
const timeLayout = "15:04"

// Ключ блокировки общего чата; с подчеркиванием не пересекается с парными
const publicRoomLock = "public"

// ChatHandler — координатор сеанса: принимает события от соединений,
// сохраняет их и раздает через hub. Записи в одну переписку
// сериализуются замком по ключу комнаты, поэтому порядок чтения
// совпадает с порядком вставки.
type ChatHandler struct {
	db  *database.Database
	hub *websocket.Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChatHandler(db *database.Database, hub *websocket.Hub) *ChatHandler {
	return &ChatHandler{
		db:    db,
		hub:   hub,
		locks: make(map[string]*sync.Mutex),
	}
}

func (h *ChatHandler) roomLock(key string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock, ok := h.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[key] = lock
	}
	return lock
}

func (h *ChatHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeMessageSend:
		return h.handlePublicMessage(client, msg)

	case websocket.TypeJoinPrivate:
		return h.handleJoinPrivate(client, msg)

	case websocket.TypePrivateSend:
		return h.handlePrivateSend(client, msg)

	default:
		log.Printf("Unknown event type: %s", msg.Type)
		return nil
	}
}

func (h *ChatHandler) handlePublicMessage(client *websocket.Client, msg *websocket.Message) error {
	var payload dto.PublicMessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrMalformedEvent
	}

	if payload.Message == "" {
		return websocket.ErrMalformedEvent
	}

	// Имя берется из соединения, а не из payload
	stamp := time.Now().Format(timeLayout)

	lock := h.roomLock(publicRoomLock)
	lock.Lock()
	defer lock.Unlock()

	if _, err := h.db.AppendPublicMessage(client.Name, payload.Message, stamp); err != nil {
		log.Printf("Failed to save public message: %v", err)
		return err
	}

	event := dto.PublicMessageEvent{
		User:    client.Name,
		Message: payload.Message,
		Time:    stamp,
	}

	data, err := h.envelope(websocket.TypeMessageReceive, "", client.Name, event)
	if err != nil {
		return err
	}

	h.hub.Broadcast(data)

	return nil
}

func (h *ChatHandler) handleJoinPrivate(client *websocket.Client, msg *websocket.Message) error {
	var payload dto.JoinPrivatePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrMalformedEvent
	}

	// Вторая сторона пары относительно вызывающего
	peer := payload.Receiver
	if peer == client.Name {
		peer = payload.Sender
	}
	if peer == "" || peer == client.Name {
		return websocket.ErrMalformedEvent
	}

	h.hub.JoinRoom(client, websocket.RoomKey(client.Name, peer))

	return nil
}

func (h *ChatHandler) handlePrivateSend(client *websocket.Client, msg *websocket.Message) error {
	var payload dto.PrivateMessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return websocket.ErrMalformedEvent
	}

	if payload.Receiver == "" || payload.Message == "" {
		return websocket.ErrMalformedEvent
	}

	roomKey := websocket.RoomKey(client.Name, payload.Receiver)

	if !client.IsInRoom(roomKey) {
		return websocket.ErrNotInRoom
	}

	stamp := time.Now().Format(timeLayout)

	lock := h.roomLock(roomKey)
	lock.Lock()
	defer lock.Unlock()

	if _, err := h.db.AppendPrivateMessage(client.Name, payload.Receiver, payload.Message, "", stamp); err != nil {
		log.Printf("Failed to save private message: %v", err)
		return err
	}

	event := dto.PrivateMessageEvent{
		Sender:   client.Name,
		Receiver: payload.Receiver,
		Message:  payload.Message,
		Time:     stamp,
	}

	data, err := h.envelope(websocket.TypePrivateReceive, roomKey, client.Name, event)
	if err != nil {
		return err
	}

	h.hub.SendToRoom(roomKey, data)

	return nil
}

func (h *ChatHandler) envelope(msgType websocket.MessageType, room, user string, event interface{}) ([]byte, error) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return json.Marshal(websocket.Message{
		Type:      msgType,
		Room:      room,
		User:      user,
		Data:      eventData,
		Timestamp: time.Now(),
	})
}
