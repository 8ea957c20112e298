package ws

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"quickbite/entity"
	"quickbite/pkg/logger"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ChatHub fans persisted messages out to every connection in a room.
type ChatHub struct {
	clients    map[uint]map[*websocket.Conn]bool // roomID -> set of clients
	broadcast  chan BroadcastMessage
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	service    *services.ChatService
}

// Subscription = 1 user ต่อ 1 connection ในห้องเดียว
type Subscription struct {
	Conn   *websocket.Conn
	RoomID uint
	UserID uint
	Role   string
}

type BroadcastMessage struct {
	RoomID  uint
	Message *entity.Message
}

func NewChatHub(service *services.ChatService) *ChatHub {
	return &ChatHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan BroadcastMessage),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		service:    service,
	}
}

// Run listens on register/unregister/broadcast until the process exits.
func (h *ChatHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RoomID] == nil {
				h.clients[sub.RoomID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RoomID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RoomID][sub.Conn]; ok {
				delete(h.clients[sub.RoomID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.RoomID] {
				if err := conn.WriteJSON(msg.Message); err != nil {
					logger.L().Warn("ws write failed", zap.Error(err))
					conn.Close()
					delete(h.clients[msg.RoomID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/chat/:roomId (token ผ่าน query — ดู WSAuthMiddleware)
func (h *ChatHub) HandleWebSocket(c *gin.Context) {
	roomID64, _ := strconv.ParseUint(c.Param("roomId"), 10, 32)
	roomID := uint(roomID64)

	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	room, err := h.service.GetRoomByID(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ok, err := h.service.CanAccessRoom(userID, role, room.OrderID)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("ws upgrade failed", zap.Error(err))
		return
	}

	sub := Subscription{Conn: conn, RoomID: room.ID, UserID: userID, Role: role}
	h.register <- sub

	go h.listenMessages(sub)
}

func (h *ChatHub) listenMessages(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		_, msgData, err := sub.Conn.ReadMessage()
		if err != nil {
			break
		}

		var payload struct {
			Body string `json:"body"`
		}
		if err := json.Unmarshal(msgData, &payload); err != nil || payload.Body == "" {
			continue
		}

		// sender มาจาก JWT ไม่ใช่ payload
		msg, err := h.service.SendMessage(sub.RoomID, sub.UserID, sub.Role, payload.Body)
		if err != nil {
			logger.L().Warn("ws message save failed", zap.Error(err))
			continue
		}

		h.broadcast <- BroadcastMessage{RoomID: sub.RoomID, Message: msg}
	}
}
