package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/friends"
	"github.com/thereayou/chat-lite/internal/middleware"
	"github.com/thereayou/chat-lite/internal/presence"
)

type UserHandler struct {
	db      *database.Database
	friends *friends.Engine
	tracker *presence.Tracker
}

func NewUserHandler(db *database.Database, engine *friends.Engine, tracker *presence.Tracker) *UserHandler {
	return &UserHandler{db: db, friends: engine, tracker: tracker}
}

// GetRoster возвращает всех остальных пользователей со статусом дружбы
// и состоянием присутствия. Статус считается отдельным запросом на
// кандидата — приемлемо при текущем масштабе.
func (h *UserHandler) GetRoster(c *gin.Context) {
	name := c.MustGet(middleware.UserNameKey).(string)

	users, err := h.db.ListUsersExcept(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	presenceMap, err := h.tracker.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load presence"})
		return
	}

	result := make([]gin.H, len(users))
	for i, user := range users {
		status, err := h.friends.DeriveStatus(name, user.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive status"})
			return
		}

		// Пользователь без строки присутствия еще ни разу не подключался
		online, ok := presenceMap[user.Name]
		if !ok {
			online = presence.Offline
		}

		result[i] = gin.H{
			"name":   user.Name,
			"image":  user.Image,
			"status": status,
			"online": online,
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}
