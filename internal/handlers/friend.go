package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/chat-lite/internal/friends"
	"github.com/thereayou/chat-lite/internal/middleware"
)

type FriendHandler struct {
	friends *friends.Engine
}

func NewFriendHandler(engine *friends.Engine) *FriendHandler {
	return &FriendHandler{friends: engine}
}

// SendRequest создает заявку в друзья к :user
func (h *FriendHandler) SendRequest(c *gin.Context) {
	name := c.MustGet(middleware.UserNameKey).(string)
	target := c.Param("user")

	if target == name {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot send friend request to yourself"})
		return
	}

	if err := h.friends.SendRequest(name, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend request sent"})
}

// Accept принимает заявку от :user. Несуществующая или уже принятая
// заявка — пустая операция, не ошибка.
func (h *FriendHandler) Accept(c *gin.Context) {
	name := c.MustGet(middleware.UserNameKey).(string)
	requester := c.Param("user")

	accepted, err := h.friends.Accept(name, requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": accepted})
}
